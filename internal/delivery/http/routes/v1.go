package routes

import (
	"log"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	v1 "gigmatch/internal/delivery/http/routes/v1"
	"gigmatch/internal/notify"
	"gigmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, bridge *notify.Bridge, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, bridge, hub, logger)
}
