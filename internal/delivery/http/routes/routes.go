package routes

import (
	"log"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	"gigmatch/internal/delivery/http/handler"
	"gigmatch/internal/notify"
	"gigmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
}

func NewRegistry() *Registry {
	return &Registry{health: handler.NewHealthHandler()}
}

func (r *Registry) Register(app *fiber.App, cfg config.Config, db database.DB, bridge *notify.Bridge, hub *ws.Hub, logger *log.Logger) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app, cfg, db, bridge, hub, logger)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App, cfg config.Config, db database.DB, bridge *notify.Bridge, hub *ws.Hub, logger *log.Logger) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), cfg, db, bridge, hub, logger)
}
