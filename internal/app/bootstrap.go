package app

import (
	"context"
	"fmt"
	"strings"

	"gigmatch/internal/config"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the full application: config, storage, pub/sub, websocket
// hub and the HTTP surface. The returned cleanup stops the background
// goroutines and closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry().Register(f, c.Config, c.DB, c.Bridge, c.Hub, c.Logger)

	relayCtx, cancelRelay := context.WithCancel(context.Background())
	go c.Hub.Run()
	go c.Relay.Run(relayCtx)

	cleanup := func() error {
		cancelRelay()
		return c.Close()
	}

	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
