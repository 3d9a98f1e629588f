package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobad-insights/internal/config"
	"jobad-insights/internal/delivery/http/handler"
	"jobad-insights/internal/delivery/http/middleware"
	"jobad-insights/internal/delivery/http/routes"
	"jobad-insights/internal/scheduler"
	"jobad-insights/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app on top of a wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the server process: container, websocket hub and the
// optional cron schedule. cleanup releases everything in reverse order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	if err := cfg.RequireServer(); err != nil {
		return nil, nil, err
	}
	logger := log.Default()

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	c, err := NewContainer(ctx, cfg, logger, hub)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	var sched *scheduler.Scheduler
	if cfg.Data.Schedule != "" {
		sched, err = c.NewScheduler(cfg.Data.Schedule)
		if err == nil {
			err = sched.Start(ctx)
		}
		if err != nil {
			cancel()
			_ = c.Close()
			return nil, nil, err
		}
	}

	cleanup := func() error {
		cancel()
		if sched != nil {
			sched.Stop()
		}
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	var wsHandler fiber.Handler
	if c.Hub != nil {
		wsHandler = ws.NewHandler(c.Hub, c.Logger).HandlePipelineWS
	}

	(&routes.Registry{
		Health:   handler.NewHealthHandler(c.Hub),
		Auth:     handler.NewAuthHandler(c.Auth),
		Analysis: handler.NewAnalysisHandler(c.Analysis),
		Pipeline: handler.NewPipelineHandler(c.Pipeline, c.Logger),
		AuthMw:   middleware.NewAuthMiddleware(c.JWT),
		WS:       wsHandler,
	}).Register(app)
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
