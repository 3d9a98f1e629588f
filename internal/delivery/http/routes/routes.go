package routes

import (
	"jobad-insights/internal/delivery/http/handler"
	"jobad-insights/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Registry mounts every HTTP route. Nil handlers are skipped.
type Registry struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Analysis *handler.AnalysisHandler
	Pipeline *handler.PipelineHandler
	AuthMw   *middleware.AuthMiddleware
	WS       fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS != nil {
		app.Get("/ws/pipeline", r.WS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	RegisterV1(app.Group("/api").Group("/v1"), r)
}

func RegisterV1(v1 fiber.Router, r *Registry) {
	if v1 == nil {
		return
	}

	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}
	if r.Analysis != nil {
		r.Analysis.RegisterRoutes(v1)
	}
	if r.Pipeline != nil {
		var auth fiber.Handler
		if r.AuthMw != nil {
			auth = r.AuthMw.Middleware()
		}
		r.Pipeline.RegisterRoutes(v1, auth)
	}
}
