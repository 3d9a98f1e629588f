package handler

import (
	"time"

	"jobad-insights/internal/delivery/http/dto"
	"jobad-insights/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type clientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	ws  clientCounter
	now func() time.Time
}

func NewHealthHandler(ws clientCounter) *HealthHandler {
	return &HealthHandler{ws: ws, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := dto.HealthResponse{Status: "up", ServerTime: h.now().UTC()}
	if h.ws != nil {
		out.WSClients = h.ws.ClientCount()
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
