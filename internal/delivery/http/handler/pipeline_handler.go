package handler

import (
	"errors"
	"log"

	"jobad-insights/internal/delivery/http/dto"
	"jobad-insights/internal/delivery/http/middleware"
	"jobad-insights/internal/pkg/response"
	"jobad-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PipelineHandler struct {
	uc  usecase.PipelineUsecase
	log *log.Logger
}

func NewPipelineHandler(uc usecase.PipelineUsecase, logger *log.Logger) *PipelineHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &PipelineHandler{uc: uc, log: logger}
}

// RegisterRoutes mounts the status route and, behind auth, the trigger.
// Without auth the trigger is not exposed.
func (h *PipelineHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/pipeline/status", h.GetStatus)
	if auth != nil {
		r.Post("/pipeline/run", auth, h.Run)
	}
}

func (h *PipelineHandler) Run(c fiber.Ctx) error {
	id, err := h.uc.Trigger(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrPipelineRunning) {
			return middleware.NewAppError(fiber.StatusConflict, "Pipeline already running", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	h.log.Printf("http=pipeline_run rid=%s operator=%s run_id=%s status=accepted", middleware.RequestID(c), middleware.Operator(c), id)
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.PipelineRunResponse{
		RunID:    id,
		StatusWS: "/ws/pipeline",
	})
}

func (h *PipelineHandler) GetStatus(c fiber.Ctx) error {
	status, err := h.uc.GetStatus(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "failed to get pipeline status", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
