package handler

import (
	"errors"
	"strings"

	"jobad-insights/internal/delivery/http/middleware"
	"jobad-insights/internal/extract"
	"jobad-insights/internal/pkg/response"
	"jobad-insights/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AnalysisHandler serves the dashboard read models.
type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/requirements", h.Requirements)
	r.Get("/recommendations", h.Recommendations)
	r.Get("/map", h.RegionalMap)
	r.Get("/salaries", h.Salaries)
}

var sizeGroupAliases = map[string]string{
	"small":  extract.SizeSmall,
	"medium": extract.SizeMedium,
	"big":    extract.SizeBig,
}

// sizeGroup accepts small, medium and big as well as the full group labels.
func sizeGroup(c fiber.Ctx) string {
	s := strings.TrimSpace(c.Query("size_group"))
	if g, ok := sizeGroupAliases[strings.ToLower(s)]; ok {
		return g
	}
	return s
}

func (h *AnalysisHandler) Requirements(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}

	out, err := h.uc.RequirementShares(c.Context(), usecase.RequirementFilter{
		TitleCategory: strings.TrimSpace(c.Query("title_category")),
		ExperienceBin: strings.TrimSpace(c.Query("experience_bin")),
		SizeGroup:     sizeGroup(c),
		Category:      strings.TrimSpace(c.Query("category")),
		Limit:         limit,
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AnalysisHandler) Recommendations(c fiber.Ctx) error {
	minMatches, err := parseQueryIntStrict(c, "min_matches", 1)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	out, err := h.uc.Recommend(c.Context(), usecase.RecommendationParams{
		Experience: strings.ToLower(strings.TrimSpace(c.Query("experience", usecase.ExperienceMuch))),
		Degree:     strings.ToLower(strings.TrimSpace(c.Query("degree", usecase.DegreePhD))),
		SizeGroup:  sizeGroup(c),
		Skills:     parseListQuery(c.Query("skills")),
		MinMatches: minMatches,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AnalysisHandler) RegionalMap(c fiber.Ctx) error {
	out, err := h.uc.RegionalMap(c.Context(), parseListQuery(c.Query("title_category")))
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AnalysisHandler) Salaries(c fiber.Ctx) error {
	out, err := h.uc.SalarySummary(c.Context())
	if err != nil {
		return mapAnalysisUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapAnalysisUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNoData):
		return middleware.NewAppError(fiber.StatusNotFound, "No preprocessed data yet", nil, err)
	case errors.Is(err, usecase.ErrNoGeoData):
		return middleware.NewAppError(fiber.StatusNotFound, "Data contains no geographic information", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
