package handler

import (
	"errors"

	"go-icarstok-ws/internal/service"
	"go-icarstok-ws/pkg/gemini"
	"go-icarstok-ws/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type InsightHandler struct {
	service service.InsightService
}

func NewInsightHandler(s service.InsightService) *InsightHandler {
	return &InsightHandler{service: s}
}

// POST /api/v1/insights/demand-forecast
func (h *InsightHandler) PredictDemand(c *fiber.Ctx) error {
	forecasts, err := h.service.PredictDemand(c.Context(), getOwnerID(c))
	if err != nil {
		return insightError(c, err)
	}
	return c.JSON(fiber.Map{"type": "demand", "data": forecasts})
}

// POST /api/v1/insights/replenishment
func (h *InsightHandler) SuggestReplenishment(c *fiber.Ctx) error {
	suggestions, err := h.service.SuggestReplenishment(c.Context(), getOwnerID(c))
	if err != nil {
		return insightError(c, err)
	}
	return c.JSON(fiber.Map{"type": "replenishment", "data": suggestions})
}

// POST /api/v1/insights/anomalies
func (h *InsightHandler) DetectAnomalies(c *fiber.Ctx) error {
	anomalies, err := h.service.DetectAnomalies(c.Context(), getOwnerID(c))
	if err != nil {
		return insightError(c, err)
	}
	return c.JSON(fiber.Map{"type": "anomalies", "data": anomalies})
}

// POST /api/v1/insights/performance
func (h *InsightHandler) AnalyzePerformance(c *fiber.Ctx) error {
	notes, err := h.service.AnalyzePerformance(c.Context(), getOwnerID(c))
	if err != nil {
		return insightError(c, err)
	}
	return c.JSON(fiber.Map{"type": "performance", "data": notes})
}

// insightError degrades gracefully: the insight feature failing never takes
// anything else down with it.
func insightError(c *fiber.Ctx, err error) error {
	logger.WithModule("insight").WithError(err).Warn("insight generation failed")

	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		return c.Status(503).JSON(fiber.Map{"error": "AI insights are not configured"})
	case errors.Is(err, gemini.ErrEmptyResponse), errors.Is(err, gemini.ErrMalformedResponse):
		return c.Status(502).JSON(fiber.Map{"error": "AI generator returned an unusable response"})
	default:
		return c.Status(502).JSON(fiber.Map{"error": "AI insight request failed"})
	}
}
