package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/petmatch-service/internal/observability"
)

// MetricsHandler exposes the in-memory counters to operators.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler returns a new handler instance.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Counters dumps the request and error counters.
func (h *MetricsHandler) Counters(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errors,
	})
}
