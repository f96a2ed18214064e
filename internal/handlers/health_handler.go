package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

// GET /api/health answers 503 only when a check failed outright.
func (h *Handler) Health(c *gin.Context) {
	start := time.Now()
	report := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if report.Status == service.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("X-Response-Time", time.Since(start).String())
	c.JSON(status, report)
}
