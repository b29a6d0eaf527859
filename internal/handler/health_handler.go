package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/models"
)

type readinessService interface {
	Ready(ctx context.Context) models.ReadinessReport
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	service readinessService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(svc readinessService) *HealthHandler {
	return &HealthHandler{service: svc}
}

// Health reports that the process is up.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings every backend and answers 503 when one is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h == nil || h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "readiness service unavailable"})
		return
	}
	report := h.service.Ready(c.Request.Context())
	status := http.StatusOK
	if !report.Ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
