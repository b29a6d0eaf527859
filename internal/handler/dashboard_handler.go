package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/service"
)

type dashboardService interface {
	Summary(ctx context.Context, query string) (*service.Dashboard, error)
}

// DashboardHandler renders the landing page.
type DashboardHandler struct {
	PageBase
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(base PageBase, service dashboardService) *DashboardHandler {
	return &DashboardHandler{PageBase: base, service: service}
}

// Show renders the dashboard. Anonymous visitors get the welcome panel only.
func (h *DashboardHandler) Show(c *gin.Context) {
	p := h.page(c, "Inicio", "dashboard")
	if middleware.CurrentIdentity(c) == nil {
		h.render(c, "dashboard", p)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.renderLoadError(c, "dashboard", p, err)
		return
	}
	p.Data = summary
	h.render(c, "dashboard", p)
}
