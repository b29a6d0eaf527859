package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/service"
)

type statisticsService interface {
	General(ctx context.Context) (*service.GeneralStatistics, error)
	Occupancy(ctx context.Context) (*service.OccupancyStatistics, error)
	Documentation(ctx context.Context) (*service.DocumentationStatistics, error)
}

// StatisticsHandler renders the statistics pages.
type StatisticsHandler struct {
	PageBase
	stats statisticsService
}

// NewStatisticsHandler constructs a StatisticsHandler.
func NewStatisticsHandler(base PageBase, stats statisticsService) *StatisticsHandler {
	return &StatisticsHandler{PageBase: base, stats: stats}
}

// General renders entries over time and the estado distribution.
func (h *StatisticsHandler) General(c *gin.Context) {
	p := h.page(c, "Estadísticas generales", "statistics")
	stats, err := h.stats.General(c.Request.Context())
	if err != nil {
		h.renderLoadError(c, "statistics", p, err)
		return
	}
	p.Data = stats
	h.render(c, "statistics", p)
}

// Occupancy renders niche usage.
func (h *StatisticsHandler) Occupancy(c *gin.Context) {
	p := h.page(c, "Análisis de ocupación", "statistics")
	stats, err := h.stats.Occupancy(c.Request.Context())
	if err != nil {
		h.renderLoadError(c, "statistics_occupancy", p, err)
		return
	}
	p.Data = stats
	h.render(c, "statistics_occupancy", p)
}

// Documentation renders document counts per kind.
func (h *StatisticsHandler) Documentation(c *gin.Context) {
	p := h.page(c, "Estadísticas de documentación", "statistics")
	stats, err := h.stats.Documentation(c.Request.Context())
	if err != nil {
		h.renderLoadError(c, "statistics_documentation", p, err)
		return
	}
	p.Data = stats
	h.render(c, "statistics_documentation", p)
}
