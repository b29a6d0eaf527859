package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
	"github.com/noah-isme/cemetery-console/pkg/response"
)

type bodyPager interface {
	List(ctx context.Context, filter models.BodyFilter) (viewmodel.Page[models.Body], error)
}

// NicheAPIHandler exposes the niche map and the bodies register as JSON.
type NicheAPIHandler struct {
	niches nicheService
	bodies bodyPager
}

// NewNicheAPIHandler constructs a NicheAPIHandler.
func NewNicheAPIHandler(niches nicheService, bodies bodyPager) *NicheAPIHandler {
	return &NicheAPIHandler{niches: niches, bodies: bodies}
}

// maintenanceResult reports the state a niche ended up in.
type maintenanceResult struct {
	Codigo string            `json:"codigo"`
	Estado models.NicheState `json:"estado"`
}

// Grid godoc
// @Summary Niche grid with occupancy statistics
// @Tags Niches
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/v1/niches [get]
func (h *NicheAPIHandler) Grid(c *gin.Context) {
	grid, err := h.niches.Grid(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, middleware.ResponseMeta(c))
}

// Detail godoc
// @Summary Niche reconciled with its occupant
// @Tags Niches
// @Produce json
// @Param codigo path string true "Niche code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/v1/niches/{codigo} [get]
func (h *NicheAPIHandler) Detail(c *gin.Context) {
	detail, err := h.niches.Detail(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil, middleware.ResponseMeta(c))
}

// Assign godoc
// @Summary Assign a body to a niche
// @Tags Niches
// @Accept json
// @Produce json
// @Param payload body models.NicheAssignmentInput true "Assignment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/v1/niches/assign [post]
func (h *NicheAPIHandler) Assign(c *gin.Context) {
	var in models.NicheAssignmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Cuerpo de la petición inválido"))
		return
	}
	assignment, err := h.niches.Assign(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, assignment, nil, middleware.ResponseMeta(c))
}

// Release godoc
// @Summary Release an occupied niche
// @Tags Niches
// @Produce json
// @Param codigo path string true "Niche code"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/v1/niches/{codigo}/release [post]
func (h *NicheAPIHandler) Release(c *gin.Context) {
	detail, err := h.niches.Release(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil, middleware.ResponseMeta(c))
}

// Maintenance godoc
// @Summary Toggle maintenance on a free niche
// @Tags Niches
// @Produce json
// @Param codigo path string true "Niche code"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/v1/niches/{codigo}/maintenance [post]
func (h *NicheAPIHandler) Maintenance(c *gin.Context) {
	codigo := c.Param("codigo")
	state, err := h.niches.ToggleMaintenance(c.Request.Context(), codigo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, maintenanceResult{Codigo: codigo, Estado: state}, nil, middleware.ResponseMeta(c))
}

// Bodies godoc
// @Summary List bodies
// @Tags Bodies
// @Produce json
// @Param q query string false "Search over name, surname, document, id and protocol"
// @Param estado query string false "Filter by estado"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /api/v1/bodies [get]
func (h *NicheAPIHandler) Bodies(c *gin.Context) {
	var filter models.BodyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Parámetros de consulta inválidos"))
		return
	}
	page, err := h.bodies.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination(), middleware.ResponseMeta(c))
}
