package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
)

type nicheService interface {
	Grid(ctx context.Context) (*service.NicheGrid, error)
	Detail(ctx context.Context, codigo string) (*service.NicheDetail, error)
	AssignOptions(ctx context.Context) (*service.AssignOptions, error)
	Assign(ctx context.Context, in models.NicheAssignmentInput) (*models.NicheAssignment, error)
	Release(ctx context.Context, codigo string) (*service.NicheDetail, error)
	ToggleMaintenance(ctx context.Context, codigo string) (models.NicheState, error)
}

const (
	mapPath = "/map"

	nicheLoadError  = "Error al cargar los datos. Por favor, intente nuevamente."
	assignLoadError = "No se pudieron cargar los nichos disponibles y los cuerpos sin nicho."
)

// MapHandler serves the niche map.
type MapHandler struct {
	PageBase
	niches nicheService
}

// NewMapHandler constructs a MapHandler.
func NewMapHandler(base PageBase, niches nicheService) *MapHandler {
	return &MapHandler{PageBase: base, niches: niches}
}

type mapView struct {
	Grid    *service.NicheGrid
	Options *service.AssignOptions
	// OptionsError replaces the assign form when its choices could not be loaded.
	OptionsError string
	States       []models.NicheState
}

func nichePath(codigo string) string {
	return mapPath + "/niches/" + url.PathEscape(codigo)
}

// Show renders the grid, legend and assign form. Grid and form options load concurrently;
// only a grid failure fails the page.
func (h *MapHandler) Show(c *gin.Context) {
	p := h.page(c, "Mapa del cementerio", "map")
	view := mapView{States: []models.NicheState{models.NicheOccupied, models.NicheAvailable, models.NicheMaintenance}}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		grid, err := h.niches.Grid(ctx)
		view.Grid = grid
		return err
	})
	g.Go(func() error {
		opts, err := h.niches.AssignOptions(ctx)
		if err != nil {
			h.logger.Warn("assign options failed", zap.Error(err))
			view.OptionsError = assignLoadError
			return nil
		}
		view.Options = opts
		return nil
	})
	if err := g.Wait(); err != nil {
		h.renderLoadError(c, "map", p, err)
		return
	}
	p.Data = view
	h.render(c, "map", p)
}

// Niche renders the detail dialog of one niche. Load failures are shown inline.
func (h *MapHandler) Niche(c *gin.Context) {
	p := h.page(c, "Detalle del nicho", "map")
	detail, err := h.niches.Detail(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		h.logger.Warn("niche detail failed", zap.String("niche", c.Param("codigo")), zap.Error(err))
		p.Error = nicheLoadError
		h.renderer.Render(c, http.StatusBadGateway, "niche", p)
		return
	}
	p.Data = detail
	h.render(c, "niche", p)
}

// Assign places a body in a niche.
func (h *MapHandler) Assign(c *gin.Context) {
	var in models.NicheAssignmentInput
	_ = c.ShouldBind(&in)

	if _, err := h.niches.Assign(c.Request.Context(), in); err != nil {
		h.fail(c, mapPath, "Error al asignar el nicho", err)
		return
	}
	h.succeed(c, mapPath, "Se ha asignado el nicho correctamente.")
}

// Release frees a niche.
func (h *MapHandler) Release(c *gin.Context) {
	codigo := c.Param("codigo")
	if _, err := h.niches.Release(c.Request.Context(), codigo); err != nil {
		h.fail(c, nichePath(codigo), "No se pudo liberar el nicho", err)
		return
	}
	h.succeed(c, nichePath(codigo), "Se liberó correctamente el nicho.")
}

// Maintenance toggles a niche in and out of maintenance.
func (h *MapHandler) Maintenance(c *gin.Context) {
	codigo := c.Param("codigo")
	next, err := h.niches.ToggleMaintenance(c.Request.Context(), codigo)
	if err != nil {
		h.fail(c, nichePath(codigo), "No se pudo cambiar el estado del nicho", err)
		return
	}
	message := "El nicho quedó disponible."
	if next == models.NicheMaintenance {
		message = "El nicho quedó en mantenimiento."
	}
	h.succeed(c, nichePath(codigo), message)
}
