package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type bodyService interface {
	List(ctx context.Context, filter models.BodyFilter) (viewmodel.Page[models.Body], error)
	Get(ctx context.Context, id string) (*models.Body, error)
	Create(ctx context.Context, in models.BodyInput) (*models.Body, string, error)
	Update(ctx context.Context, id string, in models.BodyInput) (*models.Body, error)
	Delete(ctx context.Context, id string) error
	Digitize(ctx context.Context, file models.Attachment) (*models.Body, error)
}

type exportService interface {
	Bodies(ctx context.Context, filter models.BodyFilter, format service.ExportFormat) (*service.ExportResult, error)
}

const bodiesPath = "/bodies"

// BodyHandler serves the bodies register.
type BodyHandler struct {
	PageBase
	bodies  bodyService
	exports exportService
}

// NewBodyHandler constructs a BodyHandler.
func NewBodyHandler(base PageBase, bodies bodyService, exports exportService) *BodyHandler {
	return &BodyHandler{PageBase: base, bodies: bodies, exports: exports}
}

type bodiesView struct {
	Filter models.BodyFilter
	Page   viewmodel.Page[models.Body]
	States []string
}

type bodyFormView struct {
	ID     string
	Action string
	Input  models.BodyInput
	States []string
}

var bodyStates = []string{models.BodyStateInterred, models.BodyStateExhumed}

// List renders the filtered, paginated register.
func (h *BodyHandler) List(c *gin.Context) {
	p := h.page(c, "Registro de cuerpos", "bodies")
	var filter models.BodyFilter
	_ = c.ShouldBindQuery(&filter)

	page, err := h.bodies.List(c.Request.Context(), filter)
	if err != nil {
		h.renderLoadError(c, "bodies", p, err)
		return
	}
	p.Data = bodiesView{Filter: filter, Page: page, States: bodyStates}
	h.render(c, "bodies", p)
}

// New renders an empty body form.
func (h *BodyHandler) New(c *gin.Context) {
	p := h.page(c, "Nuevo registro", "bodies")
	p.Data = bodyFormView{Action: bodiesPath, Input: models.BodyInput{Estado: models.BodyStateInterred}, States: bodyStates}
	h.render(c, "body_form", p)
}

// Create registers a body.
func (h *BodyHandler) Create(c *gin.Context) {
	var in models.BodyInput
	_ = c.ShouldBind(&in)

	_, message, err := h.bodies.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, bodiesPath, "Error al crear el registro", err)
		return
	}
	h.succeed(c, bodiesPath, message)
}

// Edit renders the form prefilled with the stored record.
func (h *BodyHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	p := h.page(c, "Editar registro", "bodies")
	body, err := h.bodies.Get(c.Request.Context(), id)
	if err != nil {
		h.renderLoadError(c, "body_form", p, err)
		return
	}
	p.Data = bodyFormView{
		ID:     body.ID,
		Action: bodiesPath + "/" + url.PathEscape(body.ID) + "/edit",
		Input:  models.InputFromBody(*body),
		States: bodyStates,
	}
	h.render(c, "body_form", p)
}

// Update replaces a body record.
func (h *BodyHandler) Update(c *gin.Context) {
	var in models.BodyInput
	_ = c.ShouldBind(&in)

	if _, err := h.bodies.Update(c.Request.Context(), c.Param("id"), in); err != nil {
		h.fail(c, bodiesPath, "Error al actualizar el registro", err)
		return
	}
	h.succeed(c, bodiesPath, "Registro actualizado correctamente")
}

// Delete removes a body record.
func (h *BodyHandler) Delete(c *gin.Context) {
	if err := h.bodies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, bodiesPath, "Error al eliminar el registro", err)
		return
	}
	h.succeed(c, bodiesPath, "Registro eliminado correctamente")
}

// Digitize uploads a scanned form to be read by the OCR service.
func (h *BodyHandler) Digitize(c *gin.Context) {
	file, err := readUpload(c, "file")
	if err == nil && file == nil {
		err = appErrors.Clone(appErrors.ErrValidation, "Debe seleccionar un archivo")
	}
	if err != nil {
		h.fail(c, bodiesPath, "Error al digitalizar el formulario", err)
		return
	}

	body, err := h.bodies.Digitize(c.Request.Context(), *file)
	if err != nil {
		h.fail(c, bodiesPath, "Error al digitalizar el formulario", err)
		return
	}
	h.succeed(c, bodiesPath, "Formulario digitalizado: "+body.FullName())
}

// Export downloads the filtered register as CSV or PDF.
func (h *BodyHandler) Export(c *gin.Context) {
	var filter models.BodyFilter
	_ = c.ShouldBindQuery(&filter)

	format, err := service.ParseExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	if err != nil {
		h.fail(c, bodiesPath, "Error al exportar", err)
		return
	}
	result, err := h.exports.Bodies(c.Request.Context(), filter, format)
	if err != nil {
		h.fail(c, bodiesPath, "Error al exportar", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
