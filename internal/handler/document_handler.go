package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
	"github.com/noah-isme/cemetery-console/pkg/response"
)

type documentService interface {
	List(ctx context.Context, filter service.DocumentFilter) (viewmodel.Page[models.Document], error)
	Digitized(ctx context.Context, filter service.DocumentFilter) (viewmodel.Page[models.Document], error)
	Create(ctx context.Context, in models.DocumentInput) (*models.Document, error)
	Update(ctx context.Context, id string, in models.DocumentInput) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	DownloadReport(ctx context.Context, usuarioID string) (*httpclient.Blob, error)
}

const documentsPath = "/documents"

// DocumentHandler serves the documents pages and the report download.
type DocumentHandler struct {
	PageBase
	documents documentService
}

// NewDocumentHandler constructs a DocumentHandler.
func NewDocumentHandler(base PageBase, documents documentService) *DocumentHandler {
	return &DocumentHandler{PageBase: base, documents: documents}
}

type documentsView struct {
	Filter    service.DocumentFilter
	Page      viewmodel.Page[models.Document]
	Digitized bool
	Kinds     []string
}

var documentKinds = []string{models.DocumentReport, models.DocumentDigitized}

// List renders all documents.
func (h *DocumentHandler) List(c *gin.Context) {
	h.list(c, false)
}

// Digitized renders scanned forms only.
func (h *DocumentHandler) Digitized(c *gin.Context) {
	h.list(c, true)
}

func (h *DocumentHandler) list(c *gin.Context, digitized bool) {
	title := "Documentos"
	if digitized {
		title = "Documentos digitalizados"
	}
	p := h.page(c, title, "documents")

	var filter service.DocumentFilter
	_ = c.ShouldBindQuery(&filter)

	var (
		page viewmodel.Page[models.Document]
		err  error
	)
	if digitized {
		page, err = h.documents.Digitized(c.Request.Context(), filter)
	} else {
		page, err = h.documents.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.renderLoadError(c, "documents", p, err)
		return
	}
	p.Data = documentsView{Filter: filter, Page: page, Digitized: digitized, Kinds: documentKinds}
	h.render(c, "documents", p)
}

// Create registers a document entry owned by the signed-in operator.
func (h *DocumentHandler) Create(c *gin.Context) {
	var in models.DocumentInput
	_ = c.ShouldBind(&in)
	if in.UsuarioID == "" {
		if identity := middleware.CurrentIdentity(c); identity != nil {
			in.UsuarioID = identity.Subject
		}
	}
	if _, err := h.documents.Create(c.Request.Context(), in); err != nil {
		h.fail(c, documentsPath, "Error al crear el documento", err)
		return
	}
	h.succeed(c, documentsPath, "Documento creado correctamente")
}

// Update replaces a document entry.
func (h *DocumentHandler) Update(c *gin.Context) {
	var in models.DocumentInput
	_ = c.ShouldBind(&in)
	if _, err := h.documents.Update(c.Request.Context(), c.Param("id"), in); err != nil {
		h.fail(c, documentsPath, "Error al actualizar el documento", err)
		return
	}
	h.succeed(c, documentsPath, "Documento actualizado correctamente")
}

// Delete removes a document entry.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, documentsPath, "Error al eliminar el documento", err)
		return
	}
	h.succeed(c, documentsPath, "Documento eliminado correctamente")
}

// Report streams the operator's PDF report. Script-driven downloads get JSON errors so the
// page can show them without navigating.
func (h *DocumentHandler) Report(c *gin.Context) {
	subject := ""
	if identity := middleware.CurrentIdentity(c); identity != nil {
		subject = identity.Subject
	}

	blob, err := h.documents.DownloadReport(c.Request.Context(), subject)
	if err != nil {
		if strings.EqualFold(c.GetHeader("X-Requested-With"), "fetch") {
			response.Error(c, err)
			return
		}
		h.fail(c, documentsPath, "Error al descargar el reporte", err)
		return
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+blob.Filename+`"`)
	c.Data(http.StatusOK, contentType, blob.Data)
}
