package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/middleware"
	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/web"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

// maxUpload bounds attachments and scanned forms read into memory.
const maxUpload = 20 << 20

type pageRenderer interface {
	Render(c *gin.Context, status int, name string, page web.Page)
}

type flashStore interface {
	SetFlash(ctx context.Context, session *models.Session, flash models.Flash) error
	ConsumeFlash(ctx context.Context, session *models.Session) *models.Flash
}

// PageBase carries what every HTML handler needs.
type PageBase struct {
	renderer pageRenderer
	flashes  flashStore
	logger   *zap.Logger
}

// NewPageBase constructs the shared page helpers.
func NewPageBase(renderer pageRenderer, flashes flashStore, logger *zap.Logger) PageBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return PageBase{renderer: renderer, flashes: flashes, logger: logger}
}

// page builds the template envelope for the current operator, consuming any pending flash.
func (b PageBase) page(c *gin.Context, title, active string) web.Page {
	p := web.Page{Title: title, Active: active}
	if identity := middleware.CurrentIdentity(c); identity != nil {
		p.Role = identity.Role
		p.IsAdmin = identity.IsAdmin()
	}
	if session := middleware.CurrentSession(c); session != nil {
		p.Username = session.Username
		if b.flashes != nil {
			p.Flash = b.flashes.ConsumeFlash(c.Request.Context(), session)
		}
	}
	return p
}

func (b PageBase) render(c *gin.Context, name string, p web.Page) {
	b.renderer.Render(c, http.StatusOK, name, p)
}

// renderLoadError shows a failed load inline, keeping the page chrome.
func (b PageBase) renderLoadError(c *gin.Context, name string, p web.Page, err error) {
	b.logger.Warn("page load failed", zap.String("page", name), zap.Error(err))
	p.Error = appErrors.Message(err)
	status := appErrors.FromError(err).Status
	if status < http.StatusBadRequest || status == 499 {
		status = http.StatusBadGateway
	}
	b.renderer.Render(c, status, name, p)
}

func (b PageBase) setFlash(c *gin.Context, flash models.Flash) {
	session := middleware.CurrentSession(c)
	if session == nil || b.flashes == nil {
		return
	}
	if err := b.flashes.SetFlash(c.Request.Context(), session, flash); err != nil {
		b.logger.Warn("store flash failed", zap.Error(err))
	}
}

// succeed stores a success toast and redirects (post/redirect/get).
func (b PageBase) succeed(c *gin.Context, to, message string) {
	b.setFlash(c, models.Flash{Kind: models.FlashSuccess, Title: "Éxito", Message: message})
	c.Redirect(http.StatusSeeOther, to)
}

// fail stores a blocking error alert and redirects back.
func (b PageBase) fail(c *gin.Context, to, title string, err error) {
	b.logger.Info("mutation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	b.setFlash(c, models.Flash{Kind: models.FlashError, Title: title, Message: appErrors.Message(err)})
	c.Redirect(http.StatusSeeOther, to)
}

// readUpload loads an optional multipart file into an attachment. A missing field yields nil.
func readUpload(c *gin.Context, field string) (*models.Attachment, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "No se pudo leer el archivo")
	}
	return readFileHeader(header)
}

func readFileHeader(header *multipart.FileHeader) (*models.Attachment, error) {
	if header.Size > maxUpload {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El archivo supera el tamaño permitido")
	}
	f, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "No se pudo leer el archivo")
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUpload))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "No se pudo leer el archivo")
	}
	return &models.Attachment{Filename: header.Filename, Content: content}, nil
}

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Identificador inválido")
	}
	return id, nil
}
