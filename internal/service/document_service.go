package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type documentStore interface {
	List(ctx context.Context) ([]models.Document, error)
	Create(ctx context.Context, in models.DocumentInput) (*models.Document, error)
	Update(ctx context.Context, id string, in models.DocumentInput) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	DownloadReport(ctx context.Context, usuarioID string) (*httpclient.Blob, error)
}

// DocumentFilter narrows the documents table.
type DocumentFilter struct {
	Query    string `form:"q"`
	Tipo     string `form:"tipo"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// DocumentService backs the documents pages.
type DocumentService struct {
	documents documentStore
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(documents documentStore, validate *validator.Validate, pageSize int, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = viewmodel.DefaultPageSize
	}
	return &DocumentService{documents: documents, validator: validate, logger: logger, pageSize: pageSize}
}

// List returns one page of documents matching filter.
func (s *DocumentService) List(ctx context.Context, filter DocumentFilter) (viewmodel.Page[models.Document], error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		return viewmodel.Page[models.Document]{}, err
	}
	filtered := viewmodel.Filter(docs, func(d models.Document) bool {
		if filter.Tipo != "" && !strings.EqualFold(d.Tipo, filter.Tipo) {
			return false
		}
		return viewmodel.Matches(filter.Query, d.Nombre, d.ID, d.Tipo, d.UsuarioID)
	})
	size := filter.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	return viewmodel.Paginate(filtered, filter.Page, size), nil
}

// Digitized lists only scanned forms.
func (s *DocumentService) Digitized(ctx context.Context, filter DocumentFilter) (viewmodel.Page[models.Document], error) {
	filter.Tipo = models.DocumentDigitized
	return s.List(ctx, filter)
}

// Create registers a document entry.
func (s *DocumentService) Create(ctx context.Context, in models.DocumentInput) (*models.Document, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if err := s.validator.Struct(in); err != nil {
		return nil, validationError(err)
	}
	return s.documents.Create(ctx, in)
}

// Update replaces a document entry.
func (s *DocumentService) Update(ctx context.Context, id string, in models.DocumentInput) (*models.Document, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if err := s.validator.Struct(in); err != nil {
		return nil, validationError(err)
	}
	return s.documents.Update(ctx, id, in)
}

// Delete removes a document entry.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		s.logger.Warn("delete document failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// DownloadReport fetches the PDF report generated for the signed-in operator.
func (s *DocumentService) DownloadReport(ctx context.Context, usuarioID string) (*httpclient.Blob, error) {
	if strings.TrimSpace(usuarioID) == "" {
		return nil, appErrors.ErrUnauthorized
	}
	blob, err := s.documents.DownloadReport(ctx, usuarioID)
	if err != nil {
		s.logger.Warn("report download failed", zap.String("usuario", usuarioID), zap.Error(err))
		return nil, err
	}
	return blob, nil
}
