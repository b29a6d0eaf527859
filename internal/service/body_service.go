package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type bodyStore interface {
	List(ctx context.Context) ([]models.Body, error)
	Get(ctx context.Context, id string) (*models.Body, error)
	Create(ctx context.Context, in models.BodyInput) (*models.Body, error)
	Update(ctx context.Context, id string, in models.BodyInput) (*models.Body, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]models.Body, error)
	Digitize(ctx context.Context, file models.Attachment) (*models.Body, error)
}

// BodyService backs the bodies register.
type BodyService struct {
	bodies    bodyStore
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewBodyService constructs a BodyService.
func NewBodyService(bodies bodyStore, validate *validator.Validate, pageSize int, logger *zap.Logger) *BodyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = viewmodel.DefaultPageSize
	}
	return &BodyService{bodies: bodies, validator: validate, logger: logger, pageSize: pageSize}
}

// BodyMatches applies the register filter to one record.
func BodyMatches(b models.Body, filter models.BodyFilter) bool {
	if filter.Estado != "" && !strings.EqualFold(b.Estado, filter.Estado) {
		return false
	}
	return viewmodel.Matches(filter.Query, b.Nombre, b.Apellido, b.DocumentoIdentidad, b.ID, b.NumeroProtocoloNecropsia)
}

// Filtered fetches every body and keeps the ones matching filter.
func (s *BodyService) Filtered(ctx context.Context, filter models.BodyFilter) ([]models.Body, error) {
	bodies, err := s.bodies.List(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.Filter(bodies, func(b models.Body) bool { return BodyMatches(b, filter) }), nil
}

// List returns one page of the filtered register.
func (s *BodyService) List(ctx context.Context, filter models.BodyFilter) (viewmodel.Page[models.Body], error) {
	bodies, err := s.Filtered(ctx, filter)
	if err != nil {
		return viewmodel.Page[models.Body]{}, err
	}
	size := filter.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	return viewmodel.Paginate(bodies, filter.Page, size), nil
}

// Get returns a single body.
func (s *BodyService) Get(ctx context.Context, id string) (*models.Body, error) {
	return s.bodies.Get(ctx, id)
}

// Create validates and registers a body, returning the success text shown to the operator.
// The backend decides whether estado is acceptable.
func (s *BodyService) Create(ctx context.Context, in models.BodyInput) (*models.Body, string, error) {
	in = trimBodyInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, "", validationError(err)
	}
	body, err := s.bodies.Create(ctx, in)
	if err != nil {
		s.logger.Warn("create body failed", zap.String("documento", in.DocumentoIdentidad), zap.Error(err))
		return nil, "", err
	}
	return body, fmt.Sprintf("Cuerpo %s %s creado correctamente", in.Nombre, in.Apellido), nil
}

// Update replaces a body record.
func (s *BodyService) Update(ctx context.Context, id string, in models.BodyInput) (*models.Body, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Identificador de cuerpo inválido")
	}
	in = trimBodyInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, validationError(err)
	}
	body, err := s.bodies.Update(ctx, id, in)
	if err != nil {
		s.logger.Warn("update body failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return body, nil
}

// Delete removes a body record.
func (s *BodyService) Delete(ctx context.Context, id string) error {
	if err := s.bodies.Delete(ctx, id); err != nil {
		s.logger.Warn("delete body failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Search runs the backend quick search. A blank query returns nothing.
func (s *BodyService) Search(ctx context.Context, query string) ([]models.Body, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.bodies.Search(ctx, query)
}

// Digitize sends a scanned form to the OCR endpoint, which registers the body it reads.
func (s *BodyService) Digitize(ctx context.Context, file models.Attachment) (*models.Body, error) {
	if len(file.Content) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Debe seleccionar un archivo")
	}
	body, err := s.bodies.Digitize(ctx, file)
	if err != nil {
		s.logger.Warn("digitize failed", zap.String("file", file.Filename), zap.Error(err))
		return nil, err
	}
	return body, nil
}

func trimBodyInput(in models.BodyInput) models.BodyInput {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.DocumentoIdentidad = strings.TrimSpace(in.DocumentoIdentidad)
	in.Estado = strings.TrimSpace(in.Estado)
	return in
}
