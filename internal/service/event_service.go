package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type eventStore interface {
	ListByBody(ctx context.Context, idCadaver string) ([]models.Event, error)
	Create(ctx context.Context, in models.EventInput) (*models.Event, error)
	Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

type bodyGetter interface {
	Get(ctx context.Context, id string) (*models.Body, error)
}

type nicheLocator interface {
	NicheByBody(ctx context.Context, idCadaver string) (*models.Niche, error)
}

// EventFilter narrows a body's event log.
type EventFilter struct {
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// BodyEvents is the event log page of one body.
type BodyEvents struct {
	Body   models.Body
	Niche  *models.Niche
	Events viewmodel.Page[models.Event]
}

// EventService backs the per-body event log.
type EventService struct {
	events    eventStore
	bodies    bodyGetter
	niches    nicheLocator
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewEventService constructs an EventService.
func NewEventService(events eventStore, bodies bodyGetter, niches nicheLocator, validate *validator.Validate, pageSize int, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = viewmodel.DefaultPageSize
	}
	return &EventService{events: events, bodies: bodies, niches: niches, validator: validate, logger: logger, pageSize: pageSize}
}

// ForBody fetches the body, its events and its niche concurrently. A failed niche lookup
// only hides the niche.
func (s *EventService) ForBody(ctx context.Context, idCadaver string, filter EventFilter) (*BodyEvents, error) {
	var (
		body   *models.Body
		events []models.Event
		niche  *models.Niche
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		body, err = s.bodies.Get(gctx, idCadaver)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.events.ListByBody(gctx, idCadaver)
		return err
	})
	if s.niches != nil {
		g.Go(func() error {
			n, err := s.niches.NicheByBody(gctx, idCadaver)
			if err != nil {
				s.logger.Warn("niche lookup failed", zap.String("body", idCadaver), zap.Error(err))
				return nil
			}
			niche = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := viewmodel.Filter(events, func(e models.Event) bool {
		return viewmodel.Matches(filter.Query, e.TipoEvento, e.ResumenEvento, e.FechaEvento, viewmodel.FormatDate(e.FechaEvento))
	})
	size := filter.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	return &BodyEvents{Body: *body, Niche: niche, Events: viewmodel.Paginate(filtered, filter.Page, size)}, nil
}

// Create records an event for a body.
func (s *EventService) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	event, err := s.events.Create(ctx, in)
	if err != nil {
		s.logger.Warn("create event failed", zap.String("body", in.IDCadaver), zap.Error(err))
		return nil, err
	}
	return event, nil
}

// Update replaces an event. Without a new attachment the stored file is kept by the backend.
func (s *EventService) Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error) {
	in, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	event, err := s.events.Update(ctx, id, in)
	if err != nil {
		s.logger.Warn("update event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		s.logger.Warn("delete event failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *EventService) validate(in models.EventInput) (models.EventInput, error) {
	in.IDCadaver = strings.TrimSpace(in.IDCadaver)
	in.FechaEvento = strings.TrimSpace(in.FechaEvento)
	in.TipoEvento = strings.TrimSpace(in.TipoEvento)
	if in.IDCadaver == "" {
		return in, appErrors.Clone(appErrors.ErrValidation, "Debe indicar el cuerpo del evento")
	}
	if err := s.validator.Struct(in); err != nil {
		return in, validationError(err)
	}
	if in.Attachment != nil && len(in.Attachment.Content) == 0 {
		in.Attachment = nil
	}
	return in, nil
}
