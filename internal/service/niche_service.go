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
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type nicheStore interface {
	List(ctx context.Context) ([]models.Niche, error)
	Get(ctx context.Context, codigo string) (*models.Niche, error)
	Available(ctx context.Context) ([]models.Niche, error)
	UpdateState(ctx context.Context, codigo string, state models.NicheState) error
}

type assignmentStore interface {
	Create(ctx context.Context, in models.NicheAssignmentInput) (*models.NicheAssignment, error)
	OccupantByNiche(ctx context.Context, codigo string) (*models.Body, error)
	ByNiche(ctx context.Context, codigo string) (*models.NicheAssignment, error)
	Delete(ctx context.Context, id string) error
}

type unassignedBodyLister interface {
	Unassigned(ctx context.Context) ([]models.Body, error)
}

// NicheGrid is the niche map with its legend figures.
type NicheGrid struct {
	Cells []viewmodel.NicheCell
	Stats viewmodel.OccupancyStats
}

// NicheDetail is a niche reconciled with its occupant.
type NicheDetail struct {
	Niche                models.Niche
	RawState             models.NicheState
	Occupant             *models.Body
	Badge                string
	CanRelease           bool
	CanToggleMaintenance bool
}

// AssignOptions are the choices offered by the assign form.
type AssignOptions struct {
	Niches []models.Niche
	Bodies []models.Body
}

// NicheService implements the niche map use cases.
type NicheService struct {
	niches      nicheStore
	assignments assignmentStore
	bodies      unassignedBodyLister
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewNicheService constructs a NicheService.
func NewNicheService(niches nicheStore, assignments assignmentStore, bodies unassignedBodyLister, validate *validator.Validate, logger *zap.Logger) *NicheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NicheService{niches: niches, assignments: assignments, bodies: bodies, validator: validate, logger: logger}
}

// Grid lists every niche in display order with occupancy figures.
func (s *NicheService) Grid(ctx context.Context) (*NicheGrid, error) {
	niches, err := s.niches.List(ctx)
	if err != nil {
		return nil, err
	}
	return &NicheGrid{Cells: viewmodel.NicheCells(niches), Stats: viewmodel.Occupancy(niches)}, nil
}

// Detail loads a niche and, when it is stored as occupied, its occupant. A failed occupant
// lookup is treated as no occupant.
func (s *NicheService) Detail(ctx context.Context, codigo string) (*NicheDetail, error) {
	niche, err := s.niches.Get(ctx, codigo)
	if err != nil {
		return nil, err
	}

	var occupant *models.Body
	if niche.Estado == models.NicheOccupied {
		occupant, err = s.assignments.OccupantByNiche(ctx, codigo)
		if err != nil {
			s.logger.Warn("occupant lookup failed", zap.String("niche", codigo), zap.Error(err))
			occupant = nil
		}
	}

	detail := &NicheDetail{Niche: *niche, RawState: niche.Estado, Occupant: occupant}
	detail.Niche.Estado = viewmodel.DisplayState(niche.Estado, occupant != nil)
	detail.Badge = viewmodel.NicheBadge(detail.Niche.Estado)
	detail.CanRelease = detail.Niche.Estado == models.NicheOccupied
	// A stored OCUPADO niche may still hold an assignment the lookup could not confirm.
	detail.CanToggleMaintenance = detail.RawState != models.NicheOccupied
	return detail, nil
}

// AssignOptions fetches available niches and unassigned bodies concurrently.
func (s *NicheService) AssignOptions(ctx context.Context) (*AssignOptions, error) {
	var opts AssignOptions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		niches, err := s.niches.Available(gctx)
		if err != nil {
			return err
		}
		opts.Niches = viewmodel.SortNiches(niches)
		return nil
	})
	g.Go(func() error {
		bodies, err := s.bodies.Unassigned(gctx)
		if err != nil {
			return err
		}
		opts.Bodies = bodies
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Assign places a body in a niche. The niche state is not re-checked here: only available
// niches and unassigned bodies are offered by the form.
func (s *NicheService) Assign(ctx context.Context, in models.NicheAssignmentInput) (*models.NicheAssignment, error) {
	in.CodigoNicho = strings.TrimSpace(in.CodigoNicho)
	in.IDCadaver = strings.TrimSpace(in.IDCadaver)
	if err := s.validator.Struct(in); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Debe seleccionar un nicho y un cuerpo")
	}

	assignment, err := s.assignments.Create(ctx, in)
	if err != nil {
		s.logger.Warn("assign niche failed", zap.String("niche", in.CodigoNicho), zap.String("body", in.IDCadaver), zap.Error(err))
		return nil, err
	}
	s.logger.Info("niche assigned", zap.String("niche", in.CodigoNicho), zap.String("body", in.IDCadaver))
	return assignment, nil
}

// Release deletes the active assignment of a niche and returns the refreshed detail.
// A niche whose assignment is already gone reports ErrNicheAlreadyReleased. When the
// refresh fails after a successful delete the release still succeeds and the detail
// carries only the niche code.
func (s *NicheService) Release(ctx context.Context, codigo string) (*NicheDetail, error) {
	assignment, err := s.assignments.ByNiche(ctx, codigo)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrNicheAlreadyReleased.Code, appErrors.ErrNicheAlreadyReleased.Status, appErrors.ErrNicheAlreadyReleased.Message)
		}
		return nil, err
	}
	if assignment == nil || assignment.ID == "" {
		return nil, appErrors.ErrNicheAlreadyReleased
	}

	if err := s.assignments.Delete(ctx, assignment.ID); err != nil {
		if httpclient.IsNotFound(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrNicheAlreadyReleased.Code, appErrors.ErrNicheAlreadyReleased.Status, appErrors.ErrNicheAlreadyReleased.Message)
		}
		s.logger.Warn("release niche failed", zap.String("niche", codigo), zap.Error(err))
		return nil, err
	}
	s.logger.Info("niche released", zap.String("niche", codigo), zap.String("body", assignment.IDCadaver))

	detail, err := s.Detail(ctx, codigo)
	if err != nil {
		s.logger.Warn("released niche refresh failed", zap.String("niche", codigo), zap.Error(err))
		return &NicheDetail{Niche: models.Niche{Codigo: codigo}}, nil
	}
	return detail, nil
}

// ToggleMaintenance flips a niche between DISPONIBLE and MANTENIMIENTO. Niches stored as
// OCUPADO are rejected with ErrNicheOccupied even when their occupant could not be loaded.
func (s *NicheService) ToggleMaintenance(ctx context.Context, codigo string) (models.NicheState, error) {
	detail, err := s.Detail(ctx, codigo)
	if err != nil {
		return "", err
	}

	var next models.NicheState
	switch detail.RawState {
	case models.NicheMaintenance:
		next = models.NicheAvailable
	case models.NicheAvailable:
		next = models.NicheMaintenance
	default:
		return "", appErrors.ErrNicheOccupied
	}

	if err := s.niches.UpdateState(ctx, codigo, next); err != nil {
		s.logger.Warn("toggle maintenance failed", zap.String("niche", codigo), zap.Error(err))
		return "", err
	}
	return next, nil
}
