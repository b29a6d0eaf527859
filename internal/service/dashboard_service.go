package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
)

type bodySummarySource interface {
	List(ctx context.Context) ([]models.Body, error)
	Recent(ctx context.Context, n int) ([]models.Body, error)
	Search(ctx context.Context, query string) ([]models.Body, error)
}

type nicheLister interface {
	List(ctx context.Context) ([]models.Niche, error)
}

type documentLister interface {
	List(ctx context.Context) ([]models.Document, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	RecentEntries int
}

// Dashboard is the landing page summary.
type Dashboard struct {
	TotalBodies     int
	OccupancyPct    int
	OccupancyColor  string
	DigitizedCount  int
	RecentBodies    []models.Body
	Query           string
	SearchResults   []models.Body
	SearchPerformed bool
	SearchError     string
}

// DashboardService orchestrates composition of the dashboard.
type DashboardService struct {
	bodies    bodySummarySource
	niches    nicheLister
	documents documentLister
	logger    *zap.Logger
	cfg       DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(bodies bodySummarySource, niches nicheLister, documents documentLister, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.RecentEntries <= 0 {
		cfg.RecentEntries = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{bodies: bodies, niches: niches, documents: documents, logger: logger, cfg: cfg}
}

// Summary fetches the dashboard figures concurrently. A non-empty query also runs the
// remote quick search; a failed search is reported inline instead of failing the page.
func (s *DashboardService) Summary(ctx context.Context, query string) (*Dashboard, error) {
	out := &Dashboard{Query: strings.TrimSpace(query)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bodies, err := s.bodies.List(gctx)
		if err != nil {
			return err
		}
		out.TotalBodies = len(bodies)
		return nil
	})
	g.Go(func() error {
		niches, err := s.niches.List(gctx)
		if err != nil {
			return err
		}
		out.OccupancyPct = occupiedShare(niches)
		out.OccupancyColor = viewmodel.OccupancyColor(out.OccupancyPct)
		return nil
	})
	g.Go(func() error {
		docs, err := s.documents.List(gctx)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if strings.EqualFold(d.Tipo, models.DocumentDigitized) {
				out.DigitizedCount++
			}
		}
		return nil
	})
	g.Go(func() error {
		recent, err := s.bodies.Recent(gctx, s.cfg.RecentEntries)
		if err != nil {
			return err
		}
		out.RecentBodies = recent
		return nil
	})
	if out.Query != "" {
		out.SearchPerformed = true
		g.Go(func() error {
			results, err := s.bodies.Search(gctx, out.Query)
			if err != nil {
				s.logger.Warn("quick search failed", zap.String("query", out.Query), zap.Error(err))
				out.SearchError = "No se pudo realizar la búsqueda. Intente nuevamente."
				return nil
			}
			out.SearchResults = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard load failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// occupiedShare is the percentage of niches that are not available.
func occupiedShare(niches []models.Niche) int {
	available := 0
	for _, n := range niches {
		if n.Estado == models.NicheAvailable {
			available++
		}
	}
	return viewmodel.Percent(len(niches)-available, len(niches))
}
