package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
)

type bodyLister interface {
	List(ctx context.Context) ([]models.Body, error)
}

type userLister interface {
	List(ctx context.Context) ([]models.User, error)
}

var monthAbbrev = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// Count is one labelled bar of a chart.
type Count struct {
	Label string
	Value int
	Pct   int
}

// GeneralStatistics is the body and niche overview.
type GeneralStatistics struct {
	TotalBodies     int
	TotalUsers      int
	UsersAvailable  bool
	AvailableNiches int
	OccupancyPct    int
	Monthly         []Count
	ByState         []Count
	Yearly          []Count
}

// OccupancyStatistics details niche usage.
type OccupancyStatistics struct {
	viewmodel.OccupancyStats
	ByState []Count
}

// DocumentationStatistics breaks documents down by kind.
type DocumentationStatistics struct {
	Total  int
	ByTipo []Count
}

// StatisticsService computes the statistics pages from live backend data.
type StatisticsService struct {
	bodies    bodyLister
	niches    nicheLister
	documents documentLister
	users     userLister
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatisticsService constructs a StatisticsService.
func NewStatisticsService(bodies bodyLister, niches nicheLister, documents documentLister, users userLister, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{bodies: bodies, niches: niches, documents: documents, users: users, logger: logger, now: time.Now}
}

// General computes entries per month over the last 12 months, the estado distribution and
// entries per year for the current and previous year. The user count is best effort since
// the auth service only lists users to administrators.
func (s *StatisticsService) General(ctx context.Context) (*GeneralStatistics, error) {
	var (
		bodies  []models.Body
		niches  []models.Niche
		users   []models.User
		usersOK bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bodies, err = s.bodies.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		niches, err = s.niches.List(gctx)
		return err
	})
	if s.users != nil {
		g.Go(func() error {
			list, err := s.users.List(gctx)
			if err != nil {
				s.logger.Info("user count unavailable", zap.Error(err))
				return nil
			}
			users, usersOK = list, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := viewmodel.Occupancy(niches)
	now := s.now()
	return &GeneralStatistics{
		TotalBodies:     len(bodies),
		TotalUsers:      len(users),
		UsersAvailable:  usersOK,
		AvailableNiches: stats.Available,
		OccupancyPct:    occupiedShare(niches),
		Monthly:         monthlyEntries(bodies, now),
		ByState:         stateDistribution(bodies),
		Yearly:          yearlyEntries(bodies, now),
	}, nil
}

// Occupancy computes niche counts and shares per state.
func (s *StatisticsService) Occupancy(ctx context.Context) (*OccupancyStatistics, error) {
	niches, err := s.niches.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := viewmodel.Occupancy(niches)
	return &OccupancyStatistics{
		OccupancyStats: stats,
		ByState: []Count{
			{Label: viewmodel.NicheStateLabel(models.NicheOccupied), Value: stats.Occupied, Pct: stats.OccupiedPct},
			{Label: viewmodel.NicheStateLabel(models.NicheAvailable), Value: stats.Available, Pct: stats.AvailablePct},
			{Label: viewmodel.NicheStateLabel(models.NicheMaintenance), Value: stats.Maintenance, Pct: stats.MaintenancePct},
		},
	}, nil
}

// Documentation counts documents per tipo, largest first.
func (s *StatisticsService) Documentation(ctx context.Context) (*DocumentationStatistics, error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{models.DocumentReport: 0, models.DocumentDigitized: 0}
	for _, d := range docs {
		tipo := strings.ToUpper(strings.TrimSpace(d.Tipo))
		if tipo == "" {
			tipo = "SIN TIPO"
		}
		counts[tipo]++
	}
	return &DocumentationStatistics{Total: len(docs), ByTipo: rankCounts(counts, len(docs))}, nil
}

func monthlyEntries(bodies []models.Body, now time.Time) []Count {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	months := make([]Count, 12)
	index := make(map[string]int, 12)
	for i := range months {
		m := start.AddDate(0, i, 0)
		months[i].Label = monthAbbrev[m.Month()-1] + " " + m.Format("2006")
		index[m.Format("2006-01")] = i
	}
	for _, b := range bodies {
		t, ok := viewmodel.ParseDate(b.FechaIngreso)
		if !ok {
			continue
		}
		if i, found := index[t.Format("2006-01")]; found {
			months[i].Value++
		}
	}
	return months
}

func yearlyEntries(bodies []models.Body, now time.Time) []Count {
	years := []Count{{Label: strconv.Itoa(now.Year() - 1)}, {Label: strconv.Itoa(now.Year())}}
	for _, b := range bodies {
		t, ok := viewmodel.ParseDate(b.FechaIngreso)
		if !ok {
			continue
		}
		switch t.Year() {
		case now.Year() - 1:
			years[0].Value++
		case now.Year():
			years[1].Value++
		}
	}
	return years
}

func stateDistribution(bodies []models.Body) []Count {
	counts := map[string]int{}
	for _, b := range bodies {
		estado := strings.ToUpper(strings.TrimSpace(b.Estado))
		if estado == "" {
			estado = "SIN ESTADO"
		}
		counts[estado]++
	}
	return rankCounts(counts, len(bodies))
}

func rankCounts(counts map[string]int, total int) []Count {
	out := make([]Count, 0, len(counts))
	for label, value := range counts {
		out = append(out, Count{Label: label, Value: value, Pct: viewmodel.Percent(value, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
