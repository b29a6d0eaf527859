package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/cemetery-console/internal/models"
)

// HealthTarget is one backend probed for readiness.
type HealthTarget struct {
	Name string
	URL  string
}

// HealthService probes the backends the console depends on.
type HealthService struct {
	targets []HealthTarget
	client  *http.Client
	metrics *MetricsService
	logger  *zap.Logger
}

// NewHealthService constructs a HealthService with a bounded probe timeout.
func NewHealthService(targets []HealthTarget, timeout time.Duration, metrics *MetricsService, logger *zap.Logger) *HealthService {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{
		targets: targets,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
		logger:  logger,
	}
}

// Ready pings every backend concurrently. Any answer below 500 counts as reachable.
func (s *HealthService) Ready(ctx context.Context) models.ReadinessReport {
	results := make([]models.BackendHealth, len(s.targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range s.targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = s.ping(gctx, target)
			return nil
		})
	}
	_ = g.Wait()

	report := models.ReadinessReport{Ready: true, Backends: results}
	for _, r := range results {
		if !r.Reachable {
			report.Ready = false
		}
	}
	return report
}

func (s *HealthService) ping(ctx context.Context, target HealthTarget) models.BackendHealth {
	result := models.BackendHealth{
		Name:       target.Name,
		URL:        target.URL,
		ObservedAt: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)

	status := 0
	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("backend unreachable", zap.String("backend", target.Name), zap.Error(err))
	} else {
		defer resp.Body.Close()
		status = resp.StatusCode
		result.StatusCode = resp.StatusCode
		result.Reachable = resp.StatusCode < http.StatusInternalServerError
		if !result.Reachable {
			result.Error = fmt.Sprintf("received status %d", resp.StatusCode)
		}
	}

	s.metrics.ObserveUpstream(target.Name, "PING", status, result.Duration)
	return result
}
