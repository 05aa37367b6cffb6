package service

import (
	"context"
	"time"

	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/sources"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultHealthTimeout = 5 * time.Second

// HealthService probes every configured source.
type HealthService struct {
	Sources []sources.Pinger
	Timeout time.Duration
}

// NewHealthService creates a new HealthService. A zero timeout uses the default.
func NewHealthService(timeout time.Duration, pingers ...sources.Pinger) *HealthService {
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}
	return &HealthService{Sources: pingers, Timeout: timeout}
}

// Check pings every enabled source concurrently. Disabled sources are
// reported as healthy without a request. The report is OK when every
// enabled source answered with a 200.
func (s *HealthService) Check(ctx context.Context) models.HealthReport {
	results := make([]models.SourceStatus, len(s.Sources))

	g := new(errgroup.Group)
	for i, source := range s.Sources {
		i, source := i, source
		g.Go(func() error {
			results[i] = s.probe(ctx, source)
			return nil
		})
	}
	_ = g.Wait()

	report := models.HealthReport{OK: true, Results: results}
	for _, r := range results {
		if r.Enabled && !r.OK {
			report.OK = false
		}
	}
	return report
}

func (s *HealthService) probe(ctx context.Context, source sources.Pinger) models.SourceStatus {
	if !source.Enabled() {
		return models.SourceStatus{Name: source.Name(), Enabled: false, OK: true}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if err := source.Ping(ctx); err != nil {
		logger.ForSource(source.Name()).Warn("health probe failed", zap.Error(err))
		return models.SourceStatus{Name: source.Name(), Enabled: true, OK: false, Message: err.Error()}
	}
	return models.SourceStatus{Name: source.Name(), Enabled: true, OK: true, Message: "ok"}
}
