package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// RefreshFunc reloads one surface.
type RefreshFunc func(ctx context.Context) (dashboard.View, error)

// Scheduler periodically refreshes a set of dashboard surfaces.
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[dashboard.SurfaceName]RefreshFunc
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler. The first refresh runs as soon as it starts.
func New(interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		jobs:      make(map[dashboard.SurfaceName]RefreshFunc),
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Register adds a surface refresh to the job.
func (s *Scheduler) Register(name dashboard.SurfaceName, fn RefreshFunc) {
	s.jobs[name] = fn
}

// ForService registers refreshes for the named surfaces using svc.
// Only surfaces with fixed inputs can be refreshed; user-driven ones such as
// stocks are logged and skipped along with unknown names.
func ForService(s *Scheduler, svc *dashboard.Service, names []string, city string) {
	for _, raw := range names {
		name := dashboard.SurfaceName(raw)
		switch name {
		case dashboard.SurfaceTrending:
			s.Register(name, svc.LoadTrending)
		case dashboard.SurfacePopular:
			s.Register(name, svc.LoadPopular)
		case dashboard.SurfaceWeather:
			s.Register(name, func(ctx context.Context) (dashboard.View, error) { return svc.FetchWeather(ctx, city) })
		case dashboard.SurfaceQuote:
			s.Register(name, func(ctx context.Context) (dashboard.View, error) { return svc.FetchQuote(ctx, "") })
		case dashboard.SurfaceJoke:
			s.Register(name, svc.FetchJoke)
		default:
			s.logger.Warn("scheduler: surface cannot be refreshed", "surface", raw)
		}
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.jobs) == 0 || s.interval <= 0 {
		s.logger.Info("scheduler: nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce, context.Background()); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every registered surface concurrently.
// Failures are logged; each surface already shows its own error.
func (s *Scheduler) RunOnce(parent context.Context) {
	s.logger.Info("scheduler: refreshing surfaces", "count", len(s.jobs))

	ctx, cancel := context.WithTimeout(parent, s.jobTimeout())
	defer cancel()

	var g errgroup.Group
	for name, fn := range s.jobs {
		g.Go(func() error {
			view, err := fn(ctx)
			switch {
			case errors.Is(err, dashboard.ErrStale):
				s.logger.Debug("scheduler: refresh superseded", "surface", name)
			case err != nil:
				s.logger.Warn("scheduler: refresh failed", "surface", name, "error", err)
			default:
				s.logger.Debug("scheduler: refreshed", "surface", name, "count", view.Count)
			}
			return nil
		})
	}
	_ = g.Wait()
	s.logger.Info("scheduler: refresh completed")
}

func (s *Scheduler) jobTimeout() time.Duration {
	if s.timeout <= 0 {
		return 30 * time.Second
	}
	return s.timeout
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
