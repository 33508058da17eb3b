package timetrack

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically flushes every tracked session via the same
// peek-and-reset path as a stats request. It is the safety net against
// missed disconnect events and keeps the durable counters close to
// real time. It also watches for the UTC month rolling over.
type Sweeper struct {
	tracker  *Tracker
	interval time.Duration
	logger   *slog.Logger

	// onMonthChange runs once when the UTC month changes between
	// sweeps. Used to re-reconcile activity roles after the monthly
	// counters reset.
	onMonthChange func(ctx context.Context)

	// Month tracking seeds from the first RunOnce so the comparison
	// always uses the caller's clock.
	seeded      bool
	storedMonth time.Month
	storedYear  int
}

// NewSweeper creates a Sweeper. interval defaults to 15 minutes when
// not positive; onMonthChange may be nil.
func NewSweeper(tracker *Tracker, interval time.Duration, onMonthChange func(ctx context.Context), logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		tracker:       tracker,
		interval:      interval,
		logger:        logger,
		onMonthChange: onMonthChange,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("time track sweep started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("time track sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx, time.Now().UTC())
		}
	}
}

// RunOnce flushes all tracked users once and fires the month-rollover
// hook when the UTC month has changed since the previous run.
func (s *Sweeper) RunOnce(ctx context.Context, now time.Time) {
	users := s.tracker.TrackedUsers()
	for _, id := range users {
		s.tracker.OnSnapshot(ctx, id, now)
	}
	s.logger.Debug("sweep complete", slog.Int("tracked", len(users)))

	if !s.seeded {
		s.seeded = true
		s.storedMonth = now.Month()
		s.storedYear = now.Year()
		return
	}

	if now.Month() != s.storedMonth || now.Year() != s.storedYear {
		s.logger.Info("month rollover detected",
			slog.Int("previous_month", int(s.storedMonth)),
			slog.Int("current_month", int(now.Month())),
		)
		s.storedMonth = now.Month()
		s.storedYear = now.Year()
		if s.onMonthChange != nil {
			s.onMonthChange(ctx)
		}
	}
}
