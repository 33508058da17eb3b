// Package timetrack implements voice-session focus-time tracking: an
// in-memory registry of running sessions, the elapsed-time and token
// arithmetic, and the lifecycle controller that turns join/leave/sweep
// events into durable ledger updates through the Alder API.
package timetrack

import (
	"context"
	"log/slog"
	"time"
)

// Ledger applies accrued time to the durable per-user counters. The
// lifetime, daily and monthly totals must all receive the same delta
// within one Flush; the persistence service owns partial-failure
// handling beyond that.
type Ledger interface {
	EnsureUser(ctx context.Context, userID string) error
	AddTimeAndTokens(ctx context.Context, userID string, seconds, tokens int64) error
	AddDailyTime(ctx context.Context, userID string, seconds int64) error
	AddMonthlyTime(ctx context.Context, userID string, seconds int64) error
}

// StreakUpdater counts a user's participation for the current UTC day.
type StreakUpdater interface {
	Touch(ctx context.Context, userID string, now time.Time) error
}

// FlushResult reports one user's flushed interval. Err is set when the
// durable update failed; in that case the interval is lost by policy,
// never retried and never re-accrued.
type FlushResult struct {
	UserID         string
	ElapsedSeconds int64
	TokensEarned   int64
	Err            error
}

// Tracker is the session lifecycle controller. It owns the ordering
// guarantee that the registry is mutated before any ledger call, so an
// event arriving for the same user mid-flush sees a consistent
// registry state.
type Tracker struct {
	registry *Registry
	ledger   Ledger
	streaks  StreakUpdater
	logger   *slog.Logger
}

// NewTracker creates a Tracker. streaks may be nil when streak
// counting is not wanted (tests, tools).
func NewTracker(registry *Registry, ledger Ledger, streaks StreakUpdater, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		registry: registry,
		ledger:   ledger,
		streaks:  streaks,
		logger:   logger,
	}
}

// OnJoin starts timing a user who entered a focus channel. A join for
// a user already being timed is a no-op so partially accrued time is
// never lost. The user's durable records are created if absent and the
// day counts toward their streak.
func (t *Tracker) OnJoin(ctx context.Context, userID string, now time.Time) {
	if !t.registry.Begin(userID, now) {
		t.logger.Debug("join for already tracked user ignored", slog.String("user_id", userID))
		return
	}
	if err := t.ledger.EnsureUser(ctx, userID); err != nil {
		t.logger.Error("ensure user failed on join",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	t.touchStreak(ctx, userID, now)
	t.logger.Info("session started", slog.String("user_id", userID))
}

// OnLeave stops timing a user and flushes the accrued interval. A
// leave for a user with no active session (duplicate event, or already
// flushed by shutdown) is a logged no-op reporting zero elapsed time.
func (t *Tracker) OnLeave(ctx context.Context, userID string, now time.Time) FlushResult {
	start, ok := t.registry.End(userID)
	if !ok {
		t.logger.Warn("leave for untracked user ignored", slog.String("user_id", userID))
		return FlushResult{UserID: userID}
	}
	res := t.flush(ctx, userID, ElapsedSeconds(start, now))
	t.logger.Info("session ended",
		slog.String("user_id", userID),
		slog.Int64("elapsed", res.ElapsedSeconds),
		slog.Int64("tokens", res.TokensEarned),
	)
	return res
}

// OnSnapshot flushes a user's running interval without ending the
// session: the timer restarts at now. Untracked users get their
// durable records ensured and a zero result. The day counts toward
// their streak either way.
func (t *Tracker) OnSnapshot(ctx context.Context, userID string, now time.Time) FlushResult {
	if err := t.ledger.EnsureUser(ctx, userID); err != nil {
		t.logger.Error("ensure user failed on snapshot",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	t.touchStreak(ctx, userID, now)

	start, ok := t.registry.PeekAndReset(userID, now)
	if !ok {
		return FlushResult{UserID: userID}
	}
	res := t.flush(ctx, userID, ElapsedSeconds(start, now))
	t.logger.Info("session snapshot flushed",
		slog.String("user_id", userID),
		slog.Int64("elapsed", res.ElapsedSeconds),
		slog.Int64("tokens", res.TokensEarned),
	)
	return res
}

// OnStartup begins sessions for every user already connected to a
// focus channel when the process comes up.
func (t *Tracker) OnStartup(ctx context.Context, userIDs []string, now time.Time) {
	for _, id := range userIDs {
		t.OnJoin(ctx, id, now)
	}
	t.logger.Info("startup scan complete", slog.Int("tracked", t.registry.Len()))
}

// OnShutdown flushes every active session. Entries stay in the
// registry since the process is terminating anyway.
func (t *Tracker) OnShutdown(ctx context.Context, now time.Time) []FlushResult {
	sessions := t.registry.Snapshot()
	results := make([]FlushResult, 0, len(sessions))
	for id, start := range sessions {
		res := t.flush(ctx, id, ElapsedSeconds(start, now))
		t.logger.Info("session flushed at shutdown",
			slog.String("user_id", id),
			slog.Int64("elapsed", res.ElapsedSeconds),
			slog.Int64("tokens", res.TokensEarned),
		)
		results = append(results, res)
	}
	return results
}

// IsTracked reports whether userID currently has a timed session.
func (t *Tracker) IsTracked(userID string) bool {
	return t.registry.Contains(userID)
}

// TrackedUsers returns the IDs of all currently timed users.
func (t *Tracker) TrackedUsers() []string {
	sessions := t.registry.Snapshot()
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	return ids
}

// flush writes one elapsed interval to the three durable counters and
// the token balance. The registry entry for the user has already been
// removed or reset by the caller, so a failure here loses the interval
// rather than double counting it.
func (t *Tracker) flush(ctx context.Context, userID string, elapsed int64) FlushResult {
	res := FlushResult{
		UserID:         userID,
		ElapsedSeconds: elapsed,
		TokensEarned:   TokensFor(elapsed),
	}

	if err := t.ledger.EnsureUser(ctx, userID); err != nil {
		res.Err = err
	} else if err := t.ledger.AddTimeAndTokens(ctx, userID, res.ElapsedSeconds, res.TokensEarned); err != nil {
		res.Err = err
	} else if err := t.ledger.AddDailyTime(ctx, userID, res.ElapsedSeconds); err != nil {
		res.Err = err
	} else if err := t.ledger.AddMonthlyTime(ctx, userID, res.ElapsedSeconds); err != nil {
		res.Err = err
	}

	if res.Err != nil {
		t.logger.Error("flush failed, interval lost",
			slog.String("user_id", userID),
			slog.Int64("elapsed", res.ElapsedSeconds),
			slog.String("error", res.Err.Error()),
		)
	}
	return res
}

func (t *Tracker) touchStreak(ctx context.Context, userID string, now time.Time) {
	if t.streaks == nil {
		return
	}
	if err := t.streaks.Touch(ctx, userID, now); err != nil {
		t.logger.Error("streak update failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
