// Package repository defines persistence interfaces for the Alder API
// and their Postgres implementations.
package repository

import (
	"context"
	"time"

	"github.com/narlock/alder/internal/model"
)

// UserRepository persists lifetime focus totals and token balances.
type UserRepository interface {
	// EnsureUser creates the user row when absent. Idempotent.
	EnsureUser(ctx context.Context, userID string) error

	// FindByID returns the user, or nil when not found.
	FindByID(ctx context.Context, userID string) (*model.User, error)

	// AddTimeAndTokens adds both deltas to the user row in a single
	// statement so the counters cannot drift apart.
	AddTimeAndTokens(ctx context.Context, userID string, seconds, tokens int64) error

	// TopBy returns the top limit users ordered by field descending.
	// field must be "stime" or "tokens".
	TopBy(ctx context.Context, field string, limit int) ([]model.User, error)
}

// TimeRepository persists the per-day and per-month focus buckets.
type TimeRepository interface {
	// AddDailyTime adds seconds to the user's bucket for day,
	// creating the bucket when the day has rolled over.
	AddDailyTime(ctx context.Context, userID string, day time.Time, seconds int64) error

	// GetDailyTime returns the user's bucket for day, or nil.
	GetDailyTime(ctx context.Context, userID string, day time.Time) (*model.DailyTime, error)

	// AddMonthlyTime adds seconds to the user's bucket for the month
	// containing day, creating it when absent.
	AddMonthlyTime(ctx context.Context, userID string, day time.Time, seconds int64) error

	// MonthToDateSeconds returns the user's total for the month
	// containing day; zero when no bucket exists.
	MonthToDateSeconds(ctx context.Context, userID string, day time.Time) (int64, error)
}

// StreakRepository persists consecutive-day participation records.
type StreakRepository interface {
	// GetOrCreate returns the user's record, inserting a fresh one
	// dated today when none exists.
	GetOrCreate(ctx context.Context, userID string, today time.Time) (*model.Streak, error)

	// Save overwrites the user's record.
	Save(ctx context.Context, rec *model.Streak) error

	// TopBy returns the top limit records ordered by field
	// descending. field must be "current_streak" or "highest_streak".
	TopBy(ctx context.Context, field string, limit int) ([]model.Streak, error)
}
