package streak

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/narlock/alder/internal/model"
)

// Store is the durable streak record access the service needs.
// Implemented by the Alder API client.
type Store interface {
	// GetOrCreate returns the user's streak record, creating a fresh
	// one dated today when none exists.
	GetOrCreate(ctx context.Context, userID string, today time.Time) (model.Streak, error)
	// Save persists the record.
	Save(ctx context.Context, rec model.Streak) error
}

// Service counts a user's participation toward their streak.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a streak Service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Touch marks now's UTC day as active for the user. Safe to call any
// number of times per day; only the first call of a day changes the
// record.
func (s *Service) Touch(ctx context.Context, userID string, now time.Time) error {
	rec, err := s.store.GetOrCreate(ctx, userID, now)
	if err != nil {
		return fmt.Errorf("get streak for %s: %w", userID, err)
	}

	updated := Advance(rec, now)
	if updated == rec {
		return nil
	}

	if err := s.store.Save(ctx, updated); err != nil {
		return fmt.Errorf("save streak for %s: %w", userID, err)
	}
	s.logger.Debug("streak advanced",
		slog.String("user_id", userID),
		slog.Int("current", updated.CurrentStreak),
		slog.Int("highest", updated.HighestStreak),
	)
	return nil
}

// Current returns the user's record after counting today.
func (s *Service) Current(ctx context.Context, userID string, now time.Time) (model.Streak, error) {
	if err := s.Touch(ctx, userID, now); err != nil {
		return model.Streak{}, err
	}
	return s.store.GetOrCreate(ctx, userID, now)
}
