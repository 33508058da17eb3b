package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/narlock/alder/internal/model"
)

// PostgresStreakRepo implements StreakRepository on Postgres.
type PostgresStreakRepo struct {
	db *sql.DB
}

// NewPostgresStreakRepo creates a PostgresStreakRepo.
func NewPostgresStreakRepo(db *sql.DB) *PostgresStreakRepo {
	return &PostgresStreakRepo{db: db}
}

func (r *PostgresStreakRepo) GetOrCreate(ctx context.Context, userID string, today time.Time) (*model.Streak, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO streaks (user_id, last_active)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, today.UTC().Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to create streak for %s: %w", userID, err)
	}

	rec := model.Streak{UserID: userID}
	var lastActive time.Time
	err = r.db.QueryRowContext(ctx,
		`SELECT current_streak, highest_streak, last_active FROM streaks WHERE user_id = $1`,
		userID).Scan(&rec.CurrentStreak, &rec.HighestStreak, &lastActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak for %s: %w", userID, err)
	}
	rec.LastActive = lastActive.Format(model.DateLayout)
	return &rec, nil
}

func (r *PostgresStreakRepo) Save(ctx context.Context, rec *model.Streak) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO streaks (user_id, current_streak, highest_streak, last_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			highest_streak = EXCLUDED.highest_streak,
			last_active = EXCLUDED.last_active`,
		rec.UserID, rec.CurrentStreak, rec.HighestStreak, rec.LastActive)
	if err != nil {
		return fmt.Errorf("failed to save streak for %s: %w", rec.UserID, err)
	}
	return nil
}

func (r *PostgresStreakRepo) TopBy(ctx context.Context, field string, limit int) ([]model.Streak, error) {
	switch field {
	case "current_streak", "highest_streak":
	default:
		return nil, fmt.Errorf("unsortable streak field %q", field)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, current_streak, highest_streak, last_active FROM streaks
		 ORDER BY `+field+` DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top streaks by %s: %w", field, err)
	}
	defer rows.Close()

	var recs []model.Streak
	for rows.Next() {
		var rec model.Streak
		var lastActive time.Time
		if err := rows.Scan(&rec.UserID, &rec.CurrentStreak, &rec.HighestStreak, &lastActive); err != nil {
			return nil, fmt.Errorf("failed to scan streak row: %w", err)
		}
		rec.LastActive = lastActive.Format(model.DateLayout)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
