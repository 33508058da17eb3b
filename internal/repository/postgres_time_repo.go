package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/narlock/alder/internal/model"
)

// PostgresTimeRepo implements TimeRepository on Postgres.
type PostgresTimeRepo struct {
	db *sql.DB
}

// NewPostgresTimeRepo creates a PostgresTimeRepo.
func NewPostgresTimeRepo(db *sql.DB) *PostgresTimeRepo {
	return &PostgresTimeRepo{db: db}
}

func (r *PostgresTimeRepo) AddDailyTime(ctx context.Context, userID string, day time.Time, seconds int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_time (user_id, day, stime)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET
			stime = daily_time.stime + EXCLUDED.stime`,
		userID, day.UTC().Format(model.DateLayout), seconds)
	if err != nil {
		return fmt.Errorf("failed to add daily time for %s: %w", userID, err)
	}
	return nil
}

func (r *PostgresTimeRepo) GetDailyTime(ctx context.Context, userID string, day time.Time) (*model.DailyTime, error) {
	d := model.DailyTime{UserID: userID, Day: day.UTC().Format(model.DateLayout)}
	err := r.db.QueryRowContext(ctx,
		`SELECT stime FROM daily_time WHERE user_id = $1 AND day = $2`,
		userID, d.Day).Scan(&d.Stime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily time for %s: %w", userID, err)
	}
	return &d, nil
}

func (r *PostgresTimeRepo) AddMonthlyTime(ctx context.Context, userID string, day time.Time, seconds int64) error {
	day = day.UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO month_time (user_id, month, year, stime)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			stime = month_time.stime + EXCLUDED.stime`,
		userID, int(day.Month()), day.Year(), seconds)
	if err != nil {
		return fmt.Errorf("failed to add monthly time for %s: %w", userID, err)
	}
	return nil
}

func (r *PostgresTimeRepo) MonthToDateSeconds(ctx context.Context, userID string, day time.Time) (int64, error) {
	day = day.UTC()
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT stime FROM month_time WHERE user_id = $1 AND month = $2 AND year = $3`,
		userID, int(day.Month()), day.Year()).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get month time for %s: %w", userID, err)
	}
	return total, nil
}
