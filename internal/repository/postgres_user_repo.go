package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/narlock/alder/internal/model"
)

// PostgresUserRepo implements UserRepository on Postgres.
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo creates a PostgresUserRepo.
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) EnsureUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING`,
		userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", userID, err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, stime, tokens FROM users WHERE id = $1`,
		userID).Scan(&u.ID, &u.Stime, &u.Tokens)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) AddTimeAndTokens(ctx context.Context, userID string, seconds, tokens int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, stime, tokens)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			stime = users.stime + EXCLUDED.stime,
			tokens = users.tokens + EXCLUDED.tokens`,
		userID, seconds, tokens)
	if err != nil {
		return fmt.Errorf("failed to add time and tokens for %s: %w", userID, err)
	}
	return nil
}

func (r *PostgresUserRepo) TopBy(ctx context.Context, field string, limit int) ([]model.User, error) {
	// The sort column is interpolated, so it is restricted to a
	// fixed whitelist.
	switch field {
	case "stime", "tokens":
	default:
		return nil, fmt.Errorf("unsortable user field %q", field)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stime, tokens FROM users ORDER BY `+field+` DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users by %s: %w", field, err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Stime, &u.Tokens); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
