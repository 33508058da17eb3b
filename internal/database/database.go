package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and bootstraps the schema.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// createTables creates the necessary tables
func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			stime BIGINT NOT NULL DEFAULT 0,
			tokens BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS daily_time (
			user_id TEXT NOT NULL,
			day DATE NOT NULL,
			stime BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, day)
		)`,
		`CREATE TABLE IF NOT EXISTS month_time (
			user_id TEXT NOT NULL,
			month INT NOT NULL,
			year INT NOT NULL,
			stime BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, month, year)
		)`,
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id TEXT PRIMARY KEY,
			current_streak INT NOT NULL DEFAULT 0,
			highest_streak INT NOT NULL DEFAULT 0,
			last_active DATE NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}
