package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the API needs if they do not exist yet.
// Permissions, targets and sale lines live as JSONB documents on their
// owning row, so single-row updates cover the whole aggregate.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			email           TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			name            TEXT NOT NULL DEFAULT '',
			role            TEXT NOT NULL DEFAULT 'member',
			permissions     JSONB NOT NULL DEFAULT '{}',
			monthly_targets JSONB NOT NULL DEFAULT '{}',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			price       NUMERIC(18,2) NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			item_group  TEXT NOT NULL DEFAULT '',
			verified    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			customer_name TEXT NOT NULL,
			items         JSONB NOT NULL DEFAULT '[]',
			total_price   NUMERIC(18,2) NOT NULL DEFAULT 0,
			date          TIMESTAMPTZ NOT NULL,
			note          TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'not-visited',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_user_id ON sales (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
