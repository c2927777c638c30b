package database

import (
	"context"
	"fmt"
)

// Amounts are stored as integer cents so both backends do exact
// 2-decimal arithmetic; the API boundary converts to decimals.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
		description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
		amount_cents INTEGER NOT NULL CHECK (amount_cents > 0),
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_kind ON transactions (kind)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		kind VARCHAR(10) NOT NULL CHECK (kind IN ('income', 'expense')),
		description VARCHAR(255) NOT NULL DEFAULT '',
		color VARCHAR(7) NOT NULL DEFAULT '',
		icon VARCHAR(50) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		kind VARCHAR(10) NOT NULL CHECK (kind IN ('income', 'expense')),
		amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
		description VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_kind ON transactions (kind)`,
}

// Migrate creates the two tables and their indexes if they do not
// exist. Idempotent; safe to run at every startup.
func (d *DB) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if d.kind == BackendPostgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
