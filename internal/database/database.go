package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	_ "modernc.org/sqlite"
)

// BackendKind identifies which engine a DB handle talks to.
type BackendKind string

const (
	BackendSQLite   BackendKind = "sqlite"
	BackendPostgres BackendKind = "postgres"
)

// Config selects and parameterizes the backend.
type Config struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string // file path, or ":memory:" for tests
	URL        string // postgres connection string
	MaxConns   int32  // postgres pool size
}

// DB is the single process-wide database handle. It wraps a database/sql
// pool for either backend and carries the dialect that repositories use
// to render backend-specific SQL. Construct it once in main and pass it
// down; there is no package-level instance.
type DB struct {
	sql     *sql.DB
	pool    *pgxpool.Pool // nil for sqlite
	kind    BackendKind
	dialect Dialect

	mu     sync.Mutex
	closed bool
}

// Connect opens the backend selected by cfg and verifies it with a ping.
// For SQLite the parent directory is created, WAL and a busy timeout are
// enabled, and foreign-key enforcement is turned on for the connection.
// For Postgres a bounded pgx pool is opened and exposed through
// database/sql.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	switch BackendKind(cfg.Driver) {
	case BackendSQLite:
		return connectSQLite(ctx, cfg.SQLitePath)
	case BackendPostgres:
		return connectPostgres(ctx, cfg.URL, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func connectSQLite(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// _time_format=sqlite stores time.Time values in a form SQLite's
	// date functions can parse, which the monthly rollup relies on.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids lock
	// contention and keeps :memory: databases from fragmenting.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &DB{sql: db, kind: BackendSQLite, dialect: sqliteDialect{}}, nil
}

func connectPostgres(ctx context.Context, url string, maxConns int32) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("ping postgres database: %w", err)
	}

	return &DB{sql: db, pool: pool, kind: BackendPostgres, dialect: postgresDialect{}}, nil
}

// Kind returns the backend this handle talks to.
func (d *DB) Kind() BackendKind {
	return d.kind
}

// Dialect returns the SQL dialect for this backend.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Active reports whether the handle is open.
func (d *DB) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed
}

// Ping verifies connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Close releases the pool. Safe to call more than once.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.sql.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// QueryContext executes a read statement after rebinding placeholders
// for the active dialect.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.sql.QueryContext(ctx, d.dialect.Rebind(query), args...)
}

// QueryRowContext executes a single-row read after rebinding.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sql.QueryRowContext(ctx, d.dialect.Rebind(query), args...)
}

// ExecContext executes a write statement after rebinding.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.sql.ExecContext(ctx, d.dialect.Rebind(query), args...)
}

// InsertID runs an INSERT and returns the generated row id, using
// RETURNING on Postgres and the driver's last-insert-id on SQLite.
func (d *DB) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	return d.dialect.InsertID(ctx, d.sql, d.dialect.Rebind(query), args...)
}

// Tx runs fn inside a transaction: BEGIN, fn, COMMIT, with ROLLBACK on
// any failure. Statements inside fn must use tx directly.
func (d *DB) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
