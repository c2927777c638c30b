package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect hides the syntactic differences between the two backends:
// positional "?" versus numbered "$n" placeholders, last-insert-id
// versus RETURNING, and the date-part extraction functions used by the
// monthly rollup. Repositories write queries in "?" form and go through
// the handle, which rebinds for the active dialect.
type Dialect interface {
	Name() string
	// Rebind rewrites "?" placeholders into the dialect's native form.
	Rebind(query string) string
	// InsertID executes an already-rebound INSERT and returns the
	// generated id.
	InsertID(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error)
	// MonthExpr returns a SQL expression extracting the month (1-12)
	// from a date column.
	MonthExpr(col string) string
	// YearExpr returns a SQL expression extracting the year from a
	// date column.
	YearExpr(col string) string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) InsertID(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (sqliteDialect) MonthExpr(col string) string {
	return "CAST(strftime('%m', " + col + ") AS INTEGER)"
}

func (sqliteDialect) YearExpr(col string) string {
	return "CAST(strftime('%Y', " + col + ") AS INTEGER)"
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) InsertID(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
	return id, err
}

func (postgresDialect) MonthExpr(col string) string {
	return "EXTRACT(MONTH FROM " + col + ")::int"
}

func (postgresDialect) YearExpr(col string) string {
	return "EXTRACT(YEAR FROM " + col + ")::int"
}
