package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func newMemoryDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(context.Background(), Config{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), Config{Driver: "mysql"})
	if err == nil {
		t.Fatal("Expected error for unknown driver, got nil")
	}
}

func TestConnectSQLite_Memory(t *testing.T) {
	db := newMemoryDB(t)

	if db.Kind() != BackendSQLite {
		t.Errorf("Expected sqlite backend, got %s", db.Kind())
	}
	if db.Dialect().Name() != "sqlite" {
		t.Errorf("Expected sqlite dialect, got %s", db.Dialect().Name())
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newMemoryDB(t)

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Expected first migrate to succeed, got %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Expected second migrate to succeed, got %v", err)
	}

	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('transactions', 'categories')").Scan(&count)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected both tables to exist, got %d", count)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	db, err := Connect(context.Background(), Config{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if !db.Active() {
		t.Error("Expected handle to report active before close")
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Expected no error on close, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Expected no error on second close, got %v", err)
	}
	if db.Active() {
		t.Error("Expected handle to report inactive after close")
	}
}

func TestTx_CommitPersists(t *testing.T) {
	db := newMemoryDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	err := db.Tx(context.Background(), func(tx *sql.Tx) error {
		for _, name := range []string{"Ocio", "Transporte"} {
			_, err := tx.ExecContext(context.Background(),
				"INSERT INTO categories (name, kind, created_at, updated_at) VALUES (?, ?, ?, ?)",
				name, "expense", now, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected commit, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 committed rows, got %d", count)
	}
}

func TestTx_ErrorRollsBack(t *testing.T) {
	db := newMemoryDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	boom := errors.New("boom")
	now := time.Now().UTC().Truncate(time.Second)
	err := db.Tx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(),
			"INSERT INTO categories (name, kind, created_at, updated_at) VALUES (?, ?, ?, ?)",
			"Ocio", "expense", now, now)
		if err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the callback error to propagate, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 0 {
		t.Errorf("Expected rollback to leave 0 rows, got %d", count)
	}
}

func TestInsertID_SQLite(t *testing.T) {
	db := newMemoryDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	id, err := db.InsertID(context.Background(),
		"INSERT INTO categories (name, kind, created_at, updated_at) VALUES (?, ?, ?, ?)",
		"Ocio", "expense", now, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id == 0 {
		t.Error("Expected generated id, got 0")
	}

	second, err := db.InsertID(context.Background(),
		"INSERT INTO categories (name, kind, created_at, updated_at) VALUES (?, ?, ?, ?)",
		"Transporte", "expense", now, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if second <= id {
		t.Errorf("Expected increasing ids, got %d then %d", id, second)
	}
}
