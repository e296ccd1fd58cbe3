// Package sqliteutils opens the embedded SQLite backend used for local runs
// and for engine tests.
package sqliteutils

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"time"

	"github.com/fastprodman/vendingmachine/internal/config"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

//go:embed schema.sql
var schemaSQL string

// DriverName is the database/sql name registered by go-sqlite3.
const DriverName = "sqlite3"

// Open creates or opens the database at cfg.Path and applies the schema.
//
// Every transaction starts with BEGIN IMMEDIATE so the write lock is taken up
// front; together with a single pooled connection this serializes compound
// operations the way row locks do on Postgres.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Set("_busy_timeout", fmt.Sprintf("%d", busy.Milliseconds()))
	q.Set("_foreign_keys", "on")
	q.Set("_journal_mode", "WAL")

	dsn := "file:" + cfg.Path + "?" + q.Encode()

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	_, err = db.ExecContext(ctx, schemaSQL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
