// Package database opens the SQLite database shared by the sqlite
// repositories and provides the retry helper for lock contention.
package database

import (
	"context"
	"embed"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// DefaultDSN is used when Config.DSN is empty.
const DefaultDSN = "file:devradar.db?cache=shared&mode=rwc&_txlock=immediate"

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to SQLite, applies pragmas and creates the schema.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		cfg.DSN = DefaultDSN
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, oops.With("context", "failed to open database").Wrap(err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, oops.With("pragma", pragma, "context", "failed to apply pragma").Wrap(err)
		}
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, oops.With("context", "failed to read schema").Wrap(err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, oops.With("context", "failed to initialize schema").Wrap(err)
	}

	return db, nil
}

// IsLockError checks if an error is a SQLite lock/busy error
func IsLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// Retry runs fn with exponential backoff while it keeps failing with a lock
// error. Any other error stops the retries and is returned as is.
func Retry(ctx context.Context, fn func() error) error {
	var critical error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err != nil && !IsLockError(err) {
			critical = err
			return nil
		}
		return err
	})
	if critical != nil {
		return critical
	}
	return err
}
