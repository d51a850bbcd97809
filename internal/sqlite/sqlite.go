// Package sqlite opens the gymplan SQLite database and keeps its schema in sync with schema.sql.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Database holds a single writer connection and a pool of read-only connections to the same SQLite database.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase connects to the database at url and migrates it to the embedded schema.
//
// The url parameter is the path to the SQLite database file or ":memory:" for an in-memory database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), db.Close())
	}
	return db, nil
}

//nolint:gochecknoglobals // the driver may only be registered once per process.
var registerDriver sync.Once

const driverName = "sqlite3gymplan"

func connectHook(conn *sqlite3.SQLiteConn) error {
	// Keep temporary tables in memory and read pages through memory-mapped I/O.
	if _, err := conn.Exec("PRAGMA temp_store = memory; PRAGMA mmap_size = 268435456;", nil); err != nil {
		return fmt.Errorf("exec connection pragmas: %w", err)
	}
	return nil
}

// dataSourceNames returns the read-write and read-only DSNs for url.
//
// Options prefixed with '_' are documented at https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open
// and the rest at https://www.sqlite.org/uri.html.
func dataSourceNames(url string) (string, string) {
	extra := ""
	if strings.Contains(url, ":memory:") {
		// Both pools must see the same in-memory database, and parallel tests must not.
		url = rand.Text()
		extra = "&mode=memory&cache=shared"
	}
	common := strings.Join([]string{
		"_loc=auto",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}, "&")
	readWrite := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s%s", url, common, extra)
	readOnly := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s%s", url, common, extra)
	return readWrite, readOnly
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{Extensions: nil, ConnectHook: connectHook})
	})

	readWriteDSN, readOnlyDSN := dataSourceNames(url)

	readWrite, err := sql.Open(driverName, readWriteDSN)
	if err != nil {
		return nil, fmt.Errorf("open read-write database: %w", err)
	}
	// SQLite allows a single writer.
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxIdleTime(time.Hour)
	// sql.DB connects lazily, so the ping creates the file and applies the DSN options.
	if err = readWrite.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping read-write database: %w", err), readWrite.Close())
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "opened database", slog.String("dsn", readWriteDSN))

	readOnly, err := sql.Open(driverName, readOnlyDSN)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open read-only database: %w", err), readWrite.Close())
	}
	const maxReaders = 4
	readOnly.SetMaxOpenConns(maxReaders)
	readOnly.SetMaxIdleConns(maxReaders)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// WithTx runs fn in a write transaction that is committed when fn returns nil and rolled back otherwise.
func (db *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer db.rollback(ctx, tx)
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (db *Database) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", slog.Any("error", err))
	}
}

// Close closes both connection pools.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
