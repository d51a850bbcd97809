// Package storage opens the configured profile repository for the command line tools.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/sqlite"
	"github.com/myrjola/gymplan/internal/workout"
)

var ErrUnknownStore = errors.NewSentinel("unknown store")

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

type Config struct {
	// Kind is json or sqlite.
	Kind      string
	DataFile  string
	SqliteURL string
}

// Store is an open repository. DB is nil for the JSON backend.
type Store struct {
	Repository workout.Repository
	DB         *sqlite.Database
}

// Open opens the repository selected by cfg.Kind.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", KindJSON:
		logger.LogAttrs(ctx, slog.LevelDebug, "using json store", slog.String("path", cfg.DataFile))
		return &Store{Repository: workout.NewJSONRepository(cfg.DataFile), DB: nil}, nil
	case KindSQLite:
		db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
		if err != nil {
			return nil, errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
		}
		logger.LogAttrs(ctx, slog.LevelDebug, "connected to db", slog.String("url", cfg.SqliteURL))
		return &Store{Repository: workout.NewSQLiteRepository(db), DB: db}, nil
	default:
		return nil, errors.Wrap(fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Kind), "open store")
	}
}

// Close releases the database connections of the SQLite backend.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// Backup copies the stored profile to path. The SQLite backend writes a database file and the JSON backend
// writes a JSON file in the data file format.
func (s *Store) Backup(ctx context.Context, path string) error {
	if s.DB != nil {
		if err := s.DB.Backup(ctx, path); err != nil {
			return errors.Wrap(err, "backup database")
		}
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Wrap(os.ErrExist, "backup target exists", slog.String("path", path))
	}
	p, err := s.Repository.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load profile")
	}
	if err = workout.NewJSONRepository(path).Save(ctx, p); err != nil {
		return errors.Wrap(err, "write backup", slog.String("path", path))
	}
	return nil
}
