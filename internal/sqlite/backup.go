package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Backup writes a consistent copy of the database to path with VACUUM INTO.
//
// The copy is a standalone database without WAL files. Backup refuses to overwrite an existing file.
func (db *Database) Backup(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("backup target %s: %w", path, os.ErrExist)
	}
	// The writer connection is used because VACUUM INTO is rejected on query-only connections.
	if _, err := db.ReadWrite.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("vacuum into %s: %w", path, err)
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "backed up database", slog.String("path", path))
	return nil
}
