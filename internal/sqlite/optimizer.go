package sqlite

import (
	"context"
	"log/slog"
	"time"
)

// RunOptimizer runs PRAGMA optimize now and then every interval until ctx is done.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
//
// It is meant for long-lived processes such as the web view. Short CLI invocations skip it.
func (db *Database) RunOptimizer(ctx context.Context, interval time.Duration) {
	// 0x10002 also analyzes tables that have never been analyzed, recommended once for long-lived connections.
	pragma := "PRAGMA optimize = 0x10002;"
	for {
		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, pragma); err != nil {
			if ctx.Err() != nil {
				return
			}
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", slog.Any("error", err))
		} else {
			db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database", slog.Duration("duration", time.Since(start)))
		}
		pragma = "PRAGMA optimize;"

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
