package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/gymplan/internal/logging"
)

// NewLogger creates a debug level logger with the given log sink such as testhelpers.NewWriter.
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.NewLogger(logSink, slog.LevelDebug)
}
