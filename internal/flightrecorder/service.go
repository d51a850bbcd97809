// Package flightrecorder keeps a rolling execution trace in memory and dumps it to disk when a request is too slow.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync"
	"time"

	"github.com/myrjola/gymplan/internal/errors"
)

const (
	defaultMinAge   = 10 * time.Second
	defaultMaxBytes = 16 << 20
	defaultCooldown = 30 * time.Minute
	fileTimeLayout  = "20060102-150405"
)

// Config configures the Recorder. Zero durations and sizes fall back to defaults.
type Config struct {
	// Directory receives the trace files. It's created when missing.
	Directory string
	MinAge    time.Duration
	MaxBytes  uint64
	// Cooldown is the minimum time between two dumps.
	Cooldown time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Recorder wraps a [trace.FlightRecorder].
type Recorder struct {
	logger    *slog.Logger
	recorder  *trace.FlightRecorder
	directory string
	cooldown  time.Duration
	now       func() time.Time

	mu          sync.Mutex
	lastCapture time.Time
}

// New creates a stopped Recorder.
func New(logger *slog.Logger, cfg Config) (*Recorder, error) {
	if cfg.Directory == "" {
		return nil, errors.New("traces directory is required")
	}
	if err := os.MkdirAll(cfg.Directory, 0o750); err != nil { //nolint:mnd // rwxr-x---
		return nil, errors.Wrap(err, "create traces directory", slog.String("directory", cfg.Directory))
	}
	if cfg.MinAge == 0 {
		cfg.MinAge = defaultMinAge
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = defaultCooldown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Recorder{
		logger:      logger,
		recorder:    trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: cfg.MinAge, MaxBytes: cfg.MaxBytes}),
		directory:   cfg.Directory,
		cooldown:    cfg.Cooldown,
		now:         cfg.Now,
		mu:          sync.Mutex{},
		lastCapture: time.Time{},
	}, nil
}

// Start begins recording.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.recorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("directory", r.directory), slog.Duration("cooldown", r.cooldown))
	return nil
}

// Stop ends recording. Captures after Stop are no-ops.
func (r *Recorder) Stop(ctx context.Context) {
	r.recorder.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to <reason>-<timestamp>.trace and returns the file path.
// It returns an empty path when a capture happened within the cooldown or the recorder is not running.
func (r *Recorder) Capture(ctx context.Context, reason string) (string, error) {
	if !r.recorder.Enabled() {
		return "", nil
	}

	r.mu.Lock()
	now := r.now()
	if !r.lastCapture.IsZero() && now.Sub(r.lastCapture) < r.cooldown {
		r.mu.Unlock()
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture during cooldown",
			slog.Time("last_capture", r.lastCapture))
		return "", nil
	}
	r.lastCapture = now
	r.mu.Unlock()

	path := filepath.Join(r.directory, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format(fileTimeLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create trace file", slog.String("file", path))
	}
	n, err := r.recorder.WriteTo(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.Wrap(err, "write trace", slog.String("file", path))
	}

	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("file", path), slog.String("reason", reason), slog.Int64("bytes", n))
	return path, nil
}
