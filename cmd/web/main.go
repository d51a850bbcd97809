package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/gymplan/internal/envstruct"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/flightrecorder"
	"github.com/myrjola/gymplan/internal/logging"
	"github.com/myrjola/gymplan/internal/sqlite"
	"github.com/myrjola/gymplan/internal/storage"
	"github.com/myrjola/gymplan/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	workoutService *workout.Service
	// db is nil when the profile lives in a JSON file.
	db *sqlite.Database
	// flightRecorder is nil unless a traces directory is configured.
	flightRecorder *flightrecorder.Recorder
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"GYMPLAN_ADDR" envDefault:"localhost:8082"`
	// Store selects the backend, json or sqlite.
	Store    string `env:"GYMPLAN_STORE" envDefault:"json"`
	DataFile string `env:"GYMPLAN_DATA_FILE" envDefault:"user_data.json"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"GYMPLAN_SQLITE_URL" envDefault:"./gymplan.sqlite3"`
	// TemplatePath overrides the embedded HTML templates with a directory, handy for editing them live.
	TemplatePath string `env:"GYMPLAN_TEMPLATE_PATH" envDefault:""`
	// OptimizeInterval is how often the SQLite query planner statistics are refreshed.
	OptimizeInterval string `env:"GYMPLAN_OPTIMIZE_INTERVAL" envDefault:"24h"`
	// TracesDirectory enables the flight recorder. Requests that time out dump a runtime trace there.
	TracesDirectory string `env:"GYMPLAN_TRACES_DIRECTORY" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	optimizeInterval, err := time.ParseDuration(cfg.OptimizeInterval)
	if err != nil {
		return errors.Wrap(err, "parse optimize interval", slog.String("value", cfg.OptimizeInterval))
	}

	var templateFS fs.FS
	if templateFS, err = resolveTemplateFS(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve templates")
	}

	store, err := storage.Open(ctx, storage.Config{
		Kind:      cfg.Store,
		DataFile:  cfg.DataFile,
		SqliteURL: cfg.SqliteURL,
	}, logger)
	if err != nil {
		return errors.Wrap(err, "open store", slog.String("store", cfg.Store))
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close store", errors.SlogError(closeErr))
		}
	}()

	var recorder *flightrecorder.Recorder
	if cfg.TracesDirectory != "" {
		if recorder, err = flightrecorder.New(logger, flightrecorder.Config{ //nolint:exhaustruct // defaults.
			Directory: cfg.TracesDirectory,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(store.DB),
		templateFS:     templateFS,
		workoutService: workout.NewService(store.Repository, logger, nil),
		db:             store.DB,
		flightRecorder: recorder,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes(), optimizeInterval); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// initializeSessionManager keeps sessions in SQLite when it's available and in memory otherwise.
func initializeSessionManager(db *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	if db != nil {
		sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	}
	sessionManager.Lifetime = 12 * time.Hour //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stdout, logging.ParseLevel(os.Getenv("GYMPLAN_LOG_LEVEL")))
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
