package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/myrjola/gymplan/internal/console"
	"github.com/myrjola/gymplan/internal/envstruct"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/logging"
	"github.com/myrjola/gymplan/internal/storage"
	"github.com/myrjola/gymplan/internal/workout"
)

type config struct {
	// DataFile is the JSON document holding the profile when Store is json.
	DataFile string `env:"GYMPLAN_DATA_FILE" envDefault:"user_data.json"`
	// Store selects the backend, json or sqlite.
	Store string `env:"GYMPLAN_STORE" envDefault:"json"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"GYMPLAN_SQLITE_URL" envDefault:"./gymplan.sqlite3"`
	LogLevel  string `env:"GYMPLAN_LOG_LEVEL" envDefault:"info"`
	// ExportDir is where exported plans are written.
	ExportDir string `env:"GYMPLAN_EXPORT_DIR" envDefault:"."`
}

type application struct {
	cfg    config
	logger *slog.Logger
	in     io.Reader
	now    func() time.Time
	// store and workoutService are opened before a command runs.
	store          *storage.Store
	workoutService *workout.Service
}

func newApplication(cfg config, logger *slog.Logger, in io.Reader, now func() time.Time) *application {
	return &application{
		cfg:            cfg,
		logger:         logger,
		in:             in,
		now:            now,
		store:          nil,
		workoutService: nil,
	}
}

// execute runs the command line and closes the store afterwards.
func (app *application) execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	if args == nil {
		args = []string{}
	}
	root := app.rootCommand()
	root.SetArgs(args)
	root.SetIn(app.in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if app.store != nil {
		err = errors.Join(err, app.store.Close())
	}
	return err //nolint:wrapcheck // commands wrap their own errors.
}

func run(
	ctx context.Context,
	lookupEnv func(string) (string, bool),
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	logger := logging.NewLogger(stderr, logging.ParseLevel(cfg.LogLevel))
	app := newApplication(cfg, logger, stdin, time.Now)
	return app.execute(ctx, args, stdout, stderr)
}

// rendererFor colors output only on terminals, and never when NO_COLOR or TERM=dumb is set.
func rendererFor(w io.Writer) console.Renderer {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return console.NewPlainRenderer(w)
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return console.NewANSIRenderer(colorable.NewColorable(f))
	}
	return console.NewPlainRenderer(w)
}

func main() {
	ctx := context.Background()
	if err := run(ctx, os.LookupEnv, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		logger := logging.NewLogger(os.Stderr, slog.LevelInfo)
		logger.LogAttrs(ctx, slog.LevelError, "gymplan failed", errors.SlogError(err))
		os.Exit(1)
	}
}
