package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/myrjola/gymplan/internal/console"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/export"
	"github.com/myrjola/gymplan/internal/logging"
	"github.com/myrjola/gymplan/internal/storage"
	"github.com/myrjola/gymplan/internal/workout"
	"github.com/spf13/cobra"
)

var errNoProfile = errors.NewSentinel("no profile yet, create one with 'gymplan profile set' or the menu")

const defaultCalendarWeeks = 4

func (app *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gymplan",
		Short: "Personalized gym workout planner",
		Long: `Generate a weekly gym workout plan from your age, gender, goal and available training days,
then track completed workouts and body weight.

Without a subcommand the interactive menu starts.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.open,
		RunE:              app.runMenu,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfg.Store, "store", app.cfg.Store, "storage backend: json or sqlite")
	flags.StringVar(&app.cfg.DataFile, "data-file", app.cfg.DataFile, "JSON file holding the profile")
	flags.StringVar(&app.cfg.SqliteURL, "sqlite-url", app.cfg.SqliteURL, "SQLite database URL")

	root.AddCommand(
		app.menuCommand(),
		app.profileCommand(),
		app.planCommand(),
		app.exportCommand(),
		app.logCommand(),
		app.historyCommand(),
		app.statsCommand(),
		app.weightCommand(),
		app.restCommand(),
		app.calendarCommand(),
		app.backupCommand(),
	)
	return root
}

// open connects the configured store before any command runs.
func (app *application) open(cmd *cobra.Command, _ []string) error {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
	cmd.SetContext(ctx)

	cfg := storage.Config{Kind: app.cfg.Store, DataFile: app.cfg.DataFile, SqliteURL: app.cfg.SqliteURL}
	store, err := storage.Open(ctx, cfg, app.logger)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	app.store = store
	app.workoutService = workout.NewService(store.Repository, app.logger, app.now)
	return nil
}

// profile loads the stored profile and explains how to create one when there is none.
func (app *application) profile(cmd *cobra.Command) (workout.Profile, error) {
	p, err := app.workoutService.Profile(cmd.Context())
	if errors.Is(err, workout.ErrNotFound) {
		return workout.Profile{}, errNoProfile
	}
	if err != nil {
		return workout.Profile{}, errors.Wrap(err, "load profile")
	}
	return p, nil
}

func (app *application) runMenu(cmd *cobra.Command, _ []string) error {
	renderer := rendererFor(cmd.OutOrStdout())
	prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), renderer)
	menu := console.NewMenu(app.workoutService, renderer, prompter, app.logger, app.cfg.ExportDir,
		[]export.Format{export.FormatText})
	if err := menu.Run(cmd.Context()); err != nil {
		return errors.Wrap(err, "run menu")
	}
	return nil
}

func (app *application) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE:  app.runMenu,
	}
}

func (app *application) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set the profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowProfile(rendererFor(cmd.OutOrStdout()), p)
			return nil
		},
	}

	var (
		p      workout.Profile
		gender string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Create or update the profile. Logged workouts and weights are kept",
		Example: `  gymplan profile set --name "Alex Doe" --age 25 --gender male --goal 1 --days 5
  gymplan profile set --name Sam --age 67 --gender female --goal 2 --days 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if p.Gender, err = workout.ParseGender(gender); err != nil {
				return err //nolint:wrapcheck // the message names the allowed values.
			}
			if _, err = app.workoutService.SaveProfile(cmd.Context(), p); err != nil {
				return errors.Wrap(err, "save profile")
			}
			rendererFor(cmd.OutOrStdout()).Success("Profile saved")
			return nil
		},
	}
	flags := set.Flags()
	flags.StringVar(&p.Name, "name", "", "name, letters and spaces only")
	flags.IntVar(&p.Age, "age", 0, fmt.Sprintf("age in years (%d-%d)", workout.MinAge, workout.MaxAge))
	flags.StringVar(&gender, "gender", "", "female or male")
	flags.IntVar(&p.Goal, "goal", 0, goalUsage())
	flags.IntVar(&p.TrainingDays, "days", 0,
		fmt.Sprintf("training days per week (%d-%d)", workout.MinTrainingDays, workout.MaxTrainingDays))
	for _, name := range []string{"name", "age", "gender", "goal", "days"} {
		_ = set.MarkFlagRequired(name)
	}

	cmd.AddCommand(show, set)
	return cmd
}

func goalUsage() string {
	usage := "fitness goal:"
	for i, goal := range workout.Goals() {
		usage += fmt.Sprintf(" %d=%s", i+1, goal)
		if i < workout.GoalCount-1 {
			usage += ","
		}
	}
	return usage
}

func (app *application) planCommand() *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the weekly workout plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			plan, err := app.workoutService.Plan(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "generate plan")
			}
			return console.ShowPlan(rendererFor(cmd.OutOrStdout()), p, plan, day)
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "print a single plan day")
	return cmd
}

func (app *application) exportCommand() *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workout plan to files",
		Example: `  gymplan export
  gymplan export --dir plans --format all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats, err := export.ParseFormats(format)
			if err != nil {
				return err //nolint:wrapcheck // the message names the format.
			}
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			plan, err := workout.GeneratePlan(p)
			if err != nil {
				return errors.Wrap(err, "generate plan")
			}
			report := export.Report{Profile: p, Plan: plan, Generated: app.workoutService.Now()}
			paths, err := export.WriteFiles(cmd.Context(), dir, report, formats)
			if err != nil {
				return errors.Wrap(err, "export plan", slog.String("dir", dir))
			}
			renderer := rendererFor(cmd.OutOrStdout())
			renderer.Success("Workout plan exported successfully!")
			for _, path := range paths {
				renderer.Line("File saved as: %s", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", app.cfg.ExportDir, "directory for the exported files")
	cmd.Flags().StringVar(&format, "format", string(export.FormatText), "text, markdown, html or all")
	return cmd
}

func (app *application) logCommand() *cobra.Command {
	var (
		day   int
		notes string
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed workout day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := app.workoutService.LogWorkout(cmd.Context(), day, notes)
			if errors.Is(err, workout.ErrNotFound) {
				return errNoProfile
			}
			if err != nil {
				return errors.Wrap(err, "log workout", slog.Int("day", day))
			}
			rendererFor(cmd.OutOrStdout()).Success(fmt.Sprintf("Great job completing Day %d!", entry.Day))
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "completed plan day")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func (app *application) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List logged workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowHistory(rendererFor(cmd.OutOrStdout()), p.ProgressLog)
			return nil
		},
	}
}

func (app *application) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show workout statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowStatistics(rendererFor(cmd.OutOrStdout()), p, app.workoutService.Now())
			return nil
		},
	}
}

func (app *application) weightCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Track body weight",
	}

	var unit string
	add := &cobra.Command{
		Use:     "add <value>",
		Short:   "Record today's weight",
		Example: "  gymplan weight add 81.5\n  gymplan weight add 180 --unit lbs",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: weight %q is not a number", workout.ErrInvalidInput, args[0])
			}
			u, err := workout.ParseUnit(unit)
			if err != nil {
				return err //nolint:wrapcheck // the message names the unit.
			}
			entry, err := app.workoutService.AddWeight(cmd.Context(), value, u)
			if errors.Is(err, workout.ErrNotFound) {
				return errNoProfile
			}
			if err != nil {
				return errors.Wrap(err, "add weight")
			}
			rendererFor(cmd.OutOrStdout()).Success(fmt.Sprintf("Weight entry added: %g %s", entry.Weight, entry.Unit))
			return nil
		},
	}
	add.Flags().StringVar(&unit, "unit", string(workout.UnitKg), "kg or lbs")

	list := &cobra.Command{
		Use:   "list",
		Short: "List weight entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowWeightHistory(rendererFor(cmd.OutOrStdout()), p.WeightLog)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show weight statistics and trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowWeightStatistics(rendererFor(cmd.OutOrStdout()), p.WeightLog)
			return nil
		},
	}

	cmd.AddCommand(add, list, stats)
	return cmd
}

func (app *application) restCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rest",
		Short: "Check whether today should be a rest day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.profile(cmd)
			if err != nil {
				return err
			}
			console.ShowRestAdvice(rendererFor(cmd.OutOrStdout()), p, app.workoutService.Now())
			return nil
		},
	}
}

func (app *application) calendarCommand() *cobra.Command {
	var weeks int
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Lay out the plan on a calendar starting today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			days, err := app.workoutService.Calendar(cmd.Context(), weeks)
			if errors.Is(err, workout.ErrNotFound) {
				return errNoProfile
			}
			if err != nil {
				return errors.Wrap(err, "build calendar", slog.Int("weeks", weeks))
			}
			console.ShowCalendar(rendererFor(cmd.OutOrStdout()), days)
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", defaultCalendarWeeks, "number of weeks")
	return cmd
}

func (app *application) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <path>",
		Short: "Copy the stored profile to a new file in the format of the active store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.store.Backup(cmd.Context(), args[0])
			if errors.Is(err, workout.ErrNotFound) {
				return errNoProfile
			}
			if err != nil {
				return errors.Wrap(err, "backup", slog.String("path", args[0]))
			}
			rendererFor(cmd.OutOrStdout()).Success("Backup saved to " + args[0])
			return nil
		},
	}
}
