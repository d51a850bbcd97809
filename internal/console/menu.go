package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/export"
	"github.com/myrjola/gymplan/internal/workout"
)

const maxCalendarWeeks = 12

// session is the state of one interactive run.
type session struct {
	profile    workout.Profile
	hasProfile bool
}

type action struct {
	key   string
	label func(sess *session) string
	run   func(ctx context.Context, sess *session) error
}

// Menu is the interactive main loop.
type Menu struct {
	svc       *workout.Service
	renderer  Renderer
	prompter  *Prompter
	logger    *slog.Logger
	exportDir string
	formats   []export.Format
	actions   []action
}

// NewMenu wires the menu. Plans are exported to exportDir in the given formats.
func NewMenu(
	svc *workout.Service,
	renderer Renderer,
	prompter *Prompter,
	logger *slog.Logger,
	exportDir string,
	formats []export.Format,
) *Menu {
	m := &Menu{
		svc:       svc,
		renderer:  renderer,
		prompter:  prompter,
		logger:    logger,
		exportDir: exportDir,
		formats:   formats,
		actions:   nil,
	}
	fixed := func(label string) func(*session) string { return func(*session) string { return label } }
	m.actions = []action{
		{key: "1", label: func(sess *session) string {
			if sess.hasProfile {
				return "Update Profile"
			}
			return "Create Profile"
		}, run: m.editProfile},
		{key: "2", label: fixed("View Workout Plan"), run: m.viewPlan},
		{key: "3", label: fixed("Export Workout Plan"), run: m.exportPlan},
		{key: "4", label: fixed("Log Completed Workout"), run: m.logWorkout},
		{key: "5", label: fixed("View Progress History"), run: m.viewHistory},
		{key: "6", label: fixed("Statistics & Analytics"), run: m.viewStatistics},
		{key: "7", label: fixed("Weight Tracking"), run: m.manageWeight},
		{key: "8", label: fixed("Rest Day Check"), run: m.checkRest},
		{key: "9", label: fixed("Workout Calendar"), run: m.viewCalendar},
		{key: "10", label: fixed("About"), run: m.about},
	}
	return m
}

// Run shows the menu until the user exits, the input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	var sess session
	if err := m.refresh(ctx, &sess); err != nil {
		m.reportError(ctx, "could not load user data", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck // context errors are returned as-is.
		}

		m.renderer.Header("GYM WORKOUT PLANNER")
		if sess.hasProfile {
			m.renderer.Line("Welcome back, %s!\n", sess.profile.Name)
		}
		m.renderer.Line("Main Menu:")
		for _, a := range m.actions {
			m.renderer.Line("  %s. %s", a.key, a.label(&sess))
		}
		m.renderer.Line("  0. Exit")

		choice, err := m.prompter.Text("\nEnter your choice: ")
		if errors.Is(err, io.EOF) {
			m.renderer.Warn("\nExiting...")
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			m.renderer.Success("Thank you for using Gym Workout Planner!")
			if sess.hasProfile {
				m.renderer.Line("Keep up the great work, %s!", sess.profile.Name)
			}
			return nil
		}

		if err = m.dispatch(ctx, &sess, choice); errors.Is(err, io.EOF) {
			m.renderer.Warn("\nExiting...")
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, sess *session, choice string) error {
	for _, a := range m.actions {
		if a.key == choice {
			m.logger.LogAttrs(ctx, slog.LevelDebug, "menu action", slog.String("choice", choice))
			return a.run(ctx, sess)
		}
	}
	m.renderer.Error("Invalid choice. Please try again.")
	return nil
}

// refresh reloads the profile into the session.
func (m *Menu) refresh(ctx context.Context, sess *session) error {
	p, err := m.svc.Profile(ctx)
	if errors.Is(err, workout.ErrNotFound) {
		sess.hasProfile = false
		return nil
	}
	if errors.Is(err, workout.ErrCorruptData) {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "stored profile unreadable, starting without one",
			apperrors.SlogError(err))
		sess.hasProfile = false
		return nil
	}
	if err != nil {
		return err //nolint:wrapcheck // reported by the caller.
	}
	sess.profile = p
	sess.hasProfile = true
	return nil
}

// reportError shows a failure to the user and logs it.
func (m *Menu) reportError(ctx context.Context, msg string, err error) {
	m.logger.LogAttrs(ctx, slog.LevelError, msg, apperrors.SlogError(err))
	m.renderer.Error(fmt.Sprintf("%s: %v", msg, err))
}

// afterSave reports a failed save. The service keeps the change in memory so the session is refreshed either way.
func (m *Menu) afterSave(ctx context.Context, sess *session, err error) {
	if err != nil {
		m.reportError(ctx, "could not save user data", err)
	}
	if refreshErr := m.refresh(ctx, sess); refreshErr != nil {
		m.reportError(ctx, "could not load user data", refreshErr)
	}
}

func (m *Menu) requireProfile(sess *session) bool {
	if !sess.hasProfile {
		m.renderer.Error("Please create a profile first.")
	}
	return sess.hasProfile
}

func (m *Menu) editProfile(ctx context.Context, sess *session) error {
	m.renderer.Header("CREATE YOUR PROFILE")

	var (
		p   workout.Profile
		err error
	)
	if p.Name, err = m.prompter.Name("Please enter your name: "); err != nil {
		return err
	}
	if p.Age, err = m.prompter.Int("Please enter your age: ", workout.MinAge, workout.MaxAge); err != nil {
		return err
	}
	if p.Gender, err = m.prompter.Gender("Please enter your biological sex (female/male): "); err != nil {
		return err
	}

	m.renderer.Section("What is your fitness goal?")
	for i, goal := range workout.Goals() {
		m.renderer.Line("%d. %s", i+1, goal)
	}
	if p.Goal, err = m.prompter.Int(fmt.Sprintf("\nChoose your goal (1-%d): ", workout.GoalCount),
		1, workout.GoalCount); err != nil {
		return err
	}
	if p.TrainingDays, err = m.prompter.Int(
		fmt.Sprintf("How many days per week can you train? (%d-%d): ", workout.MinTrainingDays, workout.MaxTrainingDays),
		workout.MinTrainingDays, workout.MaxTrainingDays); err != nil {
		return err
	}

	updating := sess.hasProfile
	_, err = m.svc.SaveProfile(ctx, p)
	m.afterSave(ctx, sess, err)
	if err == nil {
		if updating {
			m.renderer.Success("Profile updated successfully!")
		} else {
			m.renderer.Success("Profile created successfully!")
		}
	}
	return nil
}

func (m *Menu) viewPlan(ctx context.Context, sess *session) error {
	if !m.requireProfile(sess) {
		return nil
	}
	plan, err := workout.GeneratePlan(sess.profile)
	if err != nil {
		m.reportError(ctx, "could not generate plan", err)
		return nil
	}
	return ShowPlan(m.renderer, sess.profile, plan, 0)
}

func (m *Menu) exportPlan(ctx context.Context, sess *session) error {
	if !m.requireProfile(sess) {
		return nil
	}
	plan, err := workout.GeneratePlan(sess.profile)
	if err != nil {
		m.reportError(ctx, "could not generate plan", err)
		return nil
	}
	report := export.Report{Profile: sess.profile, Plan: plan, Generated: m.svc.Now()}
	paths, err := export.WriteFiles(ctx, m.exportDir, report, m.formats)
	if err != nil {
		m.reportError(ctx, "could not export workout plan", err)
		return nil
	}
	m.renderer.Success("Workout plan exported successfully!")
	for _, path := range paths {
		m.renderer.Line("File saved as: %s", path)
	}
	return nil
}

func (m *Menu) logWorkout(ctx context.Context, sess *session) error {
	if !m.requireProfile(sess) {
		return nil
	}
	m.renderer.Header("LOG WORKOUT")
	m.renderer.Line("Which day did you complete?")
	for day := 1; day <= sess.profile.TrainingDays; day++ {
		m.renderer.Line("  %d. Day %d", day, day)
	}
	day, err := m.prompter.Int("\nEnter day number: ", 1, sess.profile.TrainingDays)
	if err != nil {
		return err
	}
	notes, err := m.prompter.Text("Add notes (optional): ")
	if err != nil {
		return err
	}

	_, err = m.svc.LogWorkout(ctx, day, notes)
	m.afterSave(ctx, sess, err)
	if err == nil || !errors.Is(err, workout.ErrInvalidInput) {
		m.renderer.Success("Workout logged successfully!")
		m.renderer.Line("Great job completing Day %d!", day)
	}
	return nil
}

func (m *Menu) viewHistory(_ context.Context, sess *session) error {
	if m.requireProfile(sess) {
		ShowHistory(m.renderer, sess.profile.ProgressLog)
	}
	return nil
}

func (m *Menu) viewStatistics(_ context.Context, sess *session) error {
	if m.requireProfile(sess) {
		ShowStatistics(m.renderer, sess.profile, m.svc.Now())
	}
	return nil
}

func (m *Menu) manageWeight(ctx context.Context, sess *session) error {
	if !m.requireProfile(sess) {
		return nil
	}
	m.renderer.Header("WEIGHT TRACKING")
	m.renderer.Line("1. Add weight entry")
	m.renderer.Line("2. View weight history")
	m.renderer.Line("3. View weight statistics")
	m.renderer.Line("0. Back")
	choice, err := m.prompter.Int("\nEnter your choice: ", 0, 3) //nolint:mnd // submenu entries.
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		weight, weightErr := m.prompter.Weight("Enter your weight: ")
		if weightErr != nil {
			return weightErr
		}
		unit, unitErr := m.prompter.Unit("Unit (kg/lbs) [kg]: ")
		if unitErr != nil {
			return unitErr
		}
		_, err = m.svc.AddWeight(ctx, weight, unit)
		m.afterSave(ctx, sess, err)
		if err == nil || !errors.Is(err, workout.ErrInvalidInput) {
			m.renderer.Success("Weight entry added!")
		}
	case 2: //nolint:mnd // submenu entry.
		ShowWeightHistory(m.renderer, sess.profile.WeightLog)
	case 3: //nolint:mnd // submenu entry.
		ShowWeightStatistics(m.renderer, sess.profile.WeightLog)
	}
	return nil
}

func (m *Menu) checkRest(_ context.Context, sess *session) error {
	if m.requireProfile(sess) {
		ShowRestAdvice(m.renderer, sess.profile, m.svc.Now())
	}
	return nil
}

func (m *Menu) viewCalendar(ctx context.Context, sess *session) error {
	if !m.requireProfile(sess) {
		return nil
	}
	weeks, err := m.prompter.Int(fmt.Sprintf("How many weeks? (1-%d): ", maxCalendarWeeks), 1, maxCalendarWeeks)
	if err != nil {
		return err
	}
	plan, err := workout.GeneratePlan(sess.profile)
	if err != nil {
		m.reportError(ctx, "could not generate plan", err)
		return nil
	}
	ShowCalendar(m.renderer, workout.Calendar(plan, m.svc.Now(), weeks))
	return nil
}

func (m *Menu) about(_ context.Context, _ *session) error {
	ShowAbout(m.renderer)
	return nil
}
