package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/export"
	"github.com/myrjola/gymplan/internal/workout"
)

type goalOption struct {
	Value    int
	Name     string
	Selected bool
}

type planDayView struct {
	Day int
	// Markdown has the day title as a heading followed by the exercises.
	Markdown string
}

type homeTemplateData struct {
	BaseTemplateData
	HasProfile   bool
	Profile      workout.Profile
	Goals        []goalOption
	AgeReduction int
	Days         []planDayView
	MinAge       int
	MaxAge       int
	MinDays      int
	MaxDays      int
}

func goalOptions(selected int) []goalOption {
	goals := workout.Goals()
	options := make([]goalOption, len(goals))
	for i, name := range goals {
		options[i] = goalOption{Value: i + 1, Name: name, Selected: i+1 == selected}
	}
	return options
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		HasProfile:       false,
		Profile:          workout.Profile{}, //nolint:exhaustruct // empty form.
		Goals:            nil,
		AgeReduction:     0,
		Days:             nil,
		MinAge:           workout.MinAge,
		MaxAge:           workout.MaxAge,
		MinDays:          workout.MinTrainingDays,
		MaxDays:          workout.MaxTrainingDays,
	}

	p, err := app.workoutService.Profile(r.Context())
	switch {
	case errors.Is(err, workout.ErrNotFound):
	case errors.Is(err, workout.ErrCorruptData):
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "stored profile unreadable, showing profile form",
			errors.SlogError(err))
	case err != nil:
		app.serverError(w, r, err)
		return
	default:
		plan, planErr := workout.GeneratePlan(p)
		if planErr != nil {
			app.serverError(w, r, planErr)
			return
		}
		data.HasProfile = true
		data.Profile = p
		data.AgeReduction = plan.AgeReduction
		for _, day := range plan.Days {
			data.Days = append(data.Days, planDayView{Day: day.Day, Markdown: export.DayMarkdown(day)})
		}
	}
	data.Goals = goalOptions(data.Profile.Goal)

	app.render(w, r, http.StatusOK, "home", data)
}

// formInt parses an integer form field. Parse failures wrap sentinel.
func formInt(r *http.Request, field string, sentinel error) (int, error) {
	value := strings.TrimSpace(r.PostForm.Get(field))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", sentinel, field, value)
	}
	return n, nil
}

func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, fmt.Errorf("%w: %w", workout.ErrInvalidProfile, err))
		return
	}

	var (
		p   workout.Profile
		err error
	)
	p.Name = r.PostForm.Get("name")
	if p.Gender, err = workout.ParseGender(r.PostForm.Get("gender")); err != nil {
		app.clientError(w, r, err)
		return
	}
	if p.Age, err = formInt(r, "age", workout.ErrInvalidProfile); err != nil {
		app.clientError(w, r, err)
		return
	}
	if p.Goal, err = formInt(r, "goal", workout.ErrInvalidProfile); err != nil {
		app.clientError(w, r, err)
		return
	}
	if p.TrainingDays, err = formInt(r, "days", workout.ErrInvalidProfile); err != nil {
		app.clientError(w, r, err)
		return
	}

	_, err = app.workoutService.SaveProfile(r.Context(), p)
	switch {
	case errors.Is(err, workout.ErrInvalidProfile):
		app.clientError(w, r, err)
		return
	case err != nil:
		app.saveFailed(w, r, err, "/")
		return
	}
	app.flash(r, "Profile saved successfully!")
	redirect(w, r, "/")
}

// saveFailed reports a failed write. The service keeps the change in memory so the page still shows it.
func (app *application) saveFailed(w http.ResponseWriter, r *http.Request, err error, path string) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "could not save user data", errors.SlogError(err))
	app.flash(r, "Your change is kept in memory but could not be saved to disk.")
	redirect(w, r, path)
}
