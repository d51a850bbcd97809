package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/workout"
)

type historyView struct {
	Date  string
	Day   int
	Notes string
}

type progressTemplateData struct {
	BaseTemplateData
	Profile workout.Profile
	// PlanDays lists the plan days that can be logged.
	PlanDays    []int
	HasStats    bool
	Stats       workout.Statistics
	History     []historyView
	Rest        workout.RestAdvice
	RestDays    int
	HasWeight   bool
	Weight      workout.WeightStatistics
	WeightTrend string
	Weights     []workout.WeightEntry
}

func (app *application) progress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := app.workoutService.Profile(ctx)
	if errors.Is(err, workout.ErrNotFound) {
		app.flash(r, "Please create a profile first.")
		redirect(w, r, "/")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	now := app.workoutService.Now()
	data := progressTemplateData{
		BaseTemplateData: app.newSessionTemplateData(r),
		Profile:          p,
		PlanDays:         make([]int, p.TrainingDays),
		HasStats:         false,
		Stats:            workout.Statistics{}, //nolint:exhaustruct // filled below when there is data.
		History:          make([]historyView, 0, len(p.ProgressLog)),
		Rest:             workout.RestRecommendation(p.ProgressLog, p.TrainingDays, now),
		RestDays:         workout.RestDaysNeeded(p.TrainingDays, p.Age, workout.IntensityMedium),
		HasWeight:        false,
		Weight:           workout.WeightStatistics{}, //nolint:exhaustruct // filled below when there is data.
		WeightTrend:      workout.ComputeWeightTrend(p.WeightLog).String(),
		Weights:          p.WeightLog,
	}
	for i := range data.PlanDays {
		data.PlanDays[i] = i + 1
	}
	if stats, statsErr := workout.ComputeStatistics(p.ProgressLog, now); statsErr == nil {
		data.HasStats = true
		data.Stats = stats
	}
	if weight, weightErr := workout.ComputeWeightStatistics(p.WeightLog); weightErr == nil {
		data.HasWeight = true
		data.Weight = weight
	}
	// Newest first.
	for i := len(p.ProgressLog) - 1; i >= 0; i-- {
		entry := p.ProgressLog[i]
		data.History = append(data.History, historyView{
			Date:  entry.Date.Format("2006-01-02 15:04"),
			Day:   entry.Day,
			Notes: entry.Notes,
		})
	}

	app.render(w, r, http.StatusOK, "progress", data)
}

func (app *application) logPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, fmt.Errorf("%w: %w", workout.ErrInvalidInput, err))
		return
	}
	day, err := formInt(r, "day", workout.ErrInvalidInput)
	if err != nil {
		app.clientError(w, r, err)
		return
	}

	_, err = app.workoutService.LogWorkout(r.Context(), day, r.PostForm.Get("notes"))
	if app.handleWriteError(w, r, err) {
		return
	}
	app.flash(r, fmt.Sprintf("Great job completing Day %d!", day))
	redirect(w, r, "/progress")
}

func (app *application) weightPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, fmt.Errorf("%w: %w", workout.ErrInvalidInput, err))
		return
	}
	raw := strings.TrimSpace(r.PostForm.Get("weight"))
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		app.clientError(w, r, fmt.Errorf("%w: weight must be a number, got %q", workout.ErrInvalidInput, raw))
		return
	}
	unit, err := workout.ParseUnit(r.PostForm.Get("unit"))
	if err != nil {
		app.clientError(w, r, err)
		return
	}

	entry, err := app.workoutService.AddWeight(r.Context(), weight, unit)
	if app.handleWriteError(w, r, err) {
		return
	}
	app.flash(r, fmt.Sprintf("Weight entry added: %s %s", formatFloat(entry.Weight), entry.Unit))
	redirect(w, r, "/progress")
}

// handleWriteError responds to a failed log or weight write and reports whether it did.
func (app *application) handleWriteError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, workout.ErrInvalidInput):
		app.clientError(w, r, err)
	case errors.Is(err, workout.ErrNotFound):
		app.flash(r, "Please create a profile first.")
		redirect(w, r, "/")
	default:
		app.saveFailed(w, r, err, "/progress")
	}
	return true
}
