package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/gymplan/internal/workout"
)

const (
	historyDateLayout = "2006-01-02 15:04"
	weightDateLayout  = "2006-01-02"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ShowProfile prints the profile fields.
func ShowProfile(r Renderer, p workout.Profile) {
	r.Line("Profile:")
	r.Line("  Name: %s", p.Name)
	r.Line("  Age: %d years", p.Age)
	r.Line("  Gender: %s", capitalize(string(p.Gender)))
	r.Line("  Goal: %s", p.GoalName())
	r.Line("  Training Days: %d days per week", p.TrainingDays)
}

// ShowPlan prints the whole plan, or a single day when day is positive.
func ShowPlan(r Renderer, p workout.Profile, plan workout.Plan, day int) error {
	days := plan.Days
	if day > 0 {
		d, ok := plan.Day(day)
		if !ok {
			return fmt.Errorf("%w: day must be between 1 and %d", workout.ErrInvalidInput, len(plan.Days))
		}
		days = []workout.DayPlan{d}
	}

	r.Header(strings.ToUpper(p.Name) + "'S WORKOUT PLAN")
	ShowProfile(r, p)
	if plan.AgeReduction > 0 {
		r.Warn(fmt.Sprintf("\nNote: Workouts adjusted by %d%% for age", plan.AgeReduction))
	}
	for _, d := range days {
		r.Section(fmt.Sprintf("DAY %d", d.Day))
		r.Line("%s", d.Workout)
	}
	return nil
}

// ShowHistory lists the progress log oldest first.
func ShowHistory(r Renderer, log []workout.LogEntry) {
	if len(log) == 0 {
		r.Warn("No workout history available yet.")
		return
	}
	r.Header("PROGRESS HISTORY")
	r.Line("Total workouts completed: %d\n", len(log))
	for i, entry := range log {
		r.Line("%d. %s - Day %d", i+1, entry.Date.Format(historyDateLayout), entry.Day)
		if entry.Notes != "" {
			r.Line("   Notes: %s", entry.Notes)
		}
	}
}

// ShowStatistics prints the workout statistics followed by a weight summary when weights were recorded.
func ShowStatistics(r Renderer, p workout.Profile, now time.Time) {
	r.Header("WORKOUT STATISTICS")

	if stats, err := workout.ComputeStatistics(p.ProgressLog, now); err != nil {
		r.Warn("No workout data available")
	} else {
		r.Line("Total Workouts: %d", stats.TotalWorkouts)
		r.Line("Current Streak: %d days", stats.CurrentStreak)
		r.Line("Longest Streak: %d days", stats.LongestStreak)
		r.Line("Weekly Average: %.1f workouts/week", stats.WeeklyAverage)
		r.Line("Most Active Day: Day %d", stats.MostActiveDay)
		r.Line("Days Trained: %d of %d", stats.DaysTrained, p.TrainingDays)
	}

	weight, err := workout.ComputeWeightStatistics(p.WeightLog)
	if err != nil {
		return
	}
	r.Section("WEIGHT TRACKING")
	r.Line("Current Weight: %.1f %s", weight.Current, weight.Unit)
	r.Line("Starting Weight: %.1f %s", weight.Starting, p.WeightLog[0].Unit)
	r.Line("Total Change: %+.1f %s", weight.TotalChange, weight.Unit)
	r.Line("Trend: %s", workout.ComputeWeightTrend(p.WeightLog))
}

// ShowWeightHistory lists the weight log oldest first.
func ShowWeightHistory(r Renderer, log []workout.WeightEntry) {
	if len(log) == 0 {
		r.Warn("No weight entries yet")
		return
	}
	r.Section("WEIGHT HISTORY")
	for i, entry := range log {
		r.Line("%d. %s: %g %s", i+1, entry.Date.Format(weightDateLayout), entry.Weight, entry.Unit)
	}
}

// ShowWeightStatistics prints the summary of the weight log.
func ShowWeightStatistics(r Renderer, log []workout.WeightEntry) {
	stats, err := workout.ComputeWeightStatistics(log)
	if err != nil {
		r.Warn("No weight entries yet")
		return
	}
	r.Line("Current: %.1f", stats.Current)
	r.Line("Average: %.1f", stats.Average)
	r.Line("Highest: %.1f", stats.Highest)
	r.Line("Lowest: %.1f", stats.Lowest)
	r.Line("Change: %+.1f", stats.TotalChange)
	r.Line("Trend: %s", workout.ComputeWeightTrend(log))
}

// ShowRestAdvice prints whether to rest today.
func ShowRestAdvice(r Renderer, p workout.Profile, now time.Time) {
	r.Header("REST DAY RECOMMENDATION")
	advice := workout.RestRecommendation(p.ProgressLog, p.TrainingDays, now)
	if advice.ShouldRest {
		r.Warn(advice.Message)
	} else {
		r.Line("%s", advice.Message)
	}
	r.Line("Recommended rest days per week: %d",
		workout.RestDaysNeeded(p.TrainingDays, p.Age, workout.IntensityMedium))
}

// ShowCalendar prints the schedule grouped by week.
func ShowCalendar(r Renderer, days []workout.CalendarDay) {
	r.Header("WORKOUT CALENDAR")
	for i, day := range days {
		if i%7 == 0 {
			r.Section(fmt.Sprintf("Week %d", i/7+1)) //nolint:mnd // days per week.
		}
		date := day.Date.Format("Mon 2006-01-02")
		if day.Rest {
			r.Line("%s  Rest day", date)
			continue
		}
		title, _, _ := strings.Cut(day.Preview, "\n")
		r.Line("%s  Day %d: %s", date, day.Day, title)
	}
}

// ShowAbout describes the program.
func ShowAbout(r Renderer) {
	r.Header("ABOUT")
	r.Line("Gym Workout Planner\n")
	r.Line("Creates personalized workout plans based on your age, gender,")
	r.Line("fitness goals and training schedule.\n")
	r.Line("Features:")
	for _, feature := range []string{
		"Personalized workout routines",
		"Age-adjusted exercise intensity",
		"Multiple fitness goals",
		"Progress tracking, streaks and statistics",
		"Weight tracking with trends",
		"Rest day recommendations",
		"Export workout plans as text, Markdown or HTML",
	} {
		r.Line("  • %s", feature)
	}
}
