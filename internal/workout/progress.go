package workout

import (
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	hoursPerDay  = 24
	daysPerWeek  = 7
	recentWindow = 7
	// denseWindow is the number of days in which denseLimit workouts suggest resting.
	denseWindow = 2
	denseLimit  = 3
)

// Statistics summarises the progress log.
type Statistics struct {
	TotalWorkouts int
	CurrentStreak int
	LongestStreak int
	WeeklyAverage float64
	// MostActiveDay is the plan day logged most often. Ties go to the day logged first.
	MostActiveDay int
	// DaysTrained is the number of distinct plan days logged.
	DaysTrained int
}

// ComputeStatistics summarises the progress log as of now.
func ComputeStatistics(log []LogEntry, now time.Time) (Statistics, error) {
	if len(log) == 0 {
		return Statistics{}, ErrNoWorkoutData
	}
	return Statistics{
		TotalWorkouts: len(log),
		CurrentStreak: CurrentStreak(log, now),
		LongestStreak: LongestStreak(log),
		WeeklyAverage: WeeklyAverage(log),
		MostActiveDay: MostActiveDay(log),
		DaysTrained:   DaysTrained(log),
	}, nil
}

// calendarDays returns the number of calendar days from a to b, ignoring the time of day.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / hoursPerDay)
}

// elapsedDays returns the number of whole 24 hour periods from date to now, rounded towards negative infinity.
func elapsedDays(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / hoursPerDay))
}

func sortedByDate(log []LogEntry) []LogEntry {
	sorted := slices.Clone(log)
	slices.SortStableFunc(sorted, func(a, b LogEntry) int { return a.Date.Compare(b.Date) })
	return sorted
}

// CurrentStreak counts the entries reachable from today by stepping back at most one calendar day at a time.
//
// Every entry counts, so two workouts on the same day add two to the streak.
func CurrentStreak(log []LogEntry, now time.Time) int {
	sorted := sortedByDate(log)
	slices.Reverse(sorted)

	streak := 0
	cursor := now
	for _, entry := range sorted {
		if calendarDays(entry.Date, cursor) > 1 {
			break
		}
		streak++
		cursor = entry.Date
	}
	return streak
}

// LongestStreak is the largest number of entries in a chain where consecutive entries are at most one
// calendar day apart.
func LongestStreak(log []LogEntry) int {
	sorted := sortedByDate(log)

	longest, run := 0, 0
	for i, entry := range sorted {
		if i > 0 && calendarDays(sorted[i-1].Date, entry.Date) <= 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// WeeklyAverage divides the number of entries by the weeks between the first and last entry, counting at
// least one week.
func WeeklyAverage(log []LogEntry) float64 {
	if len(log) == 0 {
		return 0
	}
	days := elapsedDays(log[0].Date, log[len(log)-1].Date)
	weeks := max(float64(days)/daysPerWeek, 1)
	return float64(len(log)) / weeks
}

// MostActiveDay returns the plan day with the most entries or 0 for an empty log.
func MostActiveDay(log []LogEntry) int {
	counts := make(map[int]int)
	var order []int
	for _, entry := range log {
		if counts[entry.Day] == 0 {
			order = append(order, entry.Day)
		}
		counts[entry.Day]++
	}

	best, bestCount := 0, 0
	for _, day := range order {
		if counts[day] > bestCount {
			best, bestCount = day, counts[day]
		}
	}
	return best
}

// DaysTrained returns the number of distinct plan days in the log.
func DaysTrained(log []LogEntry) int {
	seen := make(map[int]struct{})
	for _, entry := range log {
		seen[entry.Day] = struct{}{}
	}
	return len(seen)
}

// RestAdvice is the outcome of RestRecommendation.
type RestAdvice struct {
	ShouldRest bool
	Message    string
}

// RestRecommendation decides from the last week of workouts whether the user should take a rest day.
func RestRecommendation(log []LogEntry, trainingDays int, now time.Time) RestAdvice {
	if len(log) == 0 {
		return RestAdvice{ShouldRest: false, Message: "No workout history available"}
	}

	var recent []int
	for _, entry := range log {
		if days := elapsedDays(entry.Date, now); days <= recentWindow {
			recent = append(recent, days)
		}
	}
	if len(recent) == 0 {
		return RestAdvice{ShouldRest: false, Message: "No recent workouts - you're good to train!"}
	}

	if slices.Contains(recent, 0) || slices.Contains(recent, 1) {
		dense := 0
		for _, days := range recent {
			if days <= denseWindow {
				dense++
			}
		}
		if dense >= denseLimit {
			return RestAdvice{
				ShouldRest: true,
				Message:    "You've worked out 3+ times in the last 2 days. Consider resting.",
			}
		}
	}

	if len(recent) >= trainingDays {
		return RestAdvice{
			ShouldRest: true,
			Message: fmt.Sprintf("You've completed your weekly goal (%d workouts). Rest or do light activity.",
				len(recent)),
		}
	}

	return RestAdvice{
		ShouldRest: false,
		Message:    fmt.Sprintf("You have %d workouts left this week.", trainingDays-len(recent)),
	}
}

// Intensity of the planned training.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

const maxRestDays = 4

// RestDaysNeeded returns the recommended number of rest days per week.
func RestDaysNeeded(trainingDays, age int, intensity Intensity) int {
	rest := daysPerWeek - trainingDays
	switch {
	case age > 60: //nolint:mnd // senior bracket.
		rest = max(rest, 3) //nolint:mnd // senior minimum.
	case age > 50: //nolint:mnd // middle-aged bracket.
		rest = max(rest, 2) //nolint:mnd // middle-aged minimum.
	}
	if intensity == IntensityHigh {
		rest++
	}
	return min(rest, maxRestDays)
}
