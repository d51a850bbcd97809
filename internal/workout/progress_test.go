package workout_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplan/internal/workout"
)

//nolint:gochecknoglobals // fixed clock for deterministic tests.
var now = time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func logOn(dates ...time.Time) []workout.LogEntry {
	log := make([]workout.LogEntry, 0, len(dates))
	for i, date := range dates {
		log = append(log, workout.LogEntry{Date: date, Day: i%3 + 1, Notes: ""})
	}
	return log
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name string
		log  []workout.LogEntry
		want int
	}{
		{name: "empty", log: nil, want: 0},
		{name: "today and yesterday", log: logOn(daysAgo(0), daysAgo(1)), want: 2},
		{name: "gap breaks the streak", log: logOn(daysAgo(0), daysAgo(3)), want: 1},
		{name: "nothing recent", log: logOn(daysAgo(3)), want: 0},
		{name: "same day counts twice", log: logOn(daysAgo(0), daysAgo(0)), want: 2},
		{name: "unsorted log", log: logOn(daysAgo(2), daysAgo(0), daysAgo(1), daysAgo(9)), want: 3},
		{
			name: "calendar days not hours",
			// 23:50 two days back is within one calendar day of 00:10 the day after.
			log: logOn(
				time.Date(2024, time.March, 14, 0, 10, 0, 0, time.UTC),
				time.Date(2024, time.March, 13, 23, 50, 0, 0, time.UTC),
			),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.CurrentStreak(tt.log, now); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name string
		log  []workout.LogEntry
		want int
	}{
		{name: "empty", log: nil, want: 0},
		{name: "single", log: logOn(daysAgo(20)), want: 1},
		{
			name: "older run is longer",
			log:  logOn(daysAgo(14), daysAgo(13), daysAgo(12), daysAgo(1), daysAgo(0)),
			want: 3,
		},
		{
			name: "current run is longest",
			log:  logOn(daysAgo(10), daysAgo(2), daysAgo(1), daysAgo(0), daysAgo(0)),
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.LongestStreak(tt.log)
			if got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
			if current := workout.CurrentStreak(tt.log, now); got < current {
				t.Errorf("LongestStreak() = %d is shorter than CurrentStreak() = %d", got, current)
			}
		})
	}
}

func TestWeeklyAverage(t *testing.T) {
	tests := []struct {
		name string
		log  []workout.LogEntry
		want float64
	}{
		{name: "empty", log: nil, want: 0},
		{name: "single entry counts one week", log: logOn(daysAgo(0)), want: 1},
		{name: "within a week", log: logOn(daysAgo(3), daysAgo(2), daysAgo(0)), want: 3},
		{name: "two weeks", log: logOn(daysAgo(14), daysAgo(10), daysAgo(5), daysAgo(0)), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.WeeklyAverage(tt.log); got != tt.want {
				t.Errorf("WeeklyAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMostActiveDay(t *testing.T) {
	entries := func(days ...int) []workout.LogEntry {
		var log []workout.LogEntry
		for _, day := range days {
			log = append(log, workout.LogEntry{Date: now, Day: day, Notes: ""})
		}
		return log
	}
	tests := []struct {
		name string
		log  []workout.LogEntry
		want int
	}{
		{name: "empty", log: nil, want: 0},
		{name: "clear winner", log: entries(1, 3, 3), want: 3},
		{name: "tie goes to first seen", log: entries(2, 1, 1, 2), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.MostActiveDay(tt.log); got != tt.want {
				t.Errorf("MostActiveDay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	if _, err := workout.ComputeStatistics(nil, now); !errors.Is(err, workout.ErrNoWorkoutData) {
		t.Errorf("ComputeStatistics(nil) error = %v, want %v", err, workout.ErrNoWorkoutData)
	}

	log := []workout.LogEntry{
		{Date: daysAgo(2), Day: 1, Notes: "felt strong"},
		{Date: daysAgo(1), Day: 2, Notes: ""},
		{Date: daysAgo(0), Day: 1, Notes: ""},
	}
	got, err := workout.ComputeStatistics(log, now)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	want := workout.Statistics{
		TotalWorkouts: 3,
		CurrentStreak: 3,
		LongestStreak: 3,
		WeeklyAverage: 3,
		MostActiveDay: 1,
		DaysTrained:   2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeStatistics() mismatch (-want +got):\n%s", diff)
	}
}

func TestRestRecommendation(t *testing.T) {
	tests := []struct {
		name         string
		log          []workout.LogEntry
		trainingDays int
		want         workout.RestAdvice
	}{
		{
			name:         "no history",
			log:          nil,
			trainingDays: 3,
			want:         workout.RestAdvice{ShouldRest: false, Message: "No workout history available"},
		},
		{
			name:         "nothing in the last week",
			log:          logOn(daysAgo(10)),
			trainingDays: 3,
			want:         workout.RestAdvice{ShouldRest: false, Message: "No recent workouts - you're good to train!"},
		},
		{
			name: "three workouts in two days",
			log: logOn(
				now.Add(-30*time.Hour),
				now.Add(-20*time.Hour),
				now.Add(-time.Hour),
			),
			trainingDays: 7,
			want: workout.RestAdvice{
				ShouldRest: true,
				Message:    "You've worked out 3+ times in the last 2 days. Consider resting.",
			},
		},
		{
			name:         "weekly goal reached",
			log:          logOn(daysAgo(5), daysAgo(3)),
			trainingDays: 2,
			want: workout.RestAdvice{
				ShouldRest: true,
				Message:    "You've completed your weekly goal (2 workouts). Rest or do light activity.",
			},
		},
		{
			name:         "weekly goal exceeded",
			log:          logOn(daysAgo(6), daysAgo(5), daysAgo(4), daysAgo(3)),
			trainingDays: 3,
			want: workout.RestAdvice{
				ShouldRest: true,
				Message:    "You've completed your weekly goal (4 workouts). Rest or do light activity.",
			},
		},
		{
			name:         "workouts left",
			log:          logOn(daysAgo(20), daysAgo(3)),
			trainingDays: 5,
			want:         workout.RestAdvice{ShouldRest: false, Message: "You have 4 workouts left this week."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.RestRecommendation(tt.log, tt.trainingDays, now)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RestRecommendation() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRestDaysNeeded(t *testing.T) {
	tests := []struct {
		trainingDays int
		age          int
		intensity    workout.Intensity
		want         int
	}{
		{trainingDays: 3, age: 30, intensity: workout.IntensityMedium, want: 4},
		{trainingDays: 6, age: 30, intensity: workout.IntensityLow, want: 1},
		{trainingDays: 6, age: 55, intensity: workout.IntensityMedium, want: 2},
		{trainingDays: 5, age: 65, intensity: workout.IntensityMedium, want: 3},
		{trainingDays: 6, age: 65, intensity: workout.IntensityHigh, want: 4},
		{trainingDays: 1, age: 25, intensity: workout.IntensityHigh, want: 4},
	}
	for _, tt := range tests {
		got := workout.RestDaysNeeded(tt.trainingDays, tt.age, tt.intensity)
		if got != tt.want {
			t.Errorf("RestDaysNeeded(%d, %d, %s) = %d, want %d",
				tt.trainingDays, tt.age, tt.intensity, got, tt.want)
		}
	}
}
