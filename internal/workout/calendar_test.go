package workout_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/myrjola/gymplan/internal/workout"
)

func TestCalendar(t *testing.T) {
	p := newProfile()
	p.TrainingDays = 3
	plan, err := workout.GeneratePlan(p)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	start := time.Date(2024, time.March, 15, 15, 30, 0, 0, time.UTC)
	days := workout.Calendar(plan, start, 2)
	if len(days) != 14 {
		t.Fatalf("len(Calendar()) = %d, want 14", len(days))
	}

	for i, day := range days {
		wantDate := time.Date(2024, time.March, 15+i, 0, 0, 0, 0, time.UTC)
		if !day.Date.Equal(wantDate) {
			t.Errorf("days[%d].Date = %v, want %v", i, day.Date, wantDate)
		}
		if workoutDay := i < 3; workoutDay == day.Rest {
			t.Errorf("days[%d].Rest = %t, want %t", i, day.Rest, !workoutDay)
		}
		if day.Rest {
			if day.Day != 0 || day.Preview != "" {
				t.Errorf("days[%d] is a rest day with day %d and preview %q", i, day.Day, day.Preview)
			}
			continue
		}
		if day.Day != i+1 {
			t.Errorf("days[%d].Day = %d, want %d", i, day.Day, i+1)
		}
		if !strings.HasSuffix(day.Preview, "...") {
			t.Errorf("days[%d].Preview = %q, want suffix ...", i, day.Preview)
		}
		if n := utf8.RuneCountInString(day.Preview); n != 103 {
			t.Errorf("days[%d].Preview has %d runes, want 103", i, n)
		}
		if !strings.HasPrefix(plan.Days[i].Workout, strings.TrimSuffix(day.Preview, "...")) {
			t.Errorf("days[%d].Preview is not a prefix of the workout", i)
		}
	}

	if got := workout.Calendar(plan, start, 0); got != nil {
		t.Errorf("Calendar(weeks=0) = %v, want nil", got)
	}
}
