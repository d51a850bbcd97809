// Package workout generates personalized weekly gym plans and analyses the workouts and body weight a user logs.
package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Source tells which selection rule picked the template of a plan day.
type Source string

const (
	SourceGoal        Source = "goal"
	SourceDemographic Source = "demographic"
)

// Age scaling constants.
const (
	// MaxAgeReduction is the upper bound of the percentage a workout is scaled down by.
	MaxAgeReduction = 80

	repsMarker = " reps"
	minsMarker = " mins"
)

// DayPlan is the workout for one training day of the week.
type DayPlan struct {
	// Day is 1-based.
	Day    int
	Source Source
	// TemplateIndex is the 0-based template slot the workout was generated from.
	TemplateIndex int
	Workout       string
}

// Title returns the first line of the workout.
func (d DayPlan) Title() string {
	title, _, _ := strings.Cut(d.Workout, "\n")
	return title
}

// Plan is a generated week of workouts.
type Plan struct {
	Days []DayPlan
	// AgeReduction is the percentage the templates were scaled down by.
	AgeReduction int
}

// Day returns the plan for the 1-based day.
func (p Plan) Day(day int) (DayPlan, bool) {
	if day < 1 || day > len(p.Days) {
		return DayPlan{}, false
	}
	return p.Days[day-1], true
}

// DemographicIndex returns the 1-based template slot for the user's gender and age bracket.
func DemographicIndex(gender Gender, age int) int {
	switch {
	case gender == GenderMale && age >= AdultAge:
		return 9 //nolint:mnd // male adult template slot.
	case gender == GenderMale:
		return 7 //nolint:mnd // male minor template slot.
	case age >= AdultAge:
		return 10 //nolint:mnd // female adult template slot.
	default:
		return 8 //nolint:mnd // female minor template slot.
	}
}

// AgeReduction returns the percentage 0..MaxAgeReduction that workouts are scaled down by for the given age.
//
// The curve is zero up to 60, non-decreasing and gets steeper for every age bracket above that.
func AgeReduction(age int) int {
	switch {
	case age > 80: //nolint:mnd // bracket bounds.
		return min(40+4*(age-80), MaxAgeReduction) //nolint:mnd // bracket curve.
	case age > 75: //nolint:mnd // bracket bounds.
		return 25 + 3*(age-75) //nolint:mnd // bracket curve.
	case age > 65: //nolint:mnd // bracket bounds.
		return 5 + 2*(age-65) //nolint:mnd // bracket curve.
	case age > 60: //nolint:mnd // bracket bounds.
		return age - 60 //nolint:mnd // bracket curve.
	default:
		return 0
	}
}

// AdjustLine scales the number in front of " reps" (or " mins" when there is no " reps") down by reduction percent,
// rounding up.
//
// The number is read from a fixed-width field directly in front of the marker: one character when goal is
// GoalRelax and two characters otherwise. Lines where the field does not parse as an integer are returned
// unchanged.
func AdjustLine(line string, reduction int, goal int) string {
	pos := strings.Index(line, repsMarker)
	if pos == -1 {
		pos = strings.Index(line, minsMarker)
	}
	if pos == -1 {
		return line
	}

	width := 2
	if goal == GoalRelax {
		width = 1
	}
	start := pos - width
	if start < 0 {
		return line
	}

	value, err := strconv.Atoi(strings.TrimSpace(line[start:pos]))
	if err != nil {
		return line
	}

	adjusted := int(math.Ceil(float64(value) - float64(value*reduction)/100)) //nolint:mnd // percent.
	return line[:start] + strconv.Itoa(adjusted) + line[pos:]
}

// AdjustWorkout applies AdjustLine to every line of the workout.
func AdjustWorkout(workout string, reduction int, goal int) string {
	if reduction == 0 {
		return workout
	}
	lines := strings.Split(workout, "\n")
	for i, line := range lines {
		lines[i] = AdjustLine(line, reduction, goal)
	}
	return strings.Join(lines, "\n")
}

// selectTemplate returns the 0-based template slot for the 1-based day.
//
// Days alternate between the goal template and the demographic template. With an odd number of training days
// the odd days follow the goal, with an even number the even days do.
func selectTemplate(day, trainingDays, goal, demographic int) (int, Source) {
	if (trainingDays%2 == 1) == (day%2 == 1) {
		return goal - 1, SourceGoal
	}
	return demographic - 1, SourceDemographic
}

// GeneratePlan builds the week of workouts for the profile.
func GeneratePlan(p Profile) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("generate plan: %w", err)
	}

	var (
		demographic = DemographicIndex(p.Gender, p.Age)
		reduction   = AgeReduction(p.Age)
		days        = make([]DayPlan, 0, p.TrainingDays)
	)
	for day := 1; day <= p.TrainingDays; day++ {
		index, source := selectTemplate(day, p.TrainingDays, p.Goal, demographic)
		days = append(days, DayPlan{
			Day:           day,
			Source:        source,
			TemplateIndex: index,
			Workout:       AdjustWorkout(TemplateAt(index), reduction, p.Goal),
		})
	}

	return Plan{Days: days, AgeReduction: reduction}, nil
}
