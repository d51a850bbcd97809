package workout

import (
	"fmt"
	"slices"
)

// templates are the fixed workout texts. Slots 0-5 follow the goals, 6-9 the demographic buckets.
//
//nolint:gochecknoglobals // immutable lookup table.
var templates = [...]string{
	`Gym workout for fat loss

Plate thrusters (15 reps x 3 sets)
Mountain climbers (20 reps x 3 sets)
Box jumps (10 reps x 3 sets)
Lunges (10 reps x 3 sets)
Renegade rows (10 reps x 3 sets)
Press ups (15 reps x 3 sets)
Treadmill (10 mins x 3 sets)
Supermans (10 reps x 3 sets)
Crunches (10 reps x 3 sets)`,

	`Gym workout for stretch and relax

Quad stretchs (2 mins x 3 sets)
Hamstring stretchs (2 mins x 3 sets)
Chest and shoulder stretchs (2 mins x 2 sets)
Upper back stretchs (3 mins x 2 sets)
Biceps stretchs (2 mins x 2 sets)
Triceps stretchs (2 mins x 3 sets)
Hip flexors (2 mins x 3 sets)
Calf stretchs (2 mins x 3 sets)
Lower back stretchs (2 mins x 3 sets)`,

	`Gym workout for high-intensity exercises

Jumping jacks (20 reps x 4 sets)
Sprints (20 reps x 3 sets)
Mountain climbers (20 reps x 4 sets)
Squat jumps (20 reps x 4 sets)
Lunges (20 reps x 3 sets)
Crunches (20 reps x 3 sets)
Treadmill (15 mins x 2 sets)
Side planks (15 reps x 3 sets)
Burpees (15 reps x 3 sets)`,

	`Gym workout for strong legs

Back squats (10 reps x 5 sets)
Hip thrusts (12 reps x 3 sets)
Overhead presses (10 reps x 5 sets)
Rack pulls (10 reps x 5 sets)
Squats (10 reps x 4 sets)
Dumbbell lunges (10 reps x 3 sets)
Leg curls (15 reps x 3 sets)
Standing calf raises (20 reps x 2 sets)`,

	`Gym workout for strong ABS

Cross crunchs (12 reps x 3 sets)
Knee ups (15 reps x 5 sets)
Hip thrusts (15 reps x 3 sets)
Mountain climbers (15 reps x 3 sets)
Vertical hip thrusts (12 reps x 3 sets)
Bicycles (15 mins x 2 sets)
Front planks (15 mins x 3 sets)
Dragon flags (12 reps x 4 sets)
Reverse crunches (10 reps x 3 sets)`,

	`Gym workout for strong shoulder and arms

Bench presses (10 reps x 5 sets)
Triceps dips (10 reps x 5 sets)
Incline dumbbell presses (12 reps x 3 sets)
Dumbbell flyes (15 reps x 3 sets)
Triceps extensions (15 reps x 3 sets)
Pull ups (10 reps x 5 sets)
Treadmill (15 mins x 2 sets)
Bent over rows (10 reps x 5 sets)
Chin ups (10 reps x 3 sets)`,

	`Gym workout for a male younger than 18 years old

High knees (20 reps x 3 sets)
Squats (10 reps x 3 sets)
Calf raises (10 reps x 3 sets)
Scissor jumps (12 reps x 3 sets)
Burpees (10 reps x 3 sets)
Treadmill (10 mins x 2 sets)`,

	`Gym workout for a female younger than 18 years old

Squats (10 reps x 3 sets)
Crunches (10 reps x 2 sets)
Jumping jacks (10 reps x 3 sets)
Push ups (10 reps x 2 sets)
Burpees (10 reps x 3 sets)
Treadmill (10 mins x 2 sets)`,

	`Gym workout for a male at least 18 years old

Standing biceps curls (20 reps x 3 sets)
Seated incline curls (18 reps x 3 sets)
Seated dumbbell presses (12 reps x 3 sets)
Leg presses (15 reps x 3 sets)
Bench presses (10 reps x 4 sets)
Tricep kickbacks (15 reps x 3 sets)
Hip thrusts (12 reps x 3 sets)
Seated rows (10 reps x 4 sets)`,

	`Gym workout for a female at least 18 years old

Lateral raises (15 reps x 3 sets)
Reverse flyes (12 reps x 3 sets)
Hip thrusts (12 reps x 3 sets)
Incline dumbbell presses (15 reps x 3 sets)
Squats (10 reps x 4 sets)
Dumbbell lunges (10 reps x 3 sets)
Leg presses (12 reps x 3 sets)
Dumbbell presses (10 reps x 4 sets)`,
}

//nolint:gochecknoglobals // immutable lookup table.
var goalNames = [...]string{
	"Losing Weight",
	"Staying Calm and Relax",
	"Increasing Heart Rate",
	"Stronger Legs",
	"Stronger ABS",
	"Stronger Shoulders and Arms",
}

// Goal selectors. The values are persisted so they must never change.
const (
	GoalLoseWeight        = 1
	GoalRelax             = 2
	GoalHeartRate         = 3
	GoalStrongerLegs      = 4
	GoalStrongerAbs       = 5
	GoalStrongerUpperBody = 6
)

// TemplateCount is the number of workout templates.
const TemplateCount = len(templates)

// GoalCount is the number of selectable goals.
const GoalCount = len(goalNames)

// TemplateAt returns the workout template in the 0-based slot index. It panics if index is out of range.
func TemplateAt(index int) string {
	if index < 0 || index >= TemplateCount {
		panic(fmt.Sprintf("workout template index %d out of range [0, %d)", index, TemplateCount))
	}
	return templates[index]
}

// GoalName returns the label of the 1-based goal. It panics if goal is out of range.
func GoalName(goal int) string {
	if goal < 1 || goal > GoalCount {
		panic(fmt.Sprintf("goal %d out of range [1, %d]", goal, GoalCount))
	}
	return goalNames[goal-1]
}

// Goals returns the goal labels in selector order.
func Goals() []string {
	return slices.Clone(goalNames[:])
}
