package workout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrNotFound is returned when no profile has been created yet.
	ErrNotFound = errors.New("profile not found")
	// ErrCorruptData is returned when the stored profile exists but cannot be decoded.
	ErrCorruptData = errors.New("stored profile is unreadable")
	// ErrInvalidProfile is returned when a profile field is out of its allowed range.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrInvalidInput is returned for malformed log or weight entries.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoWorkoutData is returned by analytics that need at least one logged workout.
	ErrNoWorkoutData = errors.New("no workout data available")
	// ErrNoWeightData is returned by analytics that need at least one weight entry.
	ErrNoWeightData = errors.New("no weight data available")
)

// Profile limits.
const (
	MinAge          = 1
	MaxAge          = 110
	MinTrainingDays = 1
	MaxTrainingDays = 7
	AdultAge        = 18
)

// Gender selects the demographic workout template.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male" or "female" in any letter case.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale:
		return g, nil
	default:
		return "", fmt.Errorf("%w: gender must be 'female' or 'male', got %q", ErrInvalidProfile, s)
	}
}

// Unit is the unit of a weight measurement.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

// ParseUnit accepts "kg" or "lbs". An empty string defaults to kg.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UnitKg, nil
	case UnitKg, UnitLbs:
		return u, nil
	default:
		return "", fmt.Errorf("%w: unit must be 'kg' or 'lbs', got %q", ErrInvalidInput, s)
	}
}

// LogEntry records one completed workout day.
type LogEntry struct {
	// Date is when the workout was logged with minute precision.
	Date time.Time
	// Day is the plan day number, 1..TrainingDays.
	Day   int
	Notes string
}

// WeightEntry is a single body weight measurement.
type WeightEntry struct {
	// Date has day precision.
	Date   time.Time
	Weight float64
	Unit   Unit
}

// Profile is the single user of the planner together with everything they have logged.
type Profile struct {
	Name         string
	Age          int
	Gender       Gender
	Goal         int
	TrainingDays int
	// ProgressLog is append-only and kept in insertion order.
	ProgressLog []LogEntry
	WeightLog   []WeightEntry
}

// ValidateName accepts names made of letters and spaces with at least one letter.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) {
			return fmt.Errorf("%w: only alphabetical characters and spaces allowed in name", ErrInvalidProfile)
		}
	}
	return nil
}

// ValidateAge checks that age is within [MinAge, MaxAge].
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidProfile, MinAge, MaxAge)
	}
	return nil
}

// ValidateGoal checks that goal selects one of the goal templates.
func ValidateGoal(goal int) error {
	if goal < 1 || goal > GoalCount {
		return fmt.Errorf("%w: goal must be between 1 and %d", ErrInvalidProfile, GoalCount)
	}
	return nil
}

// ValidateTrainingDays checks that days is within [MinTrainingDays, MaxTrainingDays].
func ValidateTrainingDays(days int) error {
	if days < MinTrainingDays || days > MaxTrainingDays {
		return fmt.Errorf("%w: training days must be between %d and %d",
			ErrInvalidProfile, MinTrainingDays, MaxTrainingDays)
	}
	return nil
}

// Validate reports every invalid field of the profile.
func (p Profile) Validate() error {
	var genderErr error
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		genderErr = fmt.Errorf("%w: gender must be 'female' or 'male', got %q", ErrInvalidProfile, p.Gender)
	}
	return errors.Join(
		ValidateName(p.Name),
		ValidateAge(p.Age),
		genderErr,
		ValidateGoal(p.Goal),
		ValidateTrainingDays(p.TrainingDays),
	)
}

// GoalName returns the label of the profile's goal.
func (p Profile) GoalName() string {
	return GoalName(p.Goal)
}

// validateWeight rejects non-positive and non-finite measurements.
func validateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidInput)
	}
	return nil
}
