package workout_test

import (
	"errors"
	"testing"

	"github.com/myrjola/gymplan/internal/workout"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "Alex", wantErr: false},
		{name: "Mary Jane Watson", wantErr: false},
		{name: "Åsa Öberg", wantErr: false},
		{name: "", wantErr: true},
		{name: "   ", wantErr: true},
		{name: "R2D2", wantErr: true},
		{name: "Jean-Luc", wantErr: true},
	}
	for _, tt := range tests {
		err := workout.ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, workout.ErrInvalidProfile) {
			t.Errorf("ValidateName(%q) error = %v, want %v", tt.name, err, workout.ErrInvalidProfile)
		}
	}
}

func TestProfile_Validate(t *testing.T) {
	p := newProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	p.Age = 0
	p.Goal = 0
	err := p.Validate()
	if !errors.Is(err, workout.ErrInvalidProfile) {
		t.Fatalf("Validate() error = %v, want %v", err, workout.ErrInvalidProfile)
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
		t.Errorf("Validate() error = %v, want both invalid fields reported", err)
	}
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]workout.Gender{
		"male":    workout.GenderMale,
		" Female": workout.GenderFemale,
		"MALE":    workout.GenderMale,
	} {
		got, err := workout.ParseGender(in)
		if err != nil || got != want {
			t.Errorf("ParseGender(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := workout.ParseGender("x"); !errors.Is(err, workout.ErrInvalidProfile) {
		t.Errorf("ParseGender(x) error = %v, want %v", err, workout.ErrInvalidProfile)
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]workout.Unit{
		"":    workout.UnitKg,
		"kg":  workout.UnitKg,
		"LBS": workout.UnitLbs,
	} {
		got, err := workout.ParseUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseUnit(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := workout.ParseUnit("stone"); !errors.Is(err, workout.ErrInvalidInput) {
		t.Errorf("ParseUnit(stone) error = %v, want %v", err, workout.ErrInvalidInput)
	}
}
