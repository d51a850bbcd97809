package workout_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplan/internal/workout"
)

func weights(unit workout.Unit, values ...float64) []workout.WeightEntry {
	log := make([]workout.WeightEntry, 0, len(values))
	for i, v := range values {
		log = append(log, workout.WeightEntry{Date: daysAgo(len(values) - i), Weight: v, Unit: unit})
	}
	return log
}

func TestComputeWeightStatistics(t *testing.T) {
	if _, err := workout.ComputeWeightStatistics(nil); !errors.Is(err, workout.ErrNoWeightData) {
		t.Errorf("ComputeWeightStatistics(nil) error = %v, want %v", err, workout.ErrNoWeightData)
	}

	tests := []struct {
		name string
		log  []workout.WeightEntry
		want workout.WeightStatistics
	}{
		{
			name: "single entry",
			log:  weights(workout.UnitKg, 70),
			want: workout.WeightStatistics{
				Current: 70, Starting: 70, Highest: 70, Lowest: 70, Average: 70,
				TotalChange: 0, Entries: 1, Unit: workout.UnitKg,
			},
		},
		{
			name: "several entries",
			log:  weights(workout.UnitLbs, 80, 82, 78),
			want: workout.WeightStatistics{
				Current: 78, Starting: 80, Highest: 82, Lowest: 78, Average: 80,
				TotalChange: -2, Entries: 3, Unit: workout.UnitLbs,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := workout.ComputeWeightStatistics(tt.log)
			if err != nil {
				t.Fatalf("ComputeWeightStatistics() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputeWeightStatistics() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeWeightTrend(t *testing.T) {
	tests := []struct {
		name string
		log  []workout.WeightEntry
		want string
	}{
		{name: "empty", log: nil, want: "Insufficient data"},
		{name: "single", log: weights(workout.UnitKg, 70), want: "Insufficient data"},
		{name: "small change is stable", log: weights(workout.UnitKg, 70.0, 70.2), want: "Stable"},
		{name: "increasing", log: weights(workout.UnitKg, 70.0, 72.0), want: "Increasing (+2.0 kg)"},
		{
			name: "only last five entries",
			log:  weights(workout.UnitKg, 60, 89, 88, 87, 86, 85),
			want: "Decreasing (-4.0 kg)",
		},
		{
			name: "unit of the last entry",
			log: []workout.WeightEntry{
				{Date: daysAgo(2), Weight: 150, Unit: workout.UnitKg},
				{Date: daysAgo(1), Weight: 160, Unit: workout.UnitLbs},
			},
			want: "Increasing (+10.0 lbs)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.ComputeWeightTrend(tt.log).String(); got != tt.want {
				t.Errorf("ComputeWeightTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}
