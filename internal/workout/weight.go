package workout

import (
	"fmt"
	"math"
)

// WeightStatistics summarises the weight log.
type WeightStatistics struct {
	Current  float64
	Starting float64
	Highest  float64
	Lowest   float64
	Average  float64
	// TotalChange is Current minus Starting.
	TotalChange float64
	Entries     int
	// Unit is the unit of the most recent entry.
	Unit Unit
}

// ComputeWeightStatistics summarises the weight log in insertion order.
//
// Entries in different units are combined as-is.
func ComputeWeightStatistics(log []WeightEntry) (WeightStatistics, error) {
	if len(log) == 0 {
		return WeightStatistics{}, ErrNoWeightData
	}

	stats := WeightStatistics{
		Current:     log[len(log)-1].Weight,
		Starting:    log[0].Weight,
		Highest:     math.Inf(-1),
		Lowest:      math.Inf(1),
		Average:     0,
		TotalChange: 0,
		Entries:     len(log),
		Unit:        log[len(log)-1].Unit,
	}
	var sum float64
	for _, entry := range log {
		stats.Highest = max(stats.Highest, entry.Weight)
		stats.Lowest = min(stats.Lowest, entry.Weight)
		sum += entry.Weight
	}
	stats.Average = sum / float64(len(log))
	if len(log) > 1 {
		stats.TotalChange = stats.Current - stats.Starting
	}
	return stats, nil
}

// TrendDirection classifies a WeightTrend.
type TrendDirection string

const (
	TrendInsufficient TrendDirection = "insufficient"
	TrendStable       TrendDirection = "stable"
	TrendIncreasing   TrendDirection = "increasing"
	TrendDecreasing   TrendDirection = "decreasing"
)

const (
	trendWindow = 5
	// stableThreshold is the absolute change below which the weight counts as stable.
	stableThreshold = 0.5
)

// WeightTrend is the direction of the most recent weight entries.
type WeightTrend struct {
	Direction TrendDirection
	Change    float64
	Unit      Unit
}

// ComputeWeightTrend compares the first and last of the five most recent entries.
func ComputeWeightTrend(log []WeightEntry) WeightTrend {
	if len(log) < 2 { //nolint:mnd // a trend needs two points.
		return WeightTrend{Direction: TrendInsufficient, Change: 0, Unit: ""}
	}

	window := log[max(len(log)-trendWindow, 0):]
	last := window[len(window)-1]
	trend := WeightTrend{
		Direction: TrendStable,
		Change:    last.Weight - window[0].Weight,
		Unit:      last.Unit,
	}
	switch {
	case math.Abs(trend.Change) < stableThreshold:
		trend.Direction = TrendStable
	case trend.Change > 0:
		trend.Direction = TrendIncreasing
	default:
		trend.Direction = TrendDecreasing
	}
	return trend
}

// String renders the trend the way it is shown to the user, e.g. "Increasing (+2.0 kg)".
func (t WeightTrend) String() string {
	switch t.Direction {
	case TrendInsufficient:
		return "Insufficient data"
	case TrendStable:
		return "Stable"
	case TrendIncreasing:
		return fmt.Sprintf("Increasing (+%.1f %s)", t.Change, t.Unit)
	case TrendDecreasing:
		return fmt.Sprintf("Decreasing (%.1f %s)", t.Change, t.Unit)
	default:
		return string(t.Direction)
	}
}
