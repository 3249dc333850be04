// Package scoring computes averaged performance/potential scores and the
// 9-box talent category derived from them. It is pure: no storage, no
// side effects.
package scoring

import (
	"fmt"
	"math"
)

// Dimensions is the number of ratings on each axis.
const Dimensions = 5

const (
	RatingMin = 1
	RatingMax = 5
)

// Thresholds splitting each axis into low/mid/high bands.
const (
	bandMid  = 2.5
	bandHigh = 4.0
)

const (
	CategoryStar           = "Star"
	CategoryHighPotential  = "High Potential"
	CategoryRoughDiamond   = "Rough Diamond"
	CategoryHighPerformer  = "High Performer"
	CategoryCorePerformer  = "Core Performer"
	CategoryInconsistent   = "Inconsistent"
	CategorySolidPerformer = "Solid Performer"
	CategoryEffective      = "Effective"
	CategoryUnderperformer = "Underperformer"

	// CategoryUnavailable is the sentinel for inputs that cannot be
	// classified (non-finite averages). Classification never fails.
	CategoryUnavailable = "Unavailable"
)

type Summary struct {
	AvgPerformance float64 `json:"avgPerformance"`
	AvgPotential   float64 `json:"avgPotential"`
	Category       string  `json:"category"`
}

// Average returns the arithmetic mean of exactly Dimensions ratings, each in
// [RatingMin, RatingMax].
func Average(ratings []int) (float64, error) {
	if len(ratings) != Dimensions {
		return 0, fmt.Errorf("expected %d ratings, got %d", Dimensions, len(ratings))
	}
	sum := 0
	for i, r := range ratings {
		if r < RatingMin || r > RatingMax {
			return 0, fmt.Errorf("rating %d out of range: %d", i+1, r)
		}
		sum += r
	}
	return float64(sum) / Dimensions, nil
}

// Classify maps an (avgPerformance, avgPotential) pair onto the 9-box grid.
// It is total: every pair of floats yields exactly one category.
func Classify(avgPerformance, avgPotential float64) string {
	if !finite(avgPerformance) || !finite(avgPotential) {
		return CategoryUnavailable
	}

	perf := band(avgPerformance)
	pot := band(avgPotential)

	grid := [3][3]string{
		// potential: low, mid, high
		{CategoryUnderperformer, CategoryInconsistent, CategoryRoughDiamond},  // low performance
		{CategoryEffective, CategoryCorePerformer, CategoryHighPotential},     // mid performance
		{CategorySolidPerformer, CategoryHighPerformer, CategoryStar},         // high performance
	}
	return grid[perf][pot]
}

// Compute derives the full summary from two rating vectors. Invalid vectors
// return an error and the caller must not persist; a summary is still
// returned with the Unavailable category so display paths can degrade.
func Compute(performance, potential []int) (Summary, error) {
	avgPerf, errPerf := Average(performance)
	avgPot, errPot := Average(potential)
	if errPerf != nil {
		return Summary{Category: CategoryUnavailable}, errPerf
	}
	if errPot != nil {
		return Summary{Category: CategoryUnavailable}, errPot
	}
	return Summary{
		AvgPerformance: avgPerf,
		AvgPotential:   avgPot,
		Category:       Classify(avgPerf, avgPot),
	}, nil
}

func band(avg float64) int {
	switch {
	case avg >= bandHigh:
		return 2
	case avg >= bandMid:
		return 1
	default:
		return 0
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
