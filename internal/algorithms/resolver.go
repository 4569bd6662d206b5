package algorithms

import (
	"math"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/models"
	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

// ResolveSize picks the size label for a target measurement.
//
// The scan is linear and order-sensitive on purpose: when ranges overlap,
// the first stored range wins, and when nothing matches, ties on boundary
// distance are broken by whichever range the scan visits first. Both
// behaviors are externally observable and covered by tests, so they must
// not be "fixed" by sorting the ranges.
func ResolveSize(chart *models.SizeChart, target float64) (string, models.MatchMode, error) {
	if len(chart.Ranges) == 0 {
		return "", "", apperrors.ErrChartEmpty(chart.Key)
	}

	// Paso 1: first range that contains the target wins.
	for i, r := range chart.Ranges {
		if r.Contains(target) {
			if r.Size == "" {
				return "", "", apperrors.ErrRangeMissingLabel(chart.Key, i)
			}
			return r.Size, models.MatchModeInRange, nil
		}
	}

	// Paso 2: no range matched, take the one with the nearest boundary.
	// Strict < keeps the first-encountered range on exact ties.
	best := 0
	bestDist := math.Inf(1)
	for i, r := range chart.Ranges {
		if d := r.BoundaryDistance(target); d < bestDist {
			best = i
			bestDist = d
		}
	}

	winner := chart.Ranges[best]
	if winner.Size == "" {
		return "", "", apperrors.ErrRangeMissingLabel(chart.Key, best)
	}
	return winner.Size, models.MatchModeClosest, nil
}

// Round2 rounds for display only. Comparisons and distance math always
// run on the unrounded value.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
