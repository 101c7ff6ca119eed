package roto

import (
	"fmt"
	"math"
	"sort"

	"github.com/omarshaarawi/rotocoach/internal/models"
	"gonum.org/v1/gonum/stat"
)

// DegenerateCategoryError means a category cannot be used to convert stats
// into standing points, typically because every team is tied.
type DegenerateCategoryError struct {
	Category string
	Reason   string
}

func (e *DegenerateCategoryError) Error() string {
	return fmt.Sprintf("category %s: %s", e.Category, e.Reason)
}

// Normalizer holds, per category, how much stat separates one standing
// point from the next.
type Normalizer struct {
	Slopes [models.NumCategories]float64
	// Volume is only set for ratio categories: the percentage slope scaled by
	// the team's own attempts.
	Volume [models.NumCategories]float64
}

func (n Normalizer) Slope(c models.Category) float64 {
	return n.Slopes[c.Index()]
}

// Factor is the denominator used to price a player's contribution.
func (n Normalizer) Factor(c models.Category) float64 {
	if c.Ratio {
		return n.Volume[c.Index()]
	}
	return n.Slopes[c.Index()]
}

// Normalize regresses sorted team values on rank position 1..N for every
// scored category.
func Normalize(lines []models.TeamStandingLine, myTeamID int) (Normalizer, error) {
	var n Normalizer
	if len(lines) < 2 {
		return n, &DegenerateCategoryError{Category: "all", Reason: fmt.Sprintf("need at least 2 teams, got %d", len(lines))}
	}

	var mine *models.TeamStandingLine
	for i := range lines {
		if lines[i].TeamID == myTeamID {
			mine = &lines[i]
			break
		}
	}
	if mine == nil {
		return n, fmt.Errorf("team %d not present in standings", myTeamID)
	}

	positions := make([]float64, len(lines))
	for i := range positions {
		positions[i] = float64(i + 1)
	}

	for i, c := range models.Categories {
		values := make([]float64, len(lines))
		for j, l := range lines {
			values[j] = l.Value(c)
		}
		sort.Float64s(values)
		if values[0] == values[len(values)-1] {
			return n, &DegenerateCategoryError{Category: c.Key, Reason: "all teams are tied"}
		}

		_, slope := stat.LinearRegression(positions, values, nil, false)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return n, &DegenerateCategoryError{Category: c.Key, Reason: "regression slope is zero or undefined"}
		}
		if !c.HigherIsBetter {
			slope = -slope
		}
		n.Slopes[i] = slope

		if c.Ratio {
			volume := slope * mine.Totals[c.Attempted]
			if volume == 0 {
				return n, &DegenerateCategoryError{Category: c.Key, Reason: fmt.Sprintf("team %d has no %s", myTeamID, c.Attempted)}
			}
			n.Volume[i] = volume
		}
	}

	return n, nil
}
