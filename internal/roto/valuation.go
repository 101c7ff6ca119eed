package roto

import (
	"math"
	"sort"

	"github.com/omarshaarawi/rotocoach/internal/models"
	"gonum.org/v1/gonum/floats"
)

// ReplacementLevels returns the worst team's percentage for each ratio
// category. Ratio value is measured above this level.
func ReplacementLevels(lines []models.TeamStandingLine) map[string]float64 {
	levels := make(map[string]float64)
	for _, c := range models.Categories {
		if !c.Ratio {
			continue
		}
		worst := math.Inf(1)
		for _, l := range lines {
			worst = math.Min(worst, l.Value(c))
		}
		if math.IsInf(worst, 1) {
			worst = 0
		}
		levels[c.Key] = worst
	}
	return levels
}

// ValuePlayer prices one player's full projected totals in standing points.
func ValuePlayer(p models.PlayerProjection, n Normalizer, levels map[string]float64, punt []models.Category) models.PlayerValue {
	v := models.PlayerValue{Player: p}
	totals := p.Totals()

	for i, c := range models.Categories {
		factor := n.Factor(c)
		if factor == 0 {
			continue
		}
		if !c.Ratio {
			v.Values[i] = totals[c.Stat] / factor
			continue
		}
		attempts := totals[c.Attempted]
		if attempts == 0 {
			continue
		}
		v.Values[i] = (p.ShootingPct(c) - levels[c.Key]) * attempts / factor
	}

	v.Total = floats.Sum(v.Values[:])
	v.Mod = v.Total
	for _, c := range punt {
		v.Mod -= v.Values[c.Index()]
	}
	return v
}

// Value prices every projection and sorts by mod value, highest first.
func Value(projections []models.PlayerProjection, roster models.Assignment, n Normalizer, final []models.TeamStandingLine, punt []models.Category) []models.PlayerValue {
	levels := ReplacementLevels(final)

	values := make([]models.PlayerValue, len(projections))
	for i, p := range projections {
		values[i] = ValuePlayer(p, n, levels, punt)
		values[i].TeamID = roster.TeamOf(p.ID)
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Mod > values[j].Mod
	})
	return values
}
