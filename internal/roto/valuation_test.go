package roto

import (
	"math"
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

func testNormalizer() Normalizer {
	var n Normalizer
	for i, c := range models.Categories {
		n.Slopes[i] = 10
		if !c.HigherIsBetter {
			n.Slopes[i] = -5
		}
		if c.Ratio {
			n.Slopes[i] = 0.01
			n.Volume[i] = 2
		}
	}
	return n
}

func TestValuePlayerCountingAndRatio(t *testing.T) {
	p := player("p", 30, 10, rates(20, 8, 4, 1, 1, 2, 3, 5, 10, 4, 5))
	levels := map[string]float64{"fg%": 0.45, "ft%": 0.85}

	v := ValuePlayer(p, testNormalizer(), levels, nil)

	assertApprox(t, "pts", v.Value(models.Points), 200.0/10)
	assertApprox(t, "to", v.Value(models.Turnovers), 30.0/-5)
	// 50% on 100 attempts against a 45% floor, over a volume factor of 2.
	assertApprox(t, "fg%", v.Value(models.FieldGoalPct), (0.5-0.45)*100/2)
	// 80% on 50 attempts is below the 85% floor.
	assertApprox(t, "ft%", v.Value(models.FreeThrowPct), (0.8-0.85)*50/2)
	if v.Value(models.FreeThrowPct) >= 0 {
		t.Fatalf("expected below-floor shooter to be penalized, got %v", v.Value(models.FreeThrowPct))
	}

	var sum float64
	for _, c := range models.Categories {
		sum += v.Value(c)
	}
	assertApprox(t, "total", v.Total, sum)
	assertApprox(t, "mod", v.Mod, v.Total)
}

func TestValuePlayerModExcludesPuntedCategories(t *testing.T) {
	p := player("p", 30, 10, rates(20, 8, 4, 1, 1, 2, 3, 5, 10, 4, 5))

	v := ValuePlayer(p, testNormalizer(), map[string]float64{}, []models.Category{models.Points, models.ThreePointers})

	assertApprox(t, "mod", v.Mod, v.Total-v.Value(models.Points)-v.Value(models.ThreePointers))
}

func TestValuePlayerWithoutAttempts(t *testing.T) {
	p := player("p", 30, 10, rates(0, 8, 4, 1, 1, 0, 1, 0, 0, 0, 0))

	v := ValuePlayer(p, testNormalizer(), map[string]float64{"fg%": 0.45, "ft%": 0.8}, nil)

	if v.Value(models.FieldGoalPct) != 0 || math.IsNaN(v.Total) {
		t.Fatalf("expected zero ratio value and finite total, got %v and %v", v.Value(models.FieldGoalPct), v.Total)
	}
}

func TestReplacementLevelsUseWorstTeam(t *testing.T) {
	lines := []models.TeamStandingLine{scaledLine(1, 3), scaledLine(2, 1), scaledLine(3, 2)}

	levels := ReplacementLevels(lines)

	assertApprox(t, "fg% floor", levels["fg%"], 0.41)
	assertApprox(t, "ft% floor", levels["ft%"], 0.71)
	if _, ok := levels["pts"]; ok {
		t.Fatal("expected counting categories to have no replacement level")
	}
}

func TestValueSortsByModAndTagsTeams(t *testing.T) {
	projections, roster, teams := testLeague()
	agg := NewAggregator(projections, 2, 0, 0)
	final := FinalStandings(nil, agg.ProjectTeams(roster, teams))
	n, err := Normalize(final, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := Value(projections, roster, n, final, []models.Category{models.Points})

	if len(values) != len(projections) {
		t.Fatalf("expected %d values, got %d", len(projections), len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i].Mod > values[i-1].Mod {
			t.Fatalf("expected descending mod value at %d: %v > %v", i, values[i].Mod, values[i-1].Mod)
		}
	}
	for _, v := range values {
		if v.TeamID != roster.TeamOf(v.Player.ID) {
			t.Fatalf("expected %s on team %d, got %d", v.Player.ID, roster.TeamOf(v.Player.ID), v.TeamID)
		}
	}
}
