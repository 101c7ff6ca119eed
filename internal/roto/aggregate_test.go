package roto

import (
	"math"
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

func TestSolveMultiplierHitsTarget(t *testing.T) {
	players := []allotment{{pct: 0.5, games: 10}, {pct: 0.25, games: 10}}

	k := solveMultiplier(players, 12)

	if math.Abs(k-1.6) > 1e-6 {
		t.Fatalf("expected multiplier 1.6, got %v", k)
	}
	if got := simulatedGames(players, k); math.Abs(got-12) > 1e-6 {
		t.Fatalf("expected simulated games 12, got %v", got)
	}
}

func TestSolveMultiplierFallsBackToBounds(t *testing.T) {
	players := []allotment{{pct: 0.5, games: 10}, {pct: 0.5, games: 10}}

	if k := solveMultiplier(players, 1); k != minMultiplier {
		t.Fatalf("expected lower bound when target is below reach, got %v", k)
	}
	if k := solveMultiplier(players, 500); k != maxMultiplier {
		t.Fatalf("expected upper bound when target is above reach, got %v", k)
	}
}

func TestSharesFavorHeavyMinutes(t *testing.T) {
	players := []models.PlayerProjection{
		player("starter", 36, 10, models.StatLine{}),
		player("bench", 12, 10, models.StatLine{}),
	}
	agg := NewAggregator(players, 1, 16, 0)

	shares := agg.Shares(players)

	if shares["starter"] != 1 {
		t.Fatalf("expected starter to play every game, got %v", shares["starter"])
	}
	if shares["bench"] <= 0 || shares["bench"] >= 1 {
		t.Fatalf("expected bench share strictly between 0 and 1, got %v", shares["bench"])
	}
	if got := shares["starter"]*10 + shares["bench"]*10; math.Abs(got-16) > 1e-6 {
		t.Fatalf("expected 16 simulated games, got %v", got)
	}
}

func TestProjectTeamsAdditivity(t *testing.T) {
	projections, roster, teams := testLeague()
	agg := NewAggregator(projections, 1, 0, 0)

	lines := agg.ProjectTeams(roster, teams)

	for _, line := range lines {
		var sum models.StatLine
		for _, c := range agg.Contributions(roster, line.TeamID) {
			sum = sum.Add(c)
		}
		for s := range sum {
			if !approx(sum[s], line.Totals[s]) {
				t.Fatalf("team %d %s: expected %v, got %v", line.TeamID, models.Stat(s), sum[s], line.Totals[s])
			}
		}
	}
}

func TestProjectTeamsRatioFromParts(t *testing.T) {
	projections := []models.PlayerProjection{
		player("a", 36, 1, rates(0, 0, 0, 0, 0, 0, 0, 10, 20, 0, 0)),
		player("b", 36, 1, rates(0, 0, 0, 0, 0, 0, 0, 1, 10, 0, 0)),
	}
	roster := models.Roster{"a": 1, "b": 1}
	agg := NewAggregator(projections, 10, 0, 0)

	lines := agg.ProjectTeams(roster, []int{1})

	assertApprox(t, "fg%", lines[0].Value(models.FieldGoalPct), 11.0/30.0)
	mean := (0.5 + 0.1) / 2
	if approx(lines[0].Value(models.FieldGoalPct), mean) {
		t.Fatal("expected team fg% to differ from the mean of player percentages")
	}
}

func TestProjectTeamsZeroGamesContributeNothing(t *testing.T) {
	projections := []models.PlayerProjection{
		player("idle", 30, 0, rates(25, 10, 5, 2, 1, 3, 3, 9, 18, 5, 6)),
	}
	roster := models.Roster{"idle": 1}
	agg := NewAggregator(projections, 10, 20, 0)

	lines := agg.ProjectTeams(roster, []int{1})

	for s, v := range lines[0].Totals {
		if v != 0 || math.IsNaN(v) {
			t.Fatalf("expected zero %s, got %v", models.Stat(s), v)
		}
	}
}

func TestProjectTeamsEmptyTeamIsZero(t *testing.T) {
	projections, roster, _ := testLeague()
	agg := NewAggregator(projections, 10, 0, 0)

	lines := agg.ProjectTeams(roster, []int{1, 7})

	if lines[1].TeamID != 7 || !lines[1].Totals.IsZero() {
		t.Fatalf("expected zero line for empty team, got %+v", lines[1])
	}
	if lines[1].Value(models.FieldGoalPct) != 0 {
		t.Fatalf("expected zero fg%% for empty team, got %v", lines[1].Value(models.FieldGoalPct))
	}
}

func TestNewAggregatorDerivesTeamGames(t *testing.T) {
	projections := []models.PlayerProjection{
		player("a", 30, 12, models.StatLine{}),
		player("b", 30, 20, models.StatLine{}),
		{ID: "c", GamesToPlay: 5, GamesOverride: 25},
	}

	agg := NewAggregator(projections, 10, 0, 0)
	if agg.TeamGames != 25 {
		t.Fatalf("expected team games 25, got %v", agg.TeamGames)
	}

	agg = NewAggregator(projections, 10, 30, 0)
	if agg.TeamGames != 30 {
		t.Fatalf("expected configured team games 30, got %v", agg.TeamGames)
	}
}

func TestFinalStandingsAddsCurrent(t *testing.T) {
	current := []models.TeamStandingLine{scaledLine(1, 1), scaledLine(2, 2)}
	ros := []models.TeamStandingLine{scaledLine(2, 1), {TeamID: 3}}

	final := FinalStandings(current, ros)

	if len(final) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(final))
	}
	assertApprox(t, "team 2 pts", final[0].Totals[models.StatPoints], 60)
	if !final[1].Totals.IsZero() {
		t.Fatalf("expected team missing from current standings to keep ros totals, got %+v", final[1])
	}
}
