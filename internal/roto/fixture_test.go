package roto

import (
	"fmt"
	"math"
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func assertApprox(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approx(got, want) {
		t.Fatalf("expected %s %v, got %v", name, want, got)
	}
}

// rates builds a per-game line in the order the box score is usually read.
func rates(pts, reb, ast, stl, blk, tpm, to, fgm, fga, ftm, fta float64) models.StatLine {
	var l models.StatLine
	l[models.StatPoints] = pts
	l[models.StatRebounds] = reb
	l[models.StatAssists] = ast
	l[models.StatSteals] = stl
	l[models.StatBlocks] = blk
	l[models.StatThreePM] = tpm
	l[models.StatTurnovers] = to
	l[models.StatFGM] = fgm
	l[models.StatFGA] = fga
	l[models.StatFTM] = ftm
	l[models.StatFTA] = fta
	return l
}

func player(id string, mpg, games float64, r models.StatLine) models.PlayerProjection {
	return models.PlayerProjection{
		ID:             id,
		Name:           "Player " + id,
		GamesToPlay:    games,
		MinutesPerGame: mpg,
		Rates:          r,
	}
}

// scaledLine gives every category a distinct value per k so no category is
// tied across teams.
func scaledLine(teamID int, k float64) models.TeamStandingLine {
	return models.TeamStandingLine{
		TeamID: teamID,
		Totals: rates(20*k, 10*k, 5*k, 2*k, 1*k, 3*k, 7*k, 40+k, 100, 70+k, 100),
	}
}

// testLeague is three teams of two players plus three free agents. Team
// strength grows with team id.
func testLeague() ([]models.PlayerProjection, models.Roster, []int) {
	var projections []models.PlayerProjection
	roster := models.Roster{}
	for team := 1; team <= 3; team++ {
		for slot := 0; slot < 2; slot++ {
			k := float64(team) + 0.5*float64(slot)
			id := fmt.Sprintf("t%d-p%d", team, slot)
			projections = append(projections, player(id, 30, 10,
				rates(15*k, 6*k, 4*k, 1*k, 0.5*k, 1.5*k, 2*k, 5+k, 11+k, 3+0.5*k, 4+0.5*k)))
			roster[id] = team
		}
	}
	for i, k := range []float64{4, 0.5, 2.5} {
		id := fmt.Sprintf("fa-%d", i)
		projections = append(projections, player(id, 28, 10,
			rates(15*k, 6*k, 4*k, 1*k, 0.5*k, 1.5*k, 2*k, 5+k, 12+k, 3+0.4*k, 4+0.5*k)))
	}
	return projections, roster, []int{1, 2, 3}
}
