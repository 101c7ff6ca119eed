package roto

import (
	"github.com/omarshaarawi/rotocoach/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Aggregator turns player projections plus a roster assignment into
// rest-of-season team totals.
type Aggregator struct {
	projections []models.PlayerProjection
	byID        map[string]int

	// TopN is the weekly active-slot cap.
	TopN int
	// TeamGames is how many games each pro team has left.
	TeamGames    float64
	RecentWindow float64
}

// NewAggregator indexes projections. A non-positive teamGames is derived from
// the projections: some player on every pro team is projected to play every
// remaining game, so the largest games-to-play stands in for the schedule.
func NewAggregator(projections []models.PlayerProjection, topN int, teamGames, recentWindow float64) *Aggregator {
	a := &Aggregator{
		projections:  projections,
		byID:         make(map[string]int, len(projections)),
		TopN:         topN,
		TeamGames:    teamGames,
		RecentWindow: recentWindow,
	}
	for i, p := range projections {
		a.byID[p.ID] = i
		if teamGames <= 0 && p.EffectiveGames() > a.TeamGames {
			a.TeamGames = p.EffectiveGames()
		}
	}
	return a
}

func (a *Aggregator) Projection(id string) (models.PlayerProjection, bool) {
	i, ok := a.byID[id]
	if !ok {
		return models.PlayerProjection{}, false
	}
	return a.projections[i], true
}

func (a *Aggregator) Projections() []models.PlayerProjection {
	return a.projections
}

func (a *Aggregator) targetGames() float64 {
	return float64(a.TopN) * a.TeamGames
}

// TeamPlayers returns the projections currently assigned to teamID.
func (a *Aggregator) TeamPlayers(roster models.Assignment, teamID int) []models.PlayerProjection {
	var players []models.PlayerProjection
	for _, p := range a.projections {
		if roster.TeamOf(p.ID) == teamID {
			players = append(players, p)
		}
	}
	return players
}

// Contributions returns each player's playing-time-weighted totals for one
// team. The team's line is the sum of these.
func (a *Aggregator) Contributions(roster models.Assignment, teamID int) map[string]models.StatLine {
	players := a.TeamPlayers(roster, teamID)
	shares := a.Shares(players)

	out := make(map[string]models.StatLine, len(players))
	for _, p := range players {
		out[p.ID] = p.Totals().Scale(shares[p.ID])
	}
	return out
}

// ProjectTeams builds one rest-of-season line per team id, in the order given.
// Teams without players get an all-zero line.
func (a *Aggregator) ProjectTeams(roster models.Assignment, teamIDs []int) []models.TeamStandingLine {
	byTeam := make(map[int][]models.PlayerProjection, len(teamIDs))
	for _, p := range a.projections {
		t := roster.TeamOf(p.ID)
		if t == models.FreeAgent {
			continue
		}
		byTeam[t] = append(byTeam[t], p)
	}

	lines := make([]models.TeamStandingLine, len(teamIDs))
	for i, teamID := range teamIDs {
		lines[i].TeamID = teamID
		players := byTeam[teamID]
		if len(players) == 0 {
			continue
		}
		shares := a.Shares(players)
		for _, p := range players {
			totals := p.Totals()
			floats.AddScaled(lines[i].Totals[:], shares[p.ID], totals[:])
		}
	}
	return lines
}

// FinalStandings adds projected rest-of-season totals to the current
// standings. The result follows the order of ros.
func FinalStandings(current, ros []models.TeamStandingLine) []models.TeamStandingLine {
	byTeam := make(map[int]models.StatLine, len(current))
	for _, c := range current {
		byTeam[c.TeamID] = c.Totals
	}

	final := make([]models.TeamStandingLine, len(ros))
	for i, r := range ros {
		final[i] = models.TeamStandingLine{
			TeamID: r.TeamID,
			Totals: byTeam[r.TeamID].Add(r.Totals),
		}
	}
	return final
}
