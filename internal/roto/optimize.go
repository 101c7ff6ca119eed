package roto

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

type Optimizer struct {
	Aggregator *Aggregator
	MyTeamID   int
	// RosterSize caps the roster; pure adds are skipped when the team is full.
	// Zero means no cap.
	RosterSize int
	// IncludeRostered also tries players on other teams as adds. The dropped
	// player then moves to that team.
	IncludeRostered  bool
	BufferCategories []models.Category
}

// Evaluation is the projected end-of-season picture for one roster.
type Evaluation struct {
	Standings []models.TeamStandingLine
	Ranking   models.Ranking
	Team      models.TeamRank
	Buffer    models.Buffer
}

type SearchResult struct {
	Baseline Evaluation
	Trials   []models.SwapTrial
}

// Evaluate projects final standings and ranks them for an assignment.
func (o *Optimizer) Evaluate(roster models.Assignment, current []models.TeamStandingLine, teamIDs []int) (Evaluation, error) {
	ros := o.Aggregator.ProjectTeams(roster, teamIDs)
	final := FinalStandings(current, ros)
	for _, l := range final {
		for s, v := range l.Totals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Evaluation{}, fmt.Errorf("team %d: %s total is not finite", l.TeamID, models.Stat(s))
			}
		}
	}

	ranking := Rank(final)
	team, ok := ranking.Team(o.MyTeamID)
	if !ok {
		return Evaluation{}, fmt.Errorf("team %d not in standings", o.MyTeamID)
	}
	return Evaluation{
		Standings: final,
		Ranking:   ranking,
		Team:      team,
		Buffer:    ComputeBuffer(final, ranking, o.MyTeamID, o.BufferCategories),
	}, nil
}

// Run evaluates every single drop/add pair against the baseline roster. The
// roster is only read; each trial sees it through an Overlay.
func (o *Optimizer) Run(ctx context.Context, roster models.Roster, current []models.TeamStandingLine, teamIDs []int) (SearchResult, error) {
	baseline, err := o.Evaluate(roster, current, teamIDs)
	if err != nil {
		return SearchResult{}, fmt.Errorf("evaluating baseline: %w", err)
	}

	mine := o.Aggregator.TeamPlayers(roster, o.MyTeamID)
	drops := make([]*models.PlayerProjection, 0, len(mine)+1)
	drops = append(drops, nil)
	for i := range mine {
		drops = append(drops, &mine[i])
	}

	adds := []*models.PlayerProjection{nil}
	projections := o.Aggregator.Projections()
	for i, p := range projections {
		t := roster.TeamOf(p.ID)
		if t == o.MyTeamID || (t != models.FreeAgent && !o.IncludeRostered) {
			continue
		}
		adds = append(adds, &projections[i])
	}

	full := o.RosterSize > 0 && len(mine) >= o.RosterSize
	trials := make([]models.SwapTrial, 0, len(drops)*len(adds))
	skipped := 0
	for _, drop := range drops {
		for _, add := range adds {
			if drop == nil && add == nil {
				continue
			}
			if drop == nil && full {
				continue
			}
			if err := ctx.Err(); err != nil {
				return SearchResult{}, err
			}

			trial, err := o.trial(roster, current, teamIDs, baseline, drop, add)
			if err != nil {
				skipped++
				slog.Debug("Skipping swap trial", "drop", playerID(drop), "add", playerID(add), "error", err)
				continue
			}
			trials = append(trials, trial)
		}
	}

	SortTrials(trials)
	slog.Info("Swap search finished",
		"trials", len(trials),
		"skipped", skipped,
		"baseline_total", baseline.Team.Total,
	)
	return SearchResult{Baseline: baseline, Trials: trials}, nil
}

func (o *Optimizer) trial(roster models.Roster, current []models.TeamStandingLine, teamIDs []int, baseline Evaluation, drop, add *models.PlayerProjection) (models.SwapTrial, error) {
	var moves []models.Move
	t := models.SwapTrial{AddFromTeam: models.FreeAgent}

	if add != nil {
		t.AddID, t.AddName, t.AddRank = add.ID, add.Name, add.Rank
		t.AddFromTeam = roster.TeamOf(add.ID)
		moves = append(moves, models.Move{PlayerID: add.ID, ToTeam: o.MyTeamID})
	}
	if drop != nil {
		t.DropID, t.DropName, t.DropRank = drop.ID, drop.Name, drop.Rank
		moves = append(moves, models.Move{PlayerID: drop.ID, ToTeam: t.AddFromTeam})
	}

	eval, err := o.Evaluate(models.Overlay{Base: roster, Moves: moves}, current, teamIDs)
	if err != nil {
		return models.SwapTrial{}, err
	}

	t.NewTotal = eval.Team.Total
	t.TotalDelta = eval.Team.Total - baseline.Team.Total
	for i := range t.RankDeltas {
		t.RankDeltas[i] = eval.Team.Ranks[i] - baseline.Team.Ranks[i]
	}

	if t.NewTotal >= baseline.Team.Total && eval.Buffer.HasMin {
		b := eval.Buffer.Min
		t.Buffer = &b
		if baseline.Buffer.HasMin {
			d := b - baseline.Buffer.Min
			t.BufferDelta = &d
		}
	}
	return t, nil
}

// SortTrials orders trials by resulting total rank, then by the buffer they
// leave. Trials without a buffer sort after those with one.
func SortTrials(trials []models.SwapTrial) {
	sort.SliceStable(trials, func(i, j int) bool {
		a, b := trials[i], trials[j]
		if a.NewTotal != b.NewTotal {
			return a.NewTotal > b.NewTotal
		}
		switch {
		case a.Buffer != nil && b.Buffer == nil:
			return true
		case a.Buffer == nil && b.Buffer != nil:
			return false
		case a.Buffer != nil && *a.Buffer != *b.Buffer:
			return *a.Buffer > *b.Buffer
		}
		if a.DropID != b.DropID {
			return a.DropID < b.DropID
		}
		return a.AddID < b.AddID
	})
}

func playerID(p *models.PlayerProjection) string {
	if p == nil {
		return ""
	}
	return p.ID
}
