package roto

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

type Options struct {
	MyTeamID         int
	TopN             int
	RosterSize       int
	TeamGames        float64
	RecentWindow     float64
	IncludeRostered  bool
	Punt             []models.Category
	BufferCategories []models.Category
}

type Inputs struct {
	Projections []models.PlayerProjection
	Roster      models.Roster
	Current     []models.TeamStandingLine
	TeamIDs     []int
}

type Output struct {
	Normalizer Normalizer
	Values     []models.PlayerValue
	Search     SearchResult
}

// Analyze runs the full pipeline: baseline projection, normalization,
// player valuation and the swap search.
func Analyze(ctx context.Context, in Inputs, opts Options) (Output, error) {
	agg := NewAggregator(in.Projections, opts.TopN, opts.TeamGames, opts.RecentWindow)
	opt := &Optimizer{
		Aggregator:       agg,
		MyTeamID:         opts.MyTeamID,
		RosterSize:       opts.RosterSize,
		IncludeRostered:  opts.IncludeRostered,
		BufferCategories: opts.BufferCategories,
	}

	baseline, err := opt.Evaluate(in.Roster, in.Current, in.TeamIDs)
	if err != nil {
		return Output{}, fmt.Errorf("projecting final standings: %w", err)
	}

	norm, err := Normalize(baseline.Standings, opts.MyTeamID)
	if err != nil {
		return Output{}, fmt.Errorf("normalizing categories: %w", err)
	}

	values := Value(in.Projections, in.Roster, norm, baseline.Standings, opts.Punt)

	search, err := opt.Run(ctx, in.Roster, in.Current, in.TeamIDs)
	if err != nil {
		return Output{}, fmt.Errorf("searching swaps: %w", err)
	}

	return Output{Normalizer: norm, Values: values, Search: search}, nil
}
