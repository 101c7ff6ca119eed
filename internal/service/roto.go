package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/omarshaarawi/rotocoach/internal/config"
	"github.com/omarshaarawi/rotocoach/internal/identity"
	"github.com/omarshaarawi/rotocoach/internal/models"
	"github.com/omarshaarawi/rotocoach/internal/repository/history"
	"github.com/omarshaarawi/rotocoach/internal/repository/memory"
	"github.com/omarshaarawi/rotocoach/internal/roto"
)

// LeagueSource supplies rosters, standings and projections.
type LeagueSource interface {
	GetLeague(ctx context.Context) (*models.League, error)
	GetProjections(ctx context.Context) ([]models.PlayerProjection, error)
	Source() string
}

type HistoryStore interface {
	Save(ctx context.Context, report *models.Report, source string) (int64, error)
	Recent(ctx context.Context, limit int) ([]history.Run, error)
	PlayerTrend(ctx context.Context, playerID string, limit int) ([]history.ValuePoint, error)
}

type RotoService struct {
	api     LeagueSource
	repo    *memory.Repository
	history HistoryStore
	opts    roto.Options
	teamIDs []int

	// MaxAge is how long a cached report is served before a refresh.
	MaxAge time.Duration
	now    func() time.Time
}

// NewRotoService wires the pipeline. history may be nil.
func NewRotoService(api LeagueSource, repo *memory.Repository, store HistoryStore, opts roto.Options, teamIDs []int) *RotoService {
	return &RotoService{
		api:     api,
		repo:    repo,
		history: store,
		opts:    opts,
		teamIDs: teamIDs,
		MaxAge:  24 * time.Hour,
		now:     time.Now,
	}
}

// Refresh pulls fresh league data, runs the valuation and swap search, and
// caches and records the resulting report.
func (s *RotoService) Refresh(ctx context.Context) (*models.Report, error) {
	start := s.now()

	league, err := s.api.GetLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching league: %w", err)
	}
	projections, err := s.api.GetProjections(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching projections: %w", err)
	}

	mapping := identity.NewMatcher(projections).MapRoster(league.Rosters)
	teamIDs := s.leagueTeamIDs(league)

	out, err := roto.Analyze(ctx, roto.Inputs{
		Projections: projections,
		Roster:      mapping.Roster,
		Current:     league.Standings,
		TeamIDs:     teamIDs,
	}, s.opts)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		GeneratedAt: start,
		MyTeamID:    s.opts.MyTeamID,
		Teams:       league.Teams,
		Standings:   out.Search.Baseline.Standings,
		Ranking:     out.Search.Baseline.Ranking,
		Baseline:    out.Search.Baseline.Team,
		Buffer:      out.Search.Baseline.Buffer,
		Values:      out.Values,
		Swaps:       out.Search.Trials,
		Warnings:    append(mapping.Warnings(), playingTimeWarnings(projections, mapping.Roster, s.opts.RecentWindow)...),
	}
	s.repo.SaveReport(report)
	s.repo.SaveMetadata(&league.Metadata)

	if s.history != nil {
		if _, err := s.history.Save(ctx, report, s.api.Source()); err != nil {
			slog.Error("Failed to record report history", "error", err)
		}
	}

	slog.Info("Report refreshed",
		"source", s.api.Source(),
		"team_id", report.MyTeamID,
		"total", report.Baseline.Total,
		"swaps", len(report.Swaps),
		"warnings", len(report.Warnings),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return report, nil
}

// Report returns the cached report, refreshing it when missing or stale.
func (s *RotoService) Report(ctx context.Context) (*models.Report, error) {
	report := s.repo.GetReport()
	if report == nil || s.now().Sub(report.GeneratedAt) > s.MaxAge {
		return s.Refresh(ctx)
	}
	return report, nil
}

// leagueTeamIDs is every team the source reports. The configured ids are
// only used when the source reports none.
func (s *RotoService) leagueTeamIDs(league *models.League) []int {
	seen := make(map[int]bool)
	var ids []int
	add := func(id int) {
		if id != models.FreeAgent && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, t := range league.Teams {
		add(t.ID)
	}
	for _, l := range league.Standings {
		add(l.TeamID)
	}
	for _, e := range league.Rosters {
		add(e.TeamID)
	}

	if len(ids) == 0 {
		return append([]int(nil), s.teamIDs...)
	}
	if len(ids) != len(s.teamIDs) {
		slog.Warn("League size differs from configuration", "count", len(ids), "configured", len(s.teamIDs))
	}
	sort.Ints(ids)
	return ids
}

// playingTimeWarnings flags rostered players projected to play games but
// given no minutes. The playing-time model gives them no share, so they add
// nothing to their team's totals.
func playingTimeWarnings(projections []models.PlayerProjection, roster models.Roster, window float64) []string {
	var out []string
	for _, p := range projections {
		teamID := roster.TeamOf(p.ID)
		if teamID == models.FreeAgent || p.EffectiveGames() <= 0 || p.EffectiveMinutes(window) > 0 {
			continue
		}
		slog.Warn("Rostered player has no projected minutes", "player", p.Name, "team_id", teamID, "games", p.EffectiveGames())
		out = append(out, fmt.Sprintf("no projected minutes for %s (team %d), counted as zero", p.Name, teamID))
	}
	return out
}

// OptionsFromConfig resolves the league settings into engine options.
func OptionsFromConfig(l config.League) (roto.Options, error) {
	punt, err := l.PuntCategories()
	if err != nil {
		return roto.Options{}, fmt.Errorf("punt categories: %w", err)
	}
	buffer, err := l.Buffer()
	if err != nil {
		return roto.Options{}, fmt.Errorf("buffer categories: %w", err)
	}
	return roto.Options{
		MyTeamID:         l.MyTeamID,
		TopN:             l.TopN,
		RosterSize:       l.RosterSize,
		TeamGames:        l.TeamGames,
		RecentWindow:     l.RecentWindow,
		IncludeRostered:  l.IncludeRostered,
		Punt:             punt,
		BufferCategories: buffer,
	}, nil
}
