package espn

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

// statIDs maps ESPN basketball stat ids to engine stats.
var statIDs = map[string]models.Stat{
	"0":  models.StatPoints,
	"1":  models.StatBlocks,
	"2":  models.StatSteals,
	"3":  models.StatAssists,
	"6":  models.StatRebounds,
	"11": models.StatTurnovers,
	"13": models.StatFGM,
	"14": models.StatFGA,
	"15": models.StatFTM,
	"16": models.StatFTA,
	"17": models.StatThreePM,
}

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	return metadata(espnResponse), nil
}

func metadata(r models.LeagueResponse) *models.LeagueMetadata {
	return &models.LeagueMetadata{
		LeagueID:             r.ID,
		Name:                 r.Settings.Name,
		Size:                 r.Settings.Size,
		CurrentScoringPeriod: r.ScoringPeriodID,
		SeasonID:             r.SeasonID,
		IsActive:             r.Status.IsActive,
		LastUpdated:          time.Now(),
	}
}

// GetLeague fetches teams, rosters and season-to-date roto totals in one
// request.
func (a *API) GetLeague(ctx context.Context) (*models.League, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings,mTeam,mRoster",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}

	league := &models.League{Metadata: *metadata(leagueResponse)}
	for _, team := range leagueResponse.Teams {
		league.Teams = append(league.Teams, models.TeamInfo{
			ID:           team.ID,
			Name:         teamName(team),
			Abbreviation: team.Abbreviation,
		})
		league.Standings = append(league.Standings, models.TeamStandingLine{
			TeamID: team.ID,
			Totals: statLine(team.ValuesByStat),
		})
		for _, entry := range team.Roster.Entries {
			player := entry.PlayerPoolEntry.Player
			league.Rosters = append(league.Rosters, models.RosterEntry{
				TeamID:       team.ID,
				ExternalID:   strconv.Itoa(entry.PlayerID),
				Name:         player.FullName,
				Position:     getPositionString(player.DefaultPositionID),
				ProTeam:      getProTeamString(player.ProTeamID),
				InjuryStatus: player.InjuryStatus,
			})
		}
	}

	sort.Slice(league.Standings, func(i, j int) bool {
		return league.Standings[i].TeamID < league.Standings[j].TeamID
	})

	slog.Info("Fetched ESPN league",
		"league_id", league.Metadata.LeagueID,
		"teams", len(league.Teams),
		"rostered", len(league.Rosters),
	)
	return league, nil
}

func statLine(values map[string]float64) models.StatLine {
	var line models.StatLine
	for id, v := range values {
		if s, ok := statIDs[id]; ok {
			line[s] = v
		}
	}
	return line
}

func teamName(team models.Team) string {
	if team.Name != "" {
		return team.Name
	}
	name := strings.TrimSpace(team.Location + " " + team.Nickname)
	if name == "" {
		return team.Abbreviation
	}
	return name
}

func getPositionString(positionID int) string {
	positions := map[int]string{
		1: "PG", 2: "SG", 3: "SF", 4: "PF", 5: "C",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BOS", 3: "NOP", 4: "CHI", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GSW", 10: "HOU", 11: "IND", 12: "LAC", 13: "LAL", 14: "MIA", 15: "MIL", 16: "MIN",
		17: "BKN", 18: "NYK", 19: "ORL", 20: "PHI", 21: "PHX", 22: "POR", 23: "SAC", 24: "SAS",
		25: "OKC", 26: "UTA", 27: "WAS", 28: "TOR", 29: "MEM", 30: "CHA",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return "Unknown"
}
