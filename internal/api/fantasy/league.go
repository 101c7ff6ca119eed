package fantasy

import (
	"context"
	"fmt"
	"time"

	"github.com/omarshaarawi/rotocoach/internal/api/espn"
	"github.com/omarshaarawi/rotocoach/internal/config"
	"github.com/omarshaarawi/rotocoach/internal/dataset"
	"github.com/omarshaarawi/rotocoach/internal/models"
)

// API is the league source. Rosters and standings come from ESPN when a
// client is configured and from CSV files otherwise. Projections always come
// from the projections file.
type API struct {
	espnAPI *espn.API
	data    config.Data
	teamIDs []int
}

func NewAPI(espnAPI *espn.API, data config.Data, teamIDs []int) *API {
	return &API{espnAPI: espnAPI, data: data, teamIDs: teamIDs}
}

func (a *API) Source() string {
	if a.espnAPI != nil {
		return "espn"
	}
	return "csv"
}

func (a *API) GetLeague(ctx context.Context) (*models.League, error) {
	if a.espnAPI != nil {
		return a.espnAPI.GetLeague(ctx)
	}
	return a.loadLeague()
}

func (a *API) GetProjections(ctx context.Context) ([]models.PlayerProjection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.LoadProjections(a.data.ProjectionsPath)
}

func (a *API) loadLeague() (*models.League, error) {
	rosters, err := dataset.LoadRosters(a.data.RostersPath)
	if err != nil {
		return nil, err
	}
	standings, named, err := dataset.LoadStandings(a.data.StandingsPath)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(named))
	for _, t := range named {
		names[t.ID] = t.Name
	}

	league := &models.League{
		Metadata:  models.LeagueMetadata{Size: len(a.teamIDs), IsActive: true, LastUpdated: time.Now()},
		Rosters:   rosters,
		Standings: standings,
	}
	for _, id := range a.teamIDs {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Team %d", id)
		}
		league.Teams = append(league.Teams, models.TeamInfo{ID: id, Name: name})
	}
	return league, nil
}
