package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/config"
	"github.com/omarshaarawi/rotocoach/internal/models"
)

const leagueJSON = `{
  "id": 777,
  "seasonId": 2025,
  "scoringPeriodId": 40,
  "status": {"isActive": true},
  "settings": {"name": "Roto Heads", "size": 2},
  "teams": [
    {
      "id": 2,
      "abbrev": "BB",
      "location": "Bay",
      "nickname": "Ballers",
      "valuesByStat": {"0": 2100, "6": 900, "13": 800, "14": 1700, "17": 120, "99": 5},
      "roster": {"entries": [
        {"playerId": 3112335, "lineupSlotId": 0, "playerPoolEntry": {"id": 3112335, "onTeamId": 2,
          "player": {"id": 3112335, "fullName": "Nikola Jokic", "defaultPositionId": 5, "proTeamId": 7}}}
      ]}
    },
    {
      "id": 1,
      "name": "Alpha Dogs",
      "valuesByStat": {"0": 2000, "11": 300},
      "roster": {"entries": []}
    }
  ]
}`

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAPI(NewClient(config.ESPNAPI{
		BaseURL:  server.URL + "/",
		Year:     "2025",
		LeagueID: "777",
		SWID:     "{swid}",
		ESPNS2:   "s2",
	}))
}

func TestGetLeague(t *testing.T) {
	var gotPath string
	var gotViews []string
	var gotCookie string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotViews = r.URL.Query()["view"]
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(leagueJSON))
	})

	league, err := api.GetLeague(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/seasons/2025/segments/0/leagues/777" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(gotViews) != 3 {
		t.Fatalf("expected 3 view params, got %v", gotViews)
	}
	if !strings.Contains(gotCookie, "espn_s2=s2") {
		t.Fatalf("expected espn_s2 cookie, got %q", gotCookie)
	}

	if league.Metadata.Name != "Roto Heads" || league.Metadata.LeagueID != 777 {
		t.Fatalf("unexpected metadata: %+v", league.Metadata)
	}
	if league.Teams[0].Name != "Bay Ballers" || league.Teams[1].Name != "Alpha Dogs" {
		t.Fatalf("unexpected team names: %+v", league.Teams)
	}

	if league.Standings[0].TeamID != 1 {
		t.Fatalf("expected standings sorted by team id, got %+v", league.Standings)
	}
	bay := league.Standings[1].Totals
	if bay[models.StatPoints] != 2100 || bay[models.StatRebounds] != 900 || bay[models.StatThreePM] != 120 || bay[models.StatFGA] != 1700 {
		t.Fatalf("unexpected stat mapping: %v", bay)
	}

	if len(league.Rosters) != 1 {
		t.Fatalf("expected 1 rostered player, got %d", len(league.Rosters))
	}
	jokic := league.Rosters[0]
	if jokic.ExternalID != "3112335" || jokic.TeamID != 2 || jokic.Position != "C" || jokic.ProTeam != "DEN" {
		t.Fatalf("unexpected roster entry: %+v", jokic)
	}
}

func TestGetLeagueStatusError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.GetLeague(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestClientSkipsCookiesForPublicLeagues(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(config.ESPNAPI{BaseURL: server.URL})
	var out map[string]any
	if err := client.Get(context.Background(), "/x", nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCookie != "" {
		t.Fatalf("expected no cookie, got %q", gotCookie)
	}
}
