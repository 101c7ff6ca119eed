package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

const projectionsCSV = `name,yahoo_id,team,rank,gtp,gtp_override,mpg,pts,reb,ast,st,blk,3ptm,to,fga,fg%,fta,ft%
Nikola Jokic,101,DEN,1,60,,34.5,26.1,12.3,9.0,1.4,0.8,1.1,3.0,18.0,0.6,6.0,0.8
Jrue Holiday,102,BOS,80,50,20,30.0,12.0,5.0,5.0,1.0,0.5,2.0,1.5,10.0,0.5,2.0,0.85
`

func TestReadProjectionsWithAliases(t *testing.T) {
	projections, err := ReadProjections(strings.NewReader(projectionsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projections) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(projections))
	}

	jokic := projections[0]
	if jokic.ID != "101" || jokic.ProTeam != "DEN" || jokic.Rank != 1 {
		t.Fatalf("unexpected identity fields: %+v", jokic)
	}
	if jokic.Rates[models.StatRebounds] != 12.3 || jokic.Rates[models.StatSteals] != 1.4 || jokic.Rates[models.StatThreePM] != 1.1 {
		t.Fatalf("expected aliased stat columns to be read, got %v", jokic.Rates)
	}
	// makes are derived from the percentage and attempts columns.
	if got := jokic.Rates[models.StatFGM]; got < 10.79 || got > 10.81 {
		t.Fatalf("expected fgm 10.8, got %v", got)
	}
	if jokic.GamesOverride != 0 || jokic.EffectiveGames() != 60 {
		t.Fatalf("expected no override, got %v", jokic.GamesOverride)
	}

	if projections[1].EffectiveGames() != 20 {
		t.Fatalf("expected override of 20 games, got %v", projections[1].EffectiveGames())
	}
}

func TestReadProjectionsRejectsBadNumbers(t *testing.T) {
	in := "name,pts\nSomebody,lots\n"

	_, err := ReadProjections(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected row error, got %v", err)
	}
}

func TestReadProjectionsRejectsDuplicates(t *testing.T) {
	in := "id,name\n1,A\n1,B\n"

	if _, err := ReadProjections(strings.NewReader(in)); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestReadRostersSkipsCommentsAndFreeAgents(t *testing.T) {
	in := "team_id,name,yahoo_id\n# traded away\n1,Nikola Jokic,101\n0,Jrue Holiday,102\n3,Jalen Brunson,103\n"

	entries, err := ReadRosters(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[1].TeamID != 3 || entries[1].ExternalID != "103" {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
}

func TestReadStandings(t *testing.T) {
	in := "team_id,name,3ptm,pts,reb,ast,st,blk,to,fgm,fga,ftm,fta\n1,Alpha,100,2000,800,400,150,90,250,700,1500,300,380\n2,,90,1900,820,380,140,95,240,690,1490,310,390\n"

	lines, teams, err := ReadStandings(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0].Totals[models.StatRebounds] != 800 {
		t.Fatalf("unexpected standings: %+v", lines)
	}
	if len(teams) != 1 || teams[0].Name != "Alpha" {
		t.Fatalf("expected one named team, got %+v", teams)
	}
}

func TestLoadStandingsMissingFile(t *testing.T) {
	lines, teams, err := LoadStandings(filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil || lines != nil || teams != nil {
		t.Fatalf("expected empty standings for a missing file, got %v %v %v", lines, teams, err)
	}
}

func TestWriteSwapsLeavesAbsentBufferBlank(t *testing.T) {
	b := 0.125
	trials := []models.SwapTrial{
		{DropID: "a", AddID: "b", NewTotal: 60, TotalDelta: 2, Buffer: &b},
		{DropID: "c", NewTotal: 50, TotalDelta: -8},
	}

	var buf bytes.Buffer
	if err := WriteSwaps(&buf, trials); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][9] != "0.1250" || records[2][9] != "" {
		t.Fatalf("expected buffer 0.1250 then blank, got %q and %q", records[1][9], records[2][9])
	}
	if len(records[0]) != 11+models.NumCategories {
		t.Fatalf("expected %d columns, got %d", 11+models.NumCategories, len(records[0]))
	}
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	report := &models.Report{
		Standings: []models.TeamStandingLine{{TeamID: 1}},
		Ranking:   models.Ranking{Teams: []models.TeamRank{{TeamID: 1, Total: 9}}},
		Values:    []models.PlayerValue{{Player: models.PlayerProjection{ID: "1", Name: "A"}, TeamID: 1}},
	}

	if err := WriteReport(dir, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{ValuesFile, StandingsFile, RankingsFile, SwapsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}

	values, err := os.ReadFile(filepath.Join(dir, ValuesFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(values), "name,id,team_id,rank,gtp,mpg,total_value,mod_value,3pm_value") {
		t.Fatalf("unexpected values header: %q", strings.SplitN(string(values), "\n", 2)[0])
	}
}
