package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

var statColumns = [models.NumStats][]string{
	models.StatThreePM:   {"3pm", "3ptm", "tpm"},
	models.StatPoints:    {"pts"},
	models.StatRebounds:  {"treb", "reb"},
	models.StatAssists:   {"ast"},
	models.StatSteals:    {"stl", "st"},
	models.StatBlocks:    {"blk"},
	models.StatTurnovers: {"to", "tov"},
	models.StatFGM:       {"fgm"},
	models.StatFGA:       {"fga"},
	models.StatFTM:       {"ftm"},
	models.StatFTA:       {"fta"},
}

// readStats fills a StatLine from the stat columns of one row. Makes missing
// from the file are derived from a percentage column and attempts.
func readStats(t *table, row []string) (models.StatLine, error) {
	var line models.StatLine
	for s, names := range statColumns {
		v, err := t.float(row, names...)
		if err != nil {
			return line, err
		}
		line[s] = v
	}

	derive := []struct {
		made, attempted models.Stat
		pct             []string
	}{
		{models.StatFGM, models.StatFGA, []string{"fg%", "fgp"}},
		{models.StatFTM, models.StatFTA, []string{"ft%", "ftp"}},
	}
	for _, d := range derive {
		if t.has(statColumns[d.made]...) || !t.has(d.pct...) {
			continue
		}
		pct, err := t.float(row, d.pct...)
		if err != nil {
			return line, err
		}
		line[d.made] = pct * line[d.attempted]
	}
	return line, nil
}

// ReadProjections parses per-game player projections. Each row needs an id,
// external id or name; the first one present becomes the player id.
func ReadProjections(r io.Reader) ([]models.PlayerProjection, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return parseProjections(t)
}

func LoadProjections(path string) ([]models.PlayerProjection, error) {
	t, err := openTable(path)
	if err != nil {
		return nil, fmt.Errorf("loading projections: %w", err)
	}
	return parseProjections(t)
}

func parseProjections(t *table) ([]models.PlayerProjection, error) {
	if !t.has("name", "player") {
		return nil, errors.New("projections: missing name column")
	}

	seen := make(map[string]bool)
	projections := make([]models.PlayerProjection, 0, len(t.rows))
	for i, row := range t.rows {
		p := models.PlayerProjection{
			Name:       t.str(row, "name", "player"),
			ExternalID: t.str(row, "external_id", "yahoo_id", "espn_id"),
			Position:   t.str(row, "pos", "position"),
			ProTeam:    t.str(row, "team", "pro_team"),
		}
		p.ID = t.str(row, "id")
		if p.ID == "" {
			p.ID = p.ExternalID
		}
		if p.ID == "" {
			p.ID = p.Name
		}
		if p.ID == "" {
			return nil, fmt.Errorf("projections row %d: no id or name", i+2)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("projections row %d: duplicate id %q", i+2, p.ID)
		}
		seen[p.ID] = true

		var errs []error
		var e error
		p.Rank, e = t.integer(row, "rank")
		errs = append(errs, e)
		p.GamesToPlay, e = t.float(row, "gtp", "gp")
		errs = append(errs, e)
		p.GamesOverride, e = t.float(row, "gtp_override")
		errs = append(errs, e)
		p.MinutesPerGame, e = t.float(row, "mpg", "min")
		errs = append(errs, e)
		p.RecentMinutes, e = t.float(row, "recent_min")
		errs = append(errs, e)
		p.RecentGames, e = t.float(row, "recent_gp")
		errs = append(errs, e)
		p.Rates, e = readStats(t, row)
		errs = append(errs, e)
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("projections row %d (%s): %w", i+2, p.Name, err)
		}

		projections = append(projections, p)
	}
	return projections, nil
}

// ReadRosters parses team_id,name[,external_id] rows. Team id 0 or blank
// marks a free agent and is skipped.
func ReadRosters(r io.Reader) ([]models.RosterEntry, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return parseRosters(t)
}

func LoadRosters(path string) ([]models.RosterEntry, error) {
	t, err := openTable(path)
	if err != nil {
		return nil, fmt.Errorf("loading rosters: %w", err)
	}
	return parseRosters(t)
}

func parseRosters(t *table) ([]models.RosterEntry, error) {
	if !t.has("team_id") {
		return nil, errors.New("rosters: missing team_id column")
	}

	var entries []models.RosterEntry
	for i, row := range t.rows {
		teamID, err := t.integer(row, "team_id")
		if err != nil {
			return nil, fmt.Errorf("rosters row %d: %w", i+2, err)
		}
		if teamID == models.FreeAgent {
			continue
		}
		entries = append(entries, models.RosterEntry{
			TeamID:     teamID,
			Name:       t.str(row, "name", "player"),
			ExternalID: t.str(row, "external_id", "yahoo_id", "espn_id", "id"),
		})
	}
	return entries, nil
}

// ReadStandings parses current roto category totals, one row per team.
func ReadStandings(r io.Reader) ([]models.TeamStandingLine, []models.TeamInfo, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, nil, err
	}
	return parseStandings(t)
}

// LoadStandings treats a missing file as a season that has not started.
func LoadStandings(path string) ([]models.TeamStandingLine, []models.TeamInfo, error) {
	t, err := openTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading standings: %w", err)
	}
	return parseStandings(t)
}

func parseStandings(t *table) ([]models.TeamStandingLine, []models.TeamInfo, error) {
	if !t.has("team_id") {
		return nil, nil, errors.New("standings: missing team_id column")
	}

	var lines []models.TeamStandingLine
	var teams []models.TeamInfo
	for i, row := range t.rows {
		teamID, err := t.integer(row, "team_id")
		if err != nil {
			return nil, nil, fmt.Errorf("standings row %d: %w", i+2, err)
		}
		totals, err := readStats(t, row)
		if err != nil {
			return nil, nil, fmt.Errorf("standings row %d: %w", i+2, err)
		}
		lines = append(lines, models.TeamStandingLine{TeamID: teamID, Totals: totals})
		if name := t.str(row, "name", "team_name"); name != "" {
			teams = append(teams, models.TeamInfo{ID: teamID, Name: name})
		}
	}
	return lines, teams, nil
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
