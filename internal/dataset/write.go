package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

const (
	ValuesFile    = "ros_values.csv"
	StandingsFile = "final_standings.csv"
	RankingsFile  = "final_rankings.csv"
	SwapsFile     = "swaps.csv"
)

func writeAll(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

func categoryHeader(suffix string) []string {
	cols := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		cols[i] = c.Key + suffix
	}
	return cols
}

// WriteValues writes one row per player, in the order given.
func WriteValues(w io.Writer, values []models.PlayerValue) error {
	header := append([]string{"name", "id", "team_id", "rank", "gtp", "mpg", "total_value", "mod_value"}, categoryHeader("_value")...)

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := []string{
			v.Player.Name,
			v.Player.ID,
			strconv.Itoa(v.TeamID),
			strconv.Itoa(v.Player.Rank),
			formatFloat(v.Player.EffectiveGames()),
			formatFloat(v.Player.MinutesPerGame),
			formatFloat(v.Total),
			formatFloat(v.Mod),
		}
		for _, x := range v.Values {
			row = append(row, formatFloat(x))
		}
		rows = append(rows, row)
	}
	return writeAll(w, header, rows)
}

// WriteStandings writes projected final totals with the ratio categories
// computed from their parts.
func WriteStandings(w io.Writer, lines []models.TeamStandingLine) error {
	header := []string{"team_id"}
	for s := models.Stat(0); s < models.NumStats; s++ {
		header = append(header, s.String())
	}
	header = append(header, models.FieldGoalPct.Key, models.FreeThrowPct.Key)

	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		row := []string{strconv.Itoa(l.TeamID)}
		for _, v := range l.Totals {
			row = append(row, formatFloat(v))
		}
		row = append(row, formatFloat(l.Value(models.FieldGoalPct)), formatFloat(l.Value(models.FreeThrowPct)))
		rows = append(rows, row)
	}
	return writeAll(w, header, rows)
}

func WriteRankings(w io.Writer, ranking models.Ranking) error {
	header := append([]string{"team_id", "total"}, categoryHeader("")...)

	rows := make([][]string, 0, len(ranking.Teams))
	for _, t := range ranking.Teams {
		row := []string{strconv.Itoa(t.TeamID), strconv.Itoa(t.Total)}
		for _, r := range t.Ranks {
			row = append(row, strconv.Itoa(r))
		}
		rows = append(rows, row)
	}
	return writeAll(w, header, rows)
}

// WriteSwaps writes swap trials. Absent buffers are left blank.
func WriteSwaps(w io.Writer, trials []models.SwapTrial) error {
	header := []string{"drop_id", "drop_name", "drop_rank", "add_id", "add_name", "add_rank", "add_from_team", "new_total", "total_delta", "buffer", "buffer_delta"}
	header = append(header, categoryHeader("_delta")...)

	rows := make([][]string, 0, len(trials))
	for _, t := range trials {
		row := []string{
			t.DropID,
			t.DropName,
			strconv.Itoa(t.DropRank),
			t.AddID,
			t.AddName,
			strconv.Itoa(t.AddRank),
			strconv.Itoa(t.AddFromTeam),
			strconv.Itoa(t.NewTotal),
			strconv.Itoa(t.TotalDelta),
			optionalFloat(t.Buffer),
			optionalFloat(t.BufferDelta),
		}
		for _, d := range t.RankDeltas {
			row = append(row, strconv.Itoa(d))
		}
		rows = append(rows, row)
	}
	return writeAll(w, header, rows)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// WriteReport writes the four report tables into dir.
func WriteReport(dir string, report *models.Report) error {
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{ValuesFile, func(w io.Writer) error { return WriteValues(w, report.Values) }},
		{StandingsFile, func(w io.Writer) error { return WriteStandings(w, report.Standings) }},
		{RankingsFile, func(w io.Writer) error { return WriteRankings(w, report.Ranking) }},
		{SwapsFile, func(w io.Writer) error { return WriteSwaps(w, report.Swaps) }},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
