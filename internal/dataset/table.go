package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// table is a header-addressed CSV body. Column names are matched
// case-insensitively.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv file is empty")
	}

	t := &table{columns: make(map[string]int), rows: records[1:]}
	for i, col := range records[0] {
		t.columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return t, nil
}

func openTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// has reports whether any of the names is a column.
func (t *table) has(names ...string) bool {
	_, ok := t.index(names...)
	return ok
}

func (t *table) index(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.columns[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// str returns the first present column's trimmed cell.
func (t *table) str(row []string, names ...string) string {
	i, ok := t.index(names...)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// float parses the cell; empty or missing cells are 0.
func (t *table) float(row []string, names ...string) (float64, error) {
	s := t.str(row, names...)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", names[0], err)
	}
	return v, nil
}

func (t *table) integer(row []string, names ...string) (int, error) {
	v, err := t.float(row, names...)
	return int(v), err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
