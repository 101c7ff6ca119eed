package models

import (
	"fmt"
	"strings"
)

// Category is one scored roto category. Counting categories read a single
// Stat; ratio categories divide Made by Attempted after aggregation.
type Category struct {
	Key            string
	Label          string
	Ratio          bool
	Stat           Stat
	Made           Stat
	Attempted      Stat
	HigherIsBetter bool
}

var (
	ThreePointers = Category{Key: "3pm", Label: "3PM", Stat: StatThreePM, HigherIsBetter: true}
	Points        = Category{Key: "pts", Label: "PTS", Stat: StatPoints, HigherIsBetter: true}
	Rebounds      = Category{Key: "treb", Label: "REB", Stat: StatRebounds, HigherIsBetter: true}
	Assists       = Category{Key: "ast", Label: "AST", Stat: StatAssists, HigherIsBetter: true}
	Steals        = Category{Key: "stl", Label: "STL", Stat: StatSteals, HigherIsBetter: true}
	Blocks        = Category{Key: "blk", Label: "BLK", Stat: StatBlocks, HigherIsBetter: true}
	Turnovers     = Category{Key: "to", Label: "TO", Stat: StatTurnovers, HigherIsBetter: false}
	FieldGoalPct  = Category{Key: "fg%", Label: "FG%", Ratio: true, Made: StatFGM, Attempted: StatFGA, HigherIsBetter: true}
	FreeThrowPct  = Category{Key: "ft%", Label: "FT%", Ratio: true, Made: StatFTM, Attempted: StatFTA, HigherIsBetter: true}
)

// Categories is the full scored category set, counting categories first.
var Categories = []Category{
	ThreePointers,
	Points,
	Rebounds,
	Assists,
	Steals,
	Blocks,
	Turnovers,
	FieldGoalPct,
	FreeThrowPct,
}

// NumCategories is len(Categories).
const NumCategories = 9

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat.Key == c.Key {
			return i
		}
	}
	return -1
}

// Value reads the category from an aggregated line. Ratios with no attempts
// are 0.
func (c Category) Value(line StatLine) float64 {
	if !c.Ratio {
		return line[c.Stat]
	}
	attempted := line[c.Attempted]
	if attempted == 0 {
		return 0
	}
	return line[c.Made] / attempted
}

func CategoryByKey(key string) (Category, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, c := range Categories {
		if c.Key == key || strings.ToLower(c.Label) == key {
			return c, true
		}
	}
	switch key {
	case "fgp", "fg_pct":
		return FieldGoalPct, true
	case "ftp", "ft_pct":
		return FreeThrowPct, true
	case "reb":
		return Rebounds, true
	}
	return Category{}, false
}

// ParseCategories resolves a list of keys, failing on the first unknown one.
func ParseCategories(keys []string) ([]Category, error) {
	cats := make([]Category, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		c, ok := CategoryByKey(k)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", k)
		}
		cats = append(cats, c)
	}
	return cats, nil
}
