package models

import (
	"fmt"
	"strings"
)

type Stat int

const (
	StatThreePM Stat = iota
	StatPoints
	StatRebounds
	StatAssists
	StatSteals
	StatBlocks
	StatTurnovers
	StatFGM
	StatFGA
	StatFTM
	StatFTA
	NumStats
)

var statKeys = [NumStats]string{
	StatThreePM:   "3pm",
	StatPoints:    "pts",
	StatRebounds:  "treb",
	StatAssists:   "ast",
	StatSteals:    "stl",
	StatBlocks:    "blk",
	StatTurnovers: "to",
	StatFGM:       "fgm",
	StatFGA:       "fga",
	StatFTM:       "ftm",
	StatFTA:       "fta",
}

func (s Stat) String() string {
	if s < 0 || s >= NumStats {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statKeys[s]
}

// StatKind says how a stat participates in scoring. Ratio parts are summed like
// counting stats but are only ever scored through the ratio they belong to.
type StatKind int

const (
	KindCounting StatKind = iota
	KindRatioNumerator
	KindRatioDenominator
)

func (s Stat) Kind() StatKind {
	switch s {
	case StatFGM, StatFTM:
		return KindRatioNumerator
	case StatFGA, StatFTA:
		return KindRatioDenominator
	default:
		return KindCounting
	}
}

// RatioOf returns the ratio category a numerator or denominator stat feeds.
func (s Stat) RatioOf() (Category, bool) {
	switch s {
	case StatFGM, StatFGA:
		return FieldGoalPct, true
	case StatFTM, StatFTA:
		return FreeThrowPct, true
	default:
		return Category{}, false
	}
}

// ParseStat resolves a column name to a Stat. Common aliases used by the
// different data sources are accepted.
func ParseStat(key string) (Stat, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "3ptm", "3pt", "tpm":
		return StatThreePM, true
	case "reb", "rebs":
		return StatRebounds, true
	case "st", "stls":
		return StatSteals, true
	case "tov":
		return StatTurnovers, true
	}
	for i, k := range statKeys {
		if k == key {
			return Stat(i), true
		}
	}
	return 0, false
}

// StatLine holds one value per Stat. Lines are values, so copying one never
// aliases another.
type StatLine [NumStats]float64

func (l StatLine) Add(o StatLine) StatLine {
	for i := range l {
		l[i] += o[i]
	}
	return l
}

func (l StatLine) Scale(f float64) StatLine {
	for i := range l {
		l[i] *= f
	}
	return l
}

func (l StatLine) IsZero() bool {
	for _, v := range l {
		if v != 0 {
			return false
		}
	}
	return true
}
