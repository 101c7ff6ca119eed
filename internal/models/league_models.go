package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	Size                 int
	CurrentScoringPeriod int
	SeasonID             int
	IsActive             bool
	LastUpdated          time.Time
}

type TeamInfo struct {
	ID           int
	Name         string
	Abbreviation string
}

// RosterEntry is one rostered player as reported by the league source.
type RosterEntry struct {
	TeamID       int
	ExternalID   string
	Name         string
	Position     string
	ProTeam      string
	InjuryStatus string
}

// League is everything the league source hands to the engine.
type League struct {
	Metadata  LeagueMetadata
	Teams     []TeamInfo
	Rosters   []RosterEntry
	Standings []TeamStandingLine
}

type TeamStandingLine struct {
	TeamID int
	Totals StatLine
}

func (l TeamStandingLine) Value(c Category) float64 {
	return c.Value(l.Totals)
}

type TeamRank struct {
	TeamID int
	Total  int
	Ranks  [NumCategories]int
}

func (t TeamRank) Rank(c Category) int {
	return t.Ranks[c.Index()]
}

// Ranking is ordered best total first.
type Ranking struct {
	Teams []TeamRank
}

func (r Ranking) Team(teamID int) (TeamRank, bool) {
	for _, t := range r.Teams {
		if t.TeamID == teamID {
			return t, true
		}
	}
	return TeamRank{}, false
}

// Buffer is a team's fractional lead over the next-worse team per category.
// Categories with no team below, or a zero value, have no entry.
type Buffer struct {
	ByCategory map[string]float64
	Min        float64
	HasMin     bool
}

type PlayerValue struct {
	Player PlayerProjection
	TeamID int
	Values [NumCategories]float64
	Total  float64
	Mod    float64
}

func (v PlayerValue) Value(c Category) float64 {
	return v.Values[c.Index()]
}

type SwapTrial struct {
	DropID      string
	DropName    string
	DropRank    int
	AddID       string
	AddName     string
	AddRank     int
	AddFromTeam int
	NewTotal    int
	TotalDelta  int
	RankDeltas  [NumCategories]int
	Buffer      *float64
	BufferDelta *float64
}

// Report is the result of one valuation run.
type Report struct {
	GeneratedAt time.Time
	MyTeamID    int
	Teams       []TeamInfo
	Standings   []TeamStandingLine
	Ranking     Ranking
	Baseline    TeamRank
	Buffer      Buffer
	Values      []PlayerValue
	Swaps       []SwapTrial
	Warnings    []string
}

func (r *Report) TeamName(teamID int) string {
	if teamID == FreeAgent {
		return "Free Agent"
	}
	for _, t := range r.Teams {
		if t.ID == teamID && t.Name != "" {
			return t.Name
		}
	}
	return "Unknown"
}

type WhoHasResult struct {
	PlayerName string
	TeamName   string
	TeamID     int
	Found      bool
	Position   string
	ProTeam    string
	Value      PlayerValue
}
