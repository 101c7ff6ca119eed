package models

type LeagueResponse struct {
	ID              int      `json:"id"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	SeasonID        int      `json:"seasonId"`
	Status          Status   `json:"status"`
	Teams           []Team   `json:"teams"`
	Settings        Settings `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	IsActive bool `json:"isActive"`
}

type Team struct {
	ID           int                `json:"id"`
	Abbreviation string             `json:"abbrev"`
	Name         string             `json:"name"`
	Location     string             `json:"location"`
	Nickname     string             `json:"nickname"`
	Roster       RosterPayload      `json:"roster"`
	ValuesByStat map[string]float64 `json:"valuesByStat"`
}

// RosterPayload is the ESPN roster body. The engine works on Roster.
type RosterPayload struct {
	Entries []ESPNRosterEntry `json:"entries"`
}

type ESPNRosterEntry struct {
	PlayerID        int             `json:"playerId"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID       int    `json:"id"`
	OnTeamID int    `json:"onTeamId"`
	Player   Player `json:"player"`
}

type Player struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	InjuryStatus      string `json:"injuryStatus"`
}
