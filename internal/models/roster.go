package models

import "sort"

// FreeAgent is the team id of unrostered players.
const FreeAgent = 0

// Assignment answers which team a player belongs to.
type Assignment interface {
	TeamOf(playerID string) int
}

// Roster maps player id to team id. Players missing from the map are free
// agents.
type Roster map[string]int

func (r Roster) TeamOf(playerID string) int {
	return r[playerID]
}

// Players returns the ids on a team, sorted.
func (r Roster) Players(teamID int) []string {
	var ids []string
	for id, t := range r {
		if t == teamID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// TeamIDs returns every non free-agent team id present, sorted.
func (r Roster) TeamIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, t := range r {
		if t == FreeAgent || seen[t] {
			continue
		}
		seen[t] = true
		ids = append(ids, t)
	}
	sort.Ints(ids)
	return ids
}

func (r Roster) Clone() Roster {
	c := make(Roster, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Move reassigns one player.
type Move struct {
	PlayerID string
	ToTeam   int
}

// Overlay is a roster seen through a set of hypothetical moves. The base
// roster is never written to.
type Overlay struct {
	Base  Assignment
	Moves []Move
}

func (o Overlay) TeamOf(playerID string) int {
	for i := len(o.Moves) - 1; i >= 0; i-- {
		if o.Moves[i].PlayerID == playerID {
			return o.Moves[i].ToTeam
		}
	}
	return o.Base.TeamOf(playerID)
}
