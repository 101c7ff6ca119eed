package roto

import (
	"math"
	"sort"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

// Rank computes ordinal standing points per category, 1 for the worst team
// and N for the best. Ties go to the lower team id. The total only counts
// scored categories; ratio parts never enter it.
func Rank(lines []models.TeamStandingLine) models.Ranking {
	ranks := make([]models.TeamRank, len(lines))
	for i, l := range lines {
		ranks[i].TeamID = l.TeamID
	}

	order := make([]int, len(lines))
	for ci, c := range models.Categories {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			va, vb := lines[order[a]].Value(c), lines[order[b]].Value(c)
			if va != vb {
				if c.HigherIsBetter {
					return va < vb
				}
				return va > vb
			}
			return lines[order[a]].TeamID > lines[order[b]].TeamID
		})
		for pos, idx := range order {
			ranks[idx].Ranks[ci] = pos + 1
			ranks[idx].Total += pos + 1
		}
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Total != ranks[b].Total {
			return ranks[a].Total > ranks[b].Total
		}
		return ranks[a].TeamID < ranks[b].TeamID
	})
	return models.Ranking{Teams: ranks}
}

// ComputeBuffer measures, for each of cats, how far teamID leads the team
// ranked immediately below it: 1 - next/mine, or 1 - mine/next when fewer is
// better. Min is the smallest lead across the categories that have one.
func ComputeBuffer(lines []models.TeamStandingLine, ranking models.Ranking, teamID int, cats []models.Category) models.Buffer {
	buf := models.Buffer{ByCategory: make(map[string]float64, len(cats))}

	mine, ok := ranking.Team(teamID)
	if !ok {
		return buf
	}
	lineOf := make(map[int]models.TeamStandingLine, len(lines))
	for _, l := range lines {
		lineOf[l.TeamID] = l
	}

	buf.Min = math.Inf(1)
	for _, c := range cats {
		r := mine.Rank(c)
		if r <= 1 {
			continue
		}
		var below *models.TeamRank
		for i := range ranking.Teams {
			if ranking.Teams[i].Rank(c) == r-1 {
				below = &ranking.Teams[i]
				break
			}
		}
		if below == nil {
			continue
		}

		myValue := lineOf[teamID].Value(c)
		nextValue := lineOf[below.TeamID].Value(c)

		var lead float64
		if c.HigherIsBetter {
			if myValue == 0 {
				continue
			}
			lead = 1 - nextValue/myValue
		} else {
			if nextValue == 0 {
				continue
			}
			lead = 1 - myValue/nextValue
		}

		buf.ByCategory[c.Key] = lead
		if lead < buf.Min {
			buf.Min = lead
			buf.HasMin = true
		}
	}
	if !buf.HasMin {
		buf.Min = 0
	}
	return buf
}
