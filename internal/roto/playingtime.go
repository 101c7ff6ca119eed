package roto

import (
	"github.com/omarshaarawi/rotocoach/internal/models"
)

const (
	minMultiplier = 1.0
	maxMultiplier = 20.0

	bisectIterations = 60
	bisectTolerance  = 1e-9
)

// allotment is one rostered player's inputs to the playing-time model.
type allotment struct {
	pct   float64
	games float64
}

func simulatedGames(players []allotment, k float64) float64 {
	var total float64
	for _, p := range players {
		total += share(p.pct, k) * p.games
	}
	return total
}

func share(pct, k float64) float64 {
	s := k * pct
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// solveMultiplier finds k in [minMultiplier, maxMultiplier] so the scaled
// playing-time shares add up to target player-games. The simulated total is
// non-decreasing in k, so bisection on it minimizes |simulated - target|. When
// the target is outside what the bounds can reach the nearest bound is used.
func solveMultiplier(players []allotment, target float64) float64 {
	lo, hi := minMultiplier, maxMultiplier
	if simulatedGames(players, lo) >= target {
		return lo
	}
	if simulatedGames(players, hi) <= target {
		return hi
	}
	for i := 0; i < bisectIterations && hi-lo > bisectTolerance; i++ {
		mid := (lo + hi) / 2
		if simulatedGames(players, mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Shares returns each player's fraction of their projected games that the
// team actually plays them, keyed by player id.
func (a *Aggregator) Shares(players []models.PlayerProjection) map[string]float64 {
	shares := make(map[string]float64, len(players))
	if len(players) == 0 {
		return shares
	}

	allot := make([]allotment, len(players))
	for i, p := range players {
		allot[i] = allotment{pct: p.PlayingTimePct(a.RecentWindow), games: p.EffectiveGames()}
	}

	k := solveMultiplier(allot, a.targetGames())
	for i, p := range players {
		shares[p.ID] = share(allot[i].pct, k)
	}
	return shares
}
