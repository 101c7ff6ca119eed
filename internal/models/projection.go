package models

// FullGameMinutes is the length of a regulation game.
const FullGameMinutes = 48.0

type PlayerProjection struct {
	ID             string
	Name           string
	ExternalID     string
	Position       string
	ProTeam        string
	Rank           int
	Rates          StatLine
	GamesToPlay    float64
	GamesOverride  float64
	MinutesPerGame float64
	RecentMinutes  float64
	RecentGames    float64
}

// EffectiveGames is the manual override when one is set, the projected
// games-to-play otherwise.
func (p PlayerProjection) EffectiveGames() float64 {
	if p.GamesOverride > 0 {
		return p.GamesOverride
	}
	if p.GamesToPlay < 0 {
		return 0
	}
	return p.GamesToPlay
}

// Totals scales per-game rates to rest-of-season totals.
func (p PlayerProjection) Totals() StatLine {
	games := p.EffectiveGames()
	if games == 0 {
		return StatLine{}
	}
	return p.Rates.Scale(games)
}

// RecencyWeight is recent games over the window length, clipped to [0,1].
func (p PlayerProjection) RecencyWeight(window float64) float64 {
	if window <= 0 || p.RecentGames <= 0 {
		return 0
	}
	return clamp(p.RecentGames/window, 0, 1)
}

// EffectiveMinutes blends the long-run minutes projection with the recent
// trailing-window average.
func (p PlayerProjection) EffectiveMinutes(window float64) float64 {
	w := p.RecencyWeight(window)
	if w == 0 {
		return p.MinutesPerGame
	}
	recent := p.RecentMinutes / p.RecentGames
	return w*recent + (1-w)*p.MinutesPerGame
}

// PlayingTimePct is the share of a full game the player is expected to be on
// the floor, clipped to [0,1].
func (p PlayerProjection) PlayingTimePct(window float64) float64 {
	return clamp(p.EffectiveMinutes(window)/FullGameMinutes, 0, 1)
}

// ShootingPct is the player's effective percentage for a ratio category.
func (p PlayerProjection) ShootingPct(c Category) float64 {
	return c.Value(p.Rates)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
