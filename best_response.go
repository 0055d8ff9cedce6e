package brdynamics

import (
	"github.com/timpalpant/brdynamics/profile"
)

// BestResponse decides whether player should switch strategy in profile p.
// With two strategies the best response is a single comparison: it
// returns the flipped profile and true iff switching strictly increases
// the player's payoff. Ties keep the current strategy.
func BestResponse(g *Game, p profile.Profile, player int) (profile.Profile, bool) {
	flipped := p.Flip(player)
	if g.Payoff(player, flipped) > g.Payoff(player, p) {
		return flipped, true
	}

	return p, false
}

// IsPureNash returns whether no player can strictly improve their
// payoff in profile p by unilaterally switching strategy.
func IsPureNash(g *Game, p profile.Profile) bool {
	for player := 0; player < g.NumPlayers(); player++ {
		if _, improves := BestResponse(g, p, player); improves {
			return false
		}
	}

	return true
}

// HasPureNash returns whether the game has at least one pure-strategy
// Nash equilibrium. It stops at the first one found.
func HasPureNash(g *Game) bool {
	for code := 0; code < g.NumProfiles(); code++ {
		if IsPureNash(g, profile.Profile(code)) {
			return true
		}
	}

	return false
}
