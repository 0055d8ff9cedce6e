package profile

import (
	"strings"
)

// Profile is a pure strategy profile for a game in which every player
// has two strategies. Bit i of the Profile is the strategy (0 or 1)
// chosen by player i, so a Profile of an n-player game is a dense
// integer code in [0, 2^n).
type Profile uint64

// NumProfiles returns the number of distinct profiles of an n-player game.
func NumProfiles(nPlayers int) int {
	return 1 << uint(nPlayers)
}

// Encode packs the given strategies (one per player) into a Profile.
func Encode(strategies []bool) Profile {
	var p Profile
	for i, s := range strategies {
		if s {
			p |= 1 << uint(i)
		}
	}

	return p
}

// Decode unpacks the strategies of the first nPlayers players.
func Decode(p Profile, nPlayers int) []bool {
	result := make([]bool, nPlayers)
	for i := range result {
		result[i] = p.Strategy(i) == 1
	}

	return result
}

// Strategy returns the strategy (0 or 1) of the given player.
func (p Profile) Strategy(player int) int {
	return int((p >> uint(player)) & 1)
}

// Flip returns the profile in which only the given player has switched
// strategy. Flip is its own inverse.
func (p Profile) Flip(player int) Profile {
	return p ^ (1 << uint(player))
}

// Format renders the strategies of the first nPlayers players,
// player 0 first, e.g. "(0,1,1)".
func (p Profile) Format(nPlayers int) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < nPlayers; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(byte('0' + p.Strategy(i)))
	}
	sb.WriteByte(')')
	return sb.String()
}
