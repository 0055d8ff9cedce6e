// Package brdynamics simulates best-response dynamics on random n-player
// normal-form games in which every player has two strategies.
package brdynamics

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/brdynamics/profile"
)

// NumStrategies is the number of strategies available to each player.
const NumStrategies = 2

// MaxPlayers bounds the size of a game. A game with n players holds
// n * 2^n payoffs, so 20 players is already ~160MB of payoffs.
const MaxPlayers = 20

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrResourceLimit   = errors.New("resource limit exceeded")
)

// Game is a normal-form game with binary strategies. It is immutable
// once created and safe to share between goroutines.
type Game struct {
	nPlayers  int
	nProfiles int
	// payoffs[player*nProfiles + profile] is the payoff to player.
	payoffs []float64
}

// NewRandomGame creates a game whose payoffs are drawn i.i.d. from
// Uniform[0, 1). Payoffs are drawn player by player, and for each
// player in increasing profile order.
func NewRandomGame(rng *rand.Rand, nPlayers, nStrategies int) (*Game, error) {
	if err := validateSize(nPlayers, nStrategies); err != nil {
		return nil, err
	}

	nProfiles := profile.NumProfiles(nPlayers)
	payoffs := make([]float64, nPlayers*nProfiles)
	for i := range payoffs {
		payoffs[i] = rng.Float64()
	}

	return &Game{
		nPlayers:  nPlayers,
		nProfiles: nProfiles,
		payoffs:   payoffs,
	}, nil
}

// NewGame creates a game from an explicit payoff table, where
// payoffs[player][p] is the payoff to player under profile p.
func NewGame(nPlayers int, payoffs [][]float64) (*Game, error) {
	if err := validateSize(nPlayers, NumStrategies); err != nil {
		return nil, err
	}

	if len(payoffs) != nPlayers {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"payoff table has %d players, expected %d", len(payoffs), nPlayers)
	}

	nProfiles := profile.NumProfiles(nPlayers)
	flat := make([]float64, 0, nPlayers*nProfiles)
	for player, row := range payoffs {
		if len(row) != nProfiles {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"player %d has %d payoffs, expected %d", player, len(row), nProfiles)
		}

		flat = append(flat, row...)
	}

	return &Game{
		nPlayers:  nPlayers,
		nProfiles: nProfiles,
		payoffs:   flat,
	}, nil
}

func validateSize(nPlayers, nStrategies int) error {
	if nPlayers < 1 {
		return errors.Wrapf(ErrInvalidArgument, "number of players must be positive, got %d", nPlayers)
	}

	if nStrategies != NumStrategies {
		return errors.Wrapf(ErrInvalidArgument, "only %d strategies per player are supported, got %d",
			NumStrategies, nStrategies)
	}

	if nPlayers > MaxPlayers {
		return errors.Wrapf(ErrResourceLimit, "%d players exceeds maximum of %d", nPlayers, MaxPlayers)
	}

	return nil
}

func (g *Game) NumPlayers() int {
	return g.nPlayers
}

// NumProfiles returns the number of pure strategy profiles, 2^n.
func (g *Game) NumProfiles() int {
	return g.nProfiles
}

// Payoff returns the payoff to player when profile p is played.
func (g *Game) Payoff(player int, p profile.Profile) float64 {
	return g.payoffs[player*g.nProfiles+int(p)]
}
