package brdynamics

import (
	"fmt"

	"github.com/timpalpant/brdynamics/profile"
)

// Status is the result of one run of best-response dynamics.
type Status string

const (
	EquilibriumFound    Status = "EquilibriumFound"
	EquilibriumNotFound Status = "EquilibriumNotFound"
)

// GameOutcome records how one run of the dynamics terminated.
type GameOutcome struct {
	Status Status
	// Number of player evaluations, including one per restart.
	Iterations int
	// Number of strategy changes, including one per restart.
	Movements int
	Restarts  int
	// Profile is the equilibrium reached, or the last profile
	// visited if no equilibrium was found.
	Profile profile.Profile
}

func (o GameOutcome) String() string {
	return fmt.Sprintf("%s:iterations=%d:movements=%d:restarts=%d",
		o.Status, o.Iterations, o.Movements, o.Restarts)
}
