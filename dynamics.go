package brdynamics

import (
	"github.com/golang/glog"

	"github.com/timpalpant/brdynamics/profile"
)

// State is the state of an Engine.
type State uint8

const (
	Running State = iota
	Converged
	Exhausted
)

var stateStr = [...]string{
	"Running",
	"Converged",
	"Exhausted",
}

func (s State) String() string {
	return stateStr[s]
}

// Engine runs best-response dynamics on a single game.
//
// Starting from the all-zero profile, the lowest-indexed player that has
// not yet agreed with the current profile is asked for its best response.
// When a switch leads back to a profile already visited in the current
// segment, the dynamics are cycling: the engine restarts from the smallest
// profile that has never been visited, or gives up once every profile has
// been visited. Since each restart visits a new profile, a run always
// terminates.
type Engine struct {
	game  *Game
	state State

	current   profile.Profile
	agreement []bool
	nAgreeing int
	visited   *profile.Registry

	iterations   int
	movements    int
	cycleLengths []int
}

func NewEngine(g *Game) *Engine {
	var start profile.Profile
	return &Engine{
		game:      g,
		state:     Running,
		current:   start,
		agreement: make([]bool, g.NumPlayers()),
		visited:   profile.NewRegistry(g.NumPlayers(), start),
	}
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Profile() profile.Profile {
	return e.current
}

// NumVisited returns the number of distinct profiles visited so far.
func (e *Engine) NumVisited() int {
	return e.visited.NumVisited()
}

// CycleLengths returns the length of the segment trajectory at each
// cycle detected so far.
func (e *Engine) CycleLengths() []int {
	return e.cycleLengths
}

// NextPlayer returns the lowest-indexed player that does not yet agree
// with the current profile, or -1 if all players agree.
func (e *Engine) NextPlayer() int {
	for player, agrees := range e.agreement {
		if !agrees {
			return player
		}
	}

	return -1
}

// Step performs one best-response update. It is a no-op once the
// engine has terminated.
func (e *Engine) Step() State {
	if e.state != Running {
		return e.state
	}

	player := e.NextPlayer()
	e.iterations++
	next, switched := BestResponse(e.game, e.current, player)
	if !switched {
		e.agree(player)
	} else {
		e.resetAgreement()
		e.agree(player)
		e.current = next
		e.movements++

		if e.visited.Append(next) {
			e.visited.MarkVisited(next)
		} else {
			e.onCycle()
		}
	}

	if e.state == Running && e.nAgreeing == len(e.agreement) {
		e.state = Converged
	}

	return e.state
}

func (e *Engine) onCycle() {
	segmentLen := len(e.visited.Segment())
	e.cycleLengths = append(e.cycleLengths, segmentLen)
	restart, ok := e.visited.SmallestUnvisited()
	if !ok {
		glog.V(2).Infof("Cycle of length %d at %v, all %d profiles visited",
			segmentLen, e.current.Format(e.game.NumPlayers()), e.game.NumProfiles())
		e.state = Exhausted
		return
	}

	glog.V(2).Infof("Cycle of length %d at %v, restarting from %v (%d of %d profiles visited)",
		segmentLen, e.current.Format(e.game.NumPlayers()), restart.Format(e.game.NumPlayers()),
		e.visited.NumVisited(), e.game.NumProfiles())
	e.visited.Restart(restart)
	e.current = restart
	e.resetAgreement()
	e.iterations++
	e.movements++
}

func (e *Engine) agree(player int) {
	if !e.agreement[player] {
		e.agreement[player] = true
		e.nAgreeing++
	}
}

func (e *Engine) resetAgreement() {
	for i := range e.agreement {
		e.agreement[i] = false
	}
	e.nAgreeing = 0
}

// Run steps the engine until it terminates and returns the outcome.
func (e *Engine) Run() GameOutcome {
	for e.state == Running {
		e.Step()
	}

	return e.Outcome()
}

// Outcome summarizes the run so far.
func (e *Engine) Outcome() GameOutcome {
	status := EquilibriumNotFound
	if e.state == Converged {
		status = EquilibriumFound
	}

	return GameOutcome{
		Status:     status,
		Iterations: e.iterations,
		Movements:  e.movements,
		Restarts:   len(e.cycleLengths) - btoi(e.state == Exhausted),
		Profile:    e.current,
	}
}

// RunSingleGame runs best-response dynamics on g to completion.
func RunSingleGame(g *Game) GameOutcome {
	return NewEngine(g).Run()
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
