package profile

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Registry tracks the profiles visited during one run of best-response
// dynamics. It keeps two views:
//
//   - the global set of every profile visited since the run began, which
//     only grows and is used to choose restart points, and
//   - the trajectory of the current segment (since the last restart),
//     which is used only to detect a repeat within that segment.
type Registry struct {
	nProfiles uint
	global    *bitset.BitSet
	nGlobal   int

	segment   []Profile
	inSegment *bitset.BitSet
}

// NewRegistry returns a Registry for an n-player game whose run
// begins at the given profile.
func NewRegistry(nPlayers int, start Profile) *Registry {
	n := uint(NumProfiles(nPlayers))
	r := &Registry{
		nProfiles: n,
		global:    bitset.New(n),
		inSegment: bitset.New(n),
	}

	r.Restart(start)
	return r
}

// NumVisited returns the number of distinct profiles visited so far.
func (r *Registry) NumVisited() int {
	return r.nGlobal
}

// Exhausted returns whether every profile of the game has been visited.
func (r *Registry) Exhausted() bool {
	return r.nGlobal >= int(r.nProfiles)
}

// Visited returns whether p was visited at any point during the run.
func (r *Registry) Visited(p Profile) bool {
	return r.global.Test(uint(p))
}

// MarkVisited adds p to the global visited set.
func (r *Registry) MarkVisited(p Profile) {
	if !r.global.Test(uint(p)) {
		r.global.Set(uint(p))
		r.nGlobal++
	}
}

// InSegment returns whether p has been visited since the last restart.
func (r *Registry) InSegment(p Profile) bool {
	return r.inSegment.Test(uint(p))
}

// Append records p as the next profile of the current segment.
// It returns false, leaving the segment unchanged, if p already
// occurs in the segment.
func (r *Registry) Append(p Profile) bool {
	if r.inSegment.Test(uint(p)) {
		return false
	}

	r.segment = append(r.segment, p)
	r.inSegment.Set(uint(p))
	return true
}

// Segment returns the trajectory of the current segment.
// The returned slice must not be modified.
func (r *Registry) Segment() []Profile {
	return r.segment
}

// SmallestUnvisited returns the smallest profile not yet visited.
// ok is false if all profiles have been visited.
func (r *Registry) SmallestUnvisited() (p Profile, ok bool) {
	if r.Exhausted() {
		return 0, false
	}

	i, ok := r.global.NextClear(0)
	if !ok || i >= r.nProfiles {
		return 0, false
	}

	return Profile(i), true
}

// Restart discards the current segment and begins a new one at p,
// which is also marked as globally visited.
func (r *Registry) Restart(p Profile) {
	if uint(p) >= r.nProfiles {
		panic(fmt.Errorf("profile %d out of range [0, %d)", p, r.nProfiles))
	}

	for _, q := range r.segment {
		r.inSegment.Clear(uint(q))
	}
	r.segment = append(r.segment[:0], p)
	r.inSegment.Set(uint(p))
	r.MarkVisited(p)
}
