// Package tour - candidate enumeration and incremental 2-opt evaluation.
//
// The delta routines are pure and O(1): a 2-opt reversal under symmetric
// distance touches exactly two arcs, so its cost change is four lookups.
// Inputs must come from the path's own enumerators (or equal such values).
package tour

import (
	"iter"
	"math"
	"math/rand"

	"github.com/deltour/deltour/opt"
)

// AddCandidates enumerates the arcs that may extend the path: one per
// unused point (ascending) while any remain, then the single closing return
// to the start. Empty once the tour is closed.
func (s *Solution) AddCandidates() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		last := s.path[len(s.path)-1]
		switch {
		case len(s.path) < s.p.n:
			for v := 0; v < s.p.n; v++ {
				if s.used[v] {
					continue
				}
				if !yield(Component{From: last, To: v}) {
					return
				}
			}
		case len(s.path) == s.p.n:
			yield(Component{From: last, To: s.start})
		}
	}
}

// LocalMoveCandidates enumerates every 2-opt move on a closed tour:
// I ∈ [1, n], J ∈ [I+2, n], in deterministic order. Empty while the tour is
// not closed.
func (s *Solution) LocalMoveCandidates() iter.Seq[LocalMove] {
	return func(yield func(LocalMove) bool) {
		if !s.IsFeasible() {
			return
		}
		for i := 1; i < len(s.path); i++ {
			for j := i + 2; j < len(s.path); j++ {
				if !yield(LocalMove{I: i, J: j}) {
					return
				}
			}
		}
	}
}

// RandomLocalMovesWithoutReplacement enumerates exactly the
// LocalMoveCandidates multiset in randomized order: a lazy
// without-replacement stream over the index product, filtered to the valid
// wedge, so even quadratic neighborhoods are never materialized up front.
func (s *Solution) RandomLocalMovesWithoutReplacement(rng *rand.Rand) iter.Seq[LocalMove] {
	return func(yield func(LocalMove) bool) {
		if !s.IsFeasible() {
			return
		}
		l := len(s.path)
		for k := range opt.ShuffledIndices(l*l, rng) {
			i, j := k/l, k%l
			if i < 1 || j < i+2 {
				continue
			}
			if !yield(LocalMove{I: i, J: j}) {
				return
			}
		}
	}
}

// RandomLocalMove returns the first element of a fresh without-replacement
// stream. ok==false when the tour is not closed or too small to admit a
// move (fewer than 4 path entries).
func (s *Solution) RandomLocalMove(rng *rand.Rand) (LocalMove, bool) {
	for m := range s.RandomLocalMovesWithoutReplacement(rng) {
		return m, true
	}
	return LocalMove{}, false
}

// GreedyAddCandidate returns the arc to the nearest unused point (first
// seen winning ties, ascending scan), or the closing return once every
// point is on the path. ok==false when the tour is closed.
func (s *Solution) GreedyAddCandidate() (Component, bool) {
	last := s.path[len(s.path)-1]
	switch {
	case len(s.path) < s.p.n:
		var (
			best     = Component{}
			bestDist = math.Inf(1)
		)
		for v := 0; v < s.p.n; v++ {
			if s.used[v] {
				continue
			}
			if d := s.p.dist.At(last, v); d < bestDist {
				bestDist = d
				best = Component{From: last, To: v}
			}
		}
		return best, true
	case len(s.path) == s.p.n:
		return Component{From: last, To: s.start}, true
	}
	return Component{}, false
}

// DeltaForAdd returns the length of the single arc Add(c) would append.
func (s *Solution) DeltaForAdd(c Component) float64 {
	return s.p.dist.At(c.From, c.To)
}

// LowerBoundDeltaForAdd returns the change of the trivial bound caused by
// Add(c): the arc length while fresh points remain, exactly 0 for the
// closing return.
func (s *Solution) LowerBoundDeltaForAdd(c Component) float64 {
	if len(s.path)+1 <= s.p.n {
		return s.p.dist.At(c.From, c.To)
	}
	return 0
}

// DeltaForLocalMove returns the exact tour-length change Step(m) would
// cause: the two created boundary arcs minus the two destroyed ones.
// Pure; requires a closed tour and an enumerator-valid move.
func (s *Solution) DeltaForLocalMove(m LocalMove) float64 {
	d := s.p.dist
	return d.At(s.path[m.I-1], s.path[m.J-1]) +
		d.At(s.path[m.I], s.path[m.J]) -
		d.At(s.path[m.I-1], s.path[m.I]) -
		d.At(s.path[m.J-1], s.path[m.J])
}
