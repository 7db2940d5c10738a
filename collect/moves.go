// Package collect - candidate enumeration and incremental move evaluation.
//
// Contracts shared by the delta routines:
//
//   - Pure: no method here mutates the route; Add/Step commit separately.
//   - O(1): every delta is a fixed number of table lookups. Only the
//     transitions bordering the touched positions are evaluated, never the
//     whole sequence.
//   - Inputs must come from the route's own enumerators (or equal such
//     values); descriptors that were never enumerable have unspecified,
//     state-preserving results.
package collect

import (
	"iter"
	"math"
	"math/rand"

	"github.com/deltour/deltour/opt"
)

// AddCandidates enumerates every (unvisited stop, orientation) extension,
// stops ascending, orientation 0 before 1. Empty once the route is
// complete.
func (s *Solution) AddCandidates() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for stop := 0; stop < s.p.n; stop++ {
			if s.visited[stop] {
				continue
			}
			if !yield(Component{Stop: stop, Orient: 0}) {
				return
			}
			if !yield(Component{Stop: stop, Orient: 1}) {
				return
			}
		}
	}
}

// LocalMoveCandidates enumerates the full neighborhood of a complete route:
// every position pair i ≤ j under all four orientation-pair assignments, in
// deterministic order. Empty while the route is not complete.
func (s *Solution) LocalMoveCandidates() iter.Seq[LocalMove] {
	return func(yield func(LocalMove) bool) {
		if !s.IsFeasible() {
			return
		}
		n := s.p.n
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				for _, d := range orientPairs {
					if !yield(LocalMove{I: i, J: j, OrientI: d[0], OrientJ: d[1]}) {
						return
					}
				}
			}
		}
	}
}

// RandomLocalMovesWithoutReplacement enumerates exactly the
// LocalMoveCandidates multiset in randomized order. The three axes are
// shuffled independently (outer positions once, inner positions per outer,
// orientation pairs per index pair): every move appears exactly once, but
// the overall order is not a uniform draw over the flattened move space.
func (s *Solution) RandomLocalMovesWithoutReplacement(rng *rand.Rand) iter.Seq[LocalMove] {
	return func(yield func(LocalMove) bool) {
		if !s.IsFeasible() {
			return
		}
		r := rng
		if r == nil {
			r = opt.RNGFromSeed(0)
		}

		var (
			n     = s.p.n
			outer = opt.Perm(n, r)
			inner = make([]int, 0, n)
			dirs  = make([]int, 4)
		)
		for _, i := range outer {
			inner = inner[:0]
			for j := i; j < n; j++ {
				inner = append(inner, j)
			}
			opt.ShuffleInts(inner, r)
			for _, j := range inner {
				dirs[0], dirs[1], dirs[2], dirs[3] = 0, 1, 2, 3
				opt.ShuffleInts(dirs, r)
				for _, d := range dirs {
					dp := orientPairs[d]
					if !yield(LocalMove{I: i, J: j, OrientI: dp[0], OrientJ: dp[1]}) {
						return
					}
				}
			}
		}
	}
}

// RandomLocalMove returns the first element of a fresh without-replacement
// stream. ok==false only while the route is not complete.
func (s *Solution) RandomLocalMove(rng *rand.Rand) (LocalMove, bool) {
	for m := range s.RandomLocalMovesWithoutReplacement(rng) {
		return m, true
	}
	return LocalMove{}, false
}

// GreedyAddCandidate returns the extension with the cheapest immediate
// transition cost, scanning stops ascending and orientation 0 before 1 with
// first-seen winning ties. ok==false once the route is complete.
func (s *Solution) GreedyAddCandidate() (Component, bool) {
	if s.IsFeasible() {
		return Component{}, false
	}
	var (
		best     Component
		bestCost = math.Inf(1)
	)
	for c := range s.AddCandidates() {
		if cost := s.DeltaForAdd(c); cost < bestCost {
			bestCost = cost
			best = c
		}
	}
	return best, true
}

// DeltaForAdd returns the cost of the single transition Add(c) would
// create: entry for the first stop, pair cost from the current last stop
// otherwise.
func (s *Solution) DeltaForAdd(c Component) float64 {
	if len(s.stops) == 0 {
		return s.p.EntryCost(c)
	}
	return s.p.PairCost(s.at(len(s.stops)-1), c)
}

// LowerBoundDeltaForAdd returns the change of LowerBound caused by
// hypothetically applying Add(c): the new accumulated cost plus the
// relaxation over the shrunken unvisited set, minus the current bound.
// Exactly 0 when c is the only unvisited stop left.
func (s *Solution) LowerBoundDeltaForAdd(c Component) float64 {
	if s.p.n-s.nVisited == 1 {
		return 0
	}
	newAcc := s.acc + s.DeltaForAdd(c)
	cur, _ := s.LowerBound()
	return newAcc + s.remainderBound(c.Stop) - cur
}

// DeltaForLocalMove returns the exact objective change Step(m) would cause,
// including any change of the exit transition when the last position is
// touched. Pure; requires a complete route and an enumerator-valid move.
func (s *Solution) DeltaForLocalMove(m LocalMove) float64 {
	objDelta, _ := s.moveDeltas(m)
	return objDelta
}

// moveDeltas evaluates m against the current complete route and returns the
// objective delta (exit transition included) and the accumulated-cost delta
// (exit transition excluded, since accumulated never contains it).
//
// Only transitions bordering positions I and J change. Three shapes:
// I == J rewrites one position (two transitions), J == I+1 swaps neighbors
// (three transitions, the shared middle one counted once), J ≥ I+2 swaps
// distant positions (four transitions).
func (s *Solution) moveDeltas(m LocalMove) (objDelta, accDelta float64) {
	var (
		last               = s.p.n - 1
		destroyed, created float64 // non-exit transitions
		oldExit, newExit   float64
	)

	switch {
	case m.I == m.J:
		cur := s.at(m.I)
		upd := Component{Stop: cur.Stop, Orient: m.OrientJ} // later assignment lands
		destroyed = s.inCost(m.I, cur)
		created = s.inCost(m.I, upd)
		if m.I == last {
			oldExit = s.p.ExitCost(cur)
			newExit = s.p.ExitCost(upd)
		} else {
			destroyed += s.p.PairCost(cur, s.at(m.I+1))
			created += s.p.PairCost(upd, s.at(m.I+1))
		}

	case m.J == m.I+1:
		a, b := s.at(m.I), s.at(m.J)
		na := Component{Stop: b.Stop, Orient: m.OrientI}
		nb := Component{Stop: a.Stop, Orient: m.OrientJ}
		destroyed = s.inCost(m.I, a) + s.p.PairCost(a, b)
		created = s.inCost(m.I, na) + s.p.PairCost(na, nb)
		if m.J == last {
			oldExit = s.p.ExitCost(b)
			newExit = s.p.ExitCost(nb)
		} else {
			destroyed += s.p.PairCost(b, s.at(m.J+1))
			created += s.p.PairCost(nb, s.at(m.J+1))
		}

	default:
		a, b := s.at(m.I), s.at(m.J)
		na := Component{Stop: b.Stop, Orient: m.OrientI}
		nb := Component{Stop: a.Stop, Orient: m.OrientJ}
		destroyed = s.inCost(m.I, a) + s.p.PairCost(a, s.at(m.I+1)) + s.p.PairCost(s.at(m.J-1), b)
		created = s.inCost(m.I, na) + s.p.PairCost(na, s.at(m.I+1)) + s.p.PairCost(s.at(m.J-1), nb)
		if m.J == last {
			oldExit = s.p.ExitCost(b)
			newExit = s.p.ExitCost(nb)
		} else {
			destroyed += s.p.PairCost(b, s.at(m.J+1))
			created += s.p.PairCost(nb, s.at(m.J+1))
		}
	}

	accDelta = created - destroyed
	objDelta = accDelta + (newExit - oldExit)
	return objDelta, accDelta
}

// inCost is the cost of the transition entering position pos when occupied
// by c: entry cost at position 0, pair cost from the (unchanged)
// predecessor otherwise.
func (s *Solution) inCost(pos int, c Component) float64 {
	if pos == 0 {
		return s.p.EntryCost(c)
	}
	return s.p.PairCost(s.at(pos-1), c)
}
