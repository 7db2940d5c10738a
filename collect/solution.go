// Package collect - mutable route state and its mutators.
//
// Design notes shared by the methods below:
//
//   - accumulated covers the entry transition plus every stop→stop
//     transition of the current sequence. The exit transition to the
//     disposal site is intentionally excluded: it is owed by whichever stop
//     is last *right now*, so Objective adds it on demand and local moves
//     that change the last position account for it in their objective delta
//     without writing it into accumulated.
//   - visited is a dense bool set; enumeration over it is always ascending
//     by stop index, which keeps runs reproducible under a fixed seed.
package collect

import (
	"fmt"
	"io"
	"iter"
	"math"
	"math/rand"

	"github.com/deltour/deltour/opt"
)

// verifyTol is the absolute/relative tolerance used by Verify when
// comparing the incremental accumulated cost against recomputation.
const verifyTol = 1e-9

// Solution is a mutable route under construction or local search. Not safe
// for concurrent use; copies are independent and share only the Problem.
type Solution struct {
	p        *Problem
	stops    []int   // serviced stops in visiting order
	orients  []uint8 // orientation of stops[k], parallel to stops
	visited  []bool  // visited[s] ⇔ s appears in stops
	nVisited int
	acc      float64 // entry + inter-stop transitions of the current sequence
}

// Compile-time check that *Solution satisfies the driver contract.
var _ opt.Solution[*Solution, Component, LocalMove] = (*Solution)(nil)

// at returns the component currently occupying position pos.
func (s *Solution) at(pos int) Component {
	return Component{Stop: s.stops[pos], Orient: s.orients[pos]}
}

// Copy returns an independent deep copy sharing only the Problem.
func (s *Solution) Copy() *Solution {
	cp := &Solution{
		p:        s.p,
		stops:    append(make([]int, 0, s.p.n), s.stops...),
		orients:  append(make([]uint8, 0, s.p.n), s.orients...),
		visited:  append([]bool(nil), s.visited...),
		nVisited: s.nVisited,
		acc:      s.acc,
	}
	return cp
}

// IsFeasible reports whether every stop is serviced.
func (s *Solution) IsFeasible() bool { return s.nVisited == s.p.n }

// NumUnvisited returns how many stops still need servicing.
func (s *Solution) NumUnvisited() int { return s.p.n - s.nVisited }

// Objective returns entry + inter-stop transitions + the exit transition of
// the current last stop. Undefined (ok==false) until the route is complete.
func (s *Solution) Objective() (float64, bool) {
	if !s.IsFeasible() {
		return 0, false
	}
	return s.acc + s.p.ExitCost(s.at(s.p.n - 1)), true
}

// LowerBound returns accumulated cost plus the remaining-work relaxation of
// bound.go. Undefined (ok==false) once the route is complete: the exact
// objective is available instead.
func (s *Solution) LowerBound() (float64, bool) {
	if s.IsFeasible() {
		return 0, false
	}
	return s.acc + s.remainderBound(-1), true
}

// Add appends component c, paying exactly one new transition: the entry
// cost when the route is empty, the pair cost from the current last stop
// otherwise.
func (s *Solution) Add(c Component) error {
	if !s.p.validComponent(c) {
		return fmt.Errorf("%w: stop %d orient %d (n=%d)", ErrBadComponent, c.Stop, c.Orient, s.p.n)
	}
	if s.IsFeasible() {
		return ErrSolutionComplete
	}
	if s.visited[c.Stop] {
		return fmt.Errorf("%w: stop %d", ErrStopVisited, c.Stop)
	}

	s.acc += s.DeltaForAdd(c)
	s.stops = append(s.stops, c.Stop)
	s.orients = append(s.orients, c.Orient)
	s.visited[c.Stop] = true
	s.nVisited++
	return nil
}

// Step applies a swap-with-reorientation move to a complete route and
// updates the accumulated cost from the changed boundary transitions alone.
func (s *Solution) Step(m LocalMove) error {
	if !s.IsFeasible() {
		return ErrSolutionNotComplete
	}
	if m.I < 0 || m.J >= s.p.n || m.I > m.J || m.OrientI > 1 || m.OrientJ > 1 {
		return fmt.Errorf("%w: (%d,%d,%d,%d) with n=%d", ErrBadLocalMove, m.I, m.J, m.OrientI, m.OrientJ, s.p.n)
	}

	_, accDelta := s.moveDeltas(m)
	s.stops[m.I], s.stops[m.J] = s.stops[m.J], s.stops[m.I]
	s.orients[m.I] = m.OrientI
	s.orients[m.J] = m.OrientJ // for I == J the later assignment lands
	s.acc += accDelta
	return nil
}

// Perturb applies strength random moves, the kick used by iterated local
// search. Valid only on complete routes.
func (s *Solution) Perturb(rng *rand.Rand, strength int) error {
	if !s.IsFeasible() {
		return ErrSolutionNotComplete
	}
	for k := 0; k < strength; k++ {
		m, ok := s.RandomLocalMove(rng)
		if !ok {
			return nil
		}
		if err := s.Step(m); err != nil {
			return err
		}
	}
	return nil
}

// Components enumerates the components of the current sequence in visiting
// order. Lazy and freshly restartable per call.
func (s *Solution) Components() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for k := range s.stops {
			if !yield(s.at(k)) {
				return
			}
		}
	}
}

// Verify recomputes membership and accumulated cost from scratch and
// reports any divergence from the incremental state. Nil means consistent.
func (s *Solution) Verify() error {
	n := s.p.n
	if len(s.stops) != len(s.orients) {
		return fmt.Errorf("%w: %d stops vs %d orientations", ErrInconsistent, len(s.stops), len(s.orients))
	}
	if len(s.stops) != s.nVisited {
		return fmt.Errorf("%w: sequence length %d vs visited count %d", ErrInconsistent, len(s.stops), s.nVisited)
	}

	seen := make([]bool, n)
	for k, stop := range s.stops {
		if stop < 0 || stop >= n {
			return fmt.Errorf("%w: position %d holds stop %d (n=%d)", ErrInconsistent, k, stop, n)
		}
		if seen[stop] {
			return fmt.Errorf("%w: stop %d appears twice", ErrInconsistent, stop)
		}
		if s.orients[k] > 1 {
			return fmt.Errorf("%w: position %d holds orientation %d", ErrInconsistent, k, s.orients[k])
		}
		seen[stop] = true
	}
	for stop := 0; stop < n; stop++ {
		if seen[stop] != s.visited[stop] {
			return fmt.Errorf("%w: visited[%d]=%v but sequence says %v", ErrInconsistent, stop, s.visited[stop], seen[stop])
		}
	}

	var want float64
	prev := Depot
	for k := range s.stops {
		want += s.p.TransitionCost(prev, s.at(k))
		prev = s.at(k)
	}
	if diff := math.Abs(want - s.acc); diff > verifyTol*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("%w: accumulated %v vs recomputed %v", ErrInconsistent, s.acc, want)
	}
	return nil
}

// Output writes the route as one "<stop+1> <orientation>" line per serviced
// stop, in visiting order.
func (s *Solution) Output(w io.Writer) error {
	for k := range s.stops {
		if _, err := fmt.Fprintf(w, "%d %d\n", s.stops[k]+1, s.orients[k]); err != nil {
			return err
		}
	}
	return nil
}
