// Package tour - mutable path state and its mutators.
//
// accumulated covers every arc currently in the path, including the closing
// return once it has been added; there is no deferred terminal cost in this
// variant, so Objective is the accumulated length itself once the tour is
// closed.
package tour

import (
	"fmt"
	"io"
	"iter"
	"math"
	"math/rand"
	"slices"

	"github.com/deltour/deltour/opt"
)

// verifyTol is the absolute/relative tolerance used by Verify when
// comparing the incremental accumulated length against recomputation.
const verifyTol = 1e-9

// Solution is a path under construction or 2-opt local search. Not safe for
// concurrent use; copies are independent and share only the Problem.
type Solution struct {
	p     *Problem
	start int
	path  []int  // visited points; path[0] == start, closed when len == n+1
	used  []bool // used[v] ⇔ v appears in path (start counted once)
	acc   float64
}

// Compile-time check that *Solution satisfies the driver contract.
var _ opt.Solution[*Solution, Component, LocalMove] = (*Solution)(nil)

// Start returns the anchor point of this path.
func (s *Solution) Start() int { return s.start }

// NumUnvisited returns how many points are not yet on the path. The closing
// return does not count: once every point is used it reports 0 even though
// one Add (the closing arc) may remain.
func (s *Solution) NumUnvisited() int {
	if len(s.path) >= s.p.n {
		return 0
	}
	return s.p.n - len(s.path)
}

// Copy returns an independent deep copy sharing only the Problem.
func (s *Solution) Copy() *Solution {
	return &Solution{
		p:     s.p,
		start: s.start,
		path:  append(make([]int, 0, s.p.n+1), s.path...),
		used:  append([]bool(nil), s.used...),
		acc:   s.acc,
	}
}

// IsFeasible reports whether the tour is closed: every point visited and
// the return arc added.
func (s *Solution) IsFeasible() bool { return len(s.path) == s.p.n+1 }

// Objective returns the closed tour length. Undefined (ok==false) until the
// closing arc is in place.
func (s *Solution) Objective() (float64, bool) {
	if !s.IsFeasible() {
		return 0, false
	}
	return s.acc, true
}

// LowerBound returns the accumulated length of the partial path, the
// trivial bound of this variant with no lookahead. Undefined (ok==false)
// once the tour is closed: the exact objective is available instead.
func (s *Solution) LowerBound() (float64, bool) {
	if s.IsFeasible() {
		return 0, false
	}
	return s.acc, true
}

// Add appends the arc c to the path: a fresh point while any remain, then
// the single closing return to the start.
func (s *Solution) Add(c Component) error {
	if s.IsFeasible() {
		return ErrSolutionComplete
	}
	if c.To < 0 || c.To >= s.p.n || c.From != s.path[len(s.path)-1] {
		return fmt.Errorf("%w: %+v after point %d", ErrBadComponent, c, s.path[len(s.path)-1])
	}
	closing := len(s.path) == s.p.n
	if closing {
		if c.To != s.start {
			return fmt.Errorf("%w: closing arc must return to start %d, got %d", ErrPointVisited, s.start, c.To)
		}
	} else if s.used[c.To] {
		return fmt.Errorf("%w: point %d", ErrPointVisited, c.To)
	}

	s.path = append(s.path, c.To)
	s.used[c.To] = true
	s.acc += s.p.dist.At(c.From, c.To)
	return nil
}

// Step reverses path[I:J) and updates the accumulated length from the two
// boundary arcs alone.
func (s *Solution) Step(m LocalMove) error {
	if !s.IsFeasible() {
		return ErrSolutionNotComplete
	}
	if m.I < 1 || m.J > s.p.n || m.J < m.I+2 {
		return fmt.Errorf("%w: (%d,%d) with n=%d", ErrBadLocalMove, m.I, m.J, s.p.n)
	}

	d := s.p.dist
	s.acc -= d.At(s.path[m.I-1], s.path[m.I])
	s.acc -= d.At(s.path[m.J-1], s.path[m.J])
	slices.Reverse(s.path[m.I:m.J])
	s.acc += d.At(s.path[m.I-1], s.path[m.I])
	s.acc += d.At(s.path[m.J-1], s.path[m.J])
	return nil
}

// Perturb applies strength random 2-opt moves, the kick used by iterated
// local search. Valid only on closed tours.
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

// Components enumerates the arcs of the current path in order, the closing
// return included once present. Lazy and freshly restartable per call.
func (s *Solution) Components() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for k := 1; k < len(s.path); k++ {
			if !yield(Component{From: s.path[k-1], To: s.path[k]}) {
				return
			}
		}
	}
}

// Verify recomputes membership and accumulated length from scratch and
// reports any divergence from the incremental state. Nil means consistent.
func (s *Solution) Verify() error {
	n := s.p.n
	if len(s.path) == 0 || s.path[0] != s.start {
		return fmt.Errorf("%w: path does not begin at start %d", ErrInconsistent, s.start)
	}
	if len(s.path) > n+1 {
		return fmt.Errorf("%w: path length %d exceeds n+1=%d", ErrInconsistent, len(s.path), n+1)
	}
	if s.IsFeasible() && s.path[n] != s.start {
		return fmt.Errorf("%w: closed tour ends at %d, not start %d", ErrInconsistent, s.path[n], s.start)
	}

	// Every point at most once, except the closing duplicate of the start.
	limit := len(s.path)
	if s.IsFeasible() {
		limit = n
	}
	seen := make([]bool, n)
	for k := 0; k < limit; k++ {
		v := s.path[k]
		if v < 0 || v >= n {
			return fmt.Errorf("%w: position %d holds point %d (n=%d)", ErrInconsistent, k, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: point %d appears twice", ErrInconsistent, v)
		}
		seen[v] = true
	}
	for v := 0; v < n; v++ {
		if seen[v] != s.used[v] {
			return fmt.Errorf("%w: used[%d]=%v but path says %v", ErrInconsistent, v, s.used[v], seen[v])
		}
	}

	var want float64
	for k := 1; k < len(s.path); k++ {
		want += s.p.dist.At(s.path[k-1], s.path[k])
	}
	if diff := math.Abs(want - s.acc); diff > verifyTol*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("%w: accumulated %v vs recomputed %v", ErrInconsistent, s.acc, want)
	}
	return nil
}

// Output writes the visited point indices one per line in visiting order,
// omitting the trailing duplicate of the start on a closed tour.
func (s *Solution) Output(w io.Writer) error {
	limit := len(s.path)
	if s.IsFeasible() {
		limit = s.p.n
	}
	for k := 0; k < limit; k++ {
		if _, err := fmt.Fprintf(w, "%d\n", s.path[k]); err != nil {
			return err
		}
	}
	return nil
}
