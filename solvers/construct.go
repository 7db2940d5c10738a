// Package solvers - constructive drivers: pure greedy, the solution's own
// construction heuristic, and bound-ordered beam search.
package solvers

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/deltour/deltour/opt"
)

// Greedy completes s by repeatedly appending the candidate with the
// smallest exact cost increase. Mutates s in place and returns it.
//
// Complexity: O(n * |candidates|) delta evaluations.
func Greedy[S opt.Solution[S, C, M], C comparable, M any](s S) (S, error) {
	for !s.IsFeasible() {
		var (
			best      C
			bestDelta = math.Inf(1)
			found     bool
		)
		for c := range s.AddCandidates() {
			if d := s.DeltaForAdd(c); d < bestDelta {
				best, bestDelta, found = c, d, true
			}
		}
		if !found {
			return s, fmt.Errorf("%w: construction stalled", ErrNoSolution)
		}
		if err := s.Add(best); err != nil {
			return s, err
		}
	}
	return s, nil
}

// HeuristicConstruction completes s by repeatedly applying the solution's
// own greedy selector. Mutates s in place and returns it.
//
// Complexity: one GreedyAddCandidate scan per appended component.
func HeuristicConstruction[S opt.Solution[S, C, M], C comparable, M any](s S) (S, error) {
	for !s.IsFeasible() {
		c, ok := s.GreedyAddCandidate()
		if !ok {
			return s, fmt.Errorf("%w: construction stalled", ErrNoSolution)
		}
		if err := s.Add(c); err != nil {
			return s, err
		}
	}
	return s, nil
}

// beamNode is one retained partial solution with its admissible bound.
type beamNode[S any] struct {
	bound float64
	sol   S
}

// beamChild defers the copy: children are ranked as (parent, component)
// pairs and only the BeamWidth survivors are materialized.
type beamChild[S any, C any] struct {
	bound  float64
	parent S
	comp   C
}

// Beam runs level-synchronous beam search: every level expands each
// retained partial solution by all candidates, ranks children by
// bound-after-add, and keeps the best Options.BeamWidth of them. Solutions
// that complete are compared against the incumbent and leave the beam.
// s is treated as a read-only template.
//
// Uses Options: BeamWidth, Budget, Logger.
//
// Complexity: O(n) levels; per level O(width * |candidates|) bound
// evaluations plus a sort of the children.
func Beam[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	var zero S
	if o.BeamWidth < 1 {
		return zero, fmt.Errorf("%w: beam width %d", ErrBadOptions, o.BeamWidth)
	}
	clock := newBudgetClock(o.Budget)

	var (
		best    S
		bestObj float64
		have    bool
	)
	if s.IsFeasible() {
		if obj, ok := s.Objective(); ok {
			best, bestObj, have = s.Copy(), obj, true
		}
	}

	var level []beamNode[S]
	if !s.IsFeasible() {
		lb, ok := s.LowerBound()
		if !ok {
			return zero, fmt.Errorf("%w: no bound on the root", ErrNoSolution)
		}
		level = append(level, beamNode[S]{bound: lb, sol: s})
	}

	var children []beamChild[S, C]
	for len(level) > 0 {
		if clock.now() {
			break
		}
		children = children[:0]
		for _, node := range level {
			for c := range node.sol.AddCandidates() {
				children = append(children, beamChild[S, C]{
					bound:  node.bound + node.sol.LowerBoundDeltaForAdd(c),
					parent: node.sol,
					comp:   c,
				})
			}
		}
		if len(children) == 0 {
			break
		}
		slices.SortStableFunc(children, func(a, b beamChild[S, C]) int {
			return cmp.Compare(a.bound, b.bound)
		})

		width := min(o.BeamWidth, len(children))
		level = level[:0]
		for _, ch := range children[:width] {
			ns := ch.parent.Copy()
			if err := ns.Add(ch.comp); err != nil {
				return zero, err
			}
			if !ns.IsFeasible() {
				level = append(level, beamNode[S]{bound: ch.bound, sol: ns})
				continue
			}
			if obj, ok := ns.Objective(); ok && (!have || obj < bestObj) {
				best, bestObj, have = ns, obj, true
				o.Logger.Debug().Float64("objective", bestObj).Msg("beam incumbent improved")
			}
		}
	}

	if !have {
		return zero, ErrNoSolution
	}
	return best, nil
}
