// Package solvers - descent local searches and the iterated variant.
package solvers

import (
	"fmt"
	"math/rand"

	"github.com/deltour/deltour/opt"
)

// descendFirst drives s to a local optimum by first-improvement: scan a
// fresh without-replacement stream, apply the first strictly improving
// move, rescan. Stops early when the clock expires.
func descendFirst[S opt.Solution[S, C, M], C comparable, M any](s S, rng *rand.Rand, clock *budgetClock) error {
	for {
		improved := false
		for m := range s.RandomLocalMovesWithoutReplacement(rng) {
			if clock.sparse() {
				return nil
			}
			if s.DeltaForLocalMove(m) < 0 {
				if err := s.Step(m); err != nil {
					return err
				}
				improved = true
				break
			}
		}
		if !improved || clock.now() {
			return nil
		}
	}
}

// BestImprovement repeatedly applies the single best strictly improving
// move until none exists or the budget elapses. Mutates s in place and
// returns it. Deterministic: scan order is the exhaustive enumerator's.
//
// Uses Options: Budget, Logger.
//
// Complexity: O(|moves|) delta evaluations per applied move.
func BestImprovement[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	if !s.IsFeasible() {
		return s, ErrNotFeasible
	}
	clock := newBudgetClock(o.Budget)

	for {
		var (
			best      M
			bestDelta float64
			found     bool
		)
		for m := range s.LocalMoveCandidates() {
			if clock.sparse() {
				return s, nil
			}
			if d := s.DeltaForLocalMove(m); !found || d < bestDelta {
				best, bestDelta, found = m, d, true
			}
		}
		if !found || bestDelta >= 0 {
			return s, nil // local optimum
		}
		if err := s.Step(best); err != nil {
			return s, err
		}
		if obj, ok := s.Objective(); ok {
			o.Logger.Debug().Float64("objective", obj).Msg("best-improvement step")
		}
		if clock.now() {
			return s, nil
		}
	}
}

// FirstImprovement applies the first strictly improving move found on a
// randomized without-replacement scan, rescanning after every step, until
// a full scan finds none or the budget elapses. Mutates s in place and
// returns it.
//
// Uses Options: Budget, Seed.
func FirstImprovement[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	if !s.IsFeasible() {
		return s, ErrNotFeasible
	}
	rng := opt.RNGFromSeed(o.Seed)
	clock := newBudgetClock(o.Budget)
	return s, descendFirst[S, C, M](s, rng, clock)
}

// RandomLocalSearch draws random moves and applies every non-worsening one
// until the budget or proposal cap is hit. Mutates s in place and returns
// it. Accepting zero-delta moves lets the walk drift across plateaus.
//
// Uses Options: Budget, MaxIterations, Seed.
func RandomLocalSearch[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	if !s.IsFeasible() {
		return s, ErrNotFeasible
	}
	if err := o.requireStop(); err != nil {
		return s, err
	}
	rng := opt.RNGFromSeed(o.Seed)
	clock := newBudgetClock(o.Budget)

	for proposal := 0; o.MaxIterations == 0 || proposal < o.MaxIterations; proposal++ {
		if clock.sparse() {
			break
		}
		m, ok := s.RandomLocalMove(rng)
		if !ok {
			break
		}
		if s.DeltaForLocalMove(m) <= 0 {
			if err := s.Step(m); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// ILS is iterated local search: descend to a local optimum, then repeat
// kick-and-descend from the incumbent, keeping strict improvements. The
// kick applies PerturbStrength random moves. Mutates s during the initial
// descent; the returned solution may be a different instance.
//
// Uses Options: Budget, MaxIterations, Seed, PerturbStrength, Logger.
func ILS[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	if !s.IsFeasible() {
		return s, ErrNotFeasible
	}
	if o.PerturbStrength < 1 {
		return s, fmt.Errorf("%w: perturb strength %d", ErrBadOptions, o.PerturbStrength)
	}
	if err := o.requireStop(); err != nil {
		return s, err
	}
	rng := opt.RNGFromSeed(o.Seed)
	clock := newBudgetClock(o.Budget)

	if err := descendFirst[S, C, M](s, rng, clock); err != nil {
		return s, err
	}
	best := s
	bestObj, _ := best.Objective()

	for kick := 0; o.MaxIterations == 0 || kick < o.MaxIterations; kick++ {
		if clock.now() {
			break
		}
		cand := best.Copy()
		if err := cand.Perturb(rng, o.PerturbStrength); err != nil {
			return best, err
		}
		if err := descendFirst[S, C, M](cand, rng, clock); err != nil {
			return best, err
		}
		if obj, ok := cand.Objective(); ok && obj < bestObj {
			best, bestObj = cand, obj
			o.Logger.Debug().Int("kick", kick).Float64("objective", bestObj).Msg("ils incumbent improved")
		}
	}
	return best, nil
}
