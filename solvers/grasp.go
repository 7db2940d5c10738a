// Package solvers - GRASP: greedy randomized construction with restarts.
package solvers

import (
	"fmt"
	"math"

	"github.com/deltour/deltour/opt"
)

// rclEntry pairs a construction candidate with its exact cost increase.
type rclEntry[C any] struct {
	comp  C
	delta float64
}

// GRASP repeats randomized greedy construction until the budget or
// iteration cap is hit, keeping the best completed solution. Each step
// draws uniformly from the restricted candidate list: every candidate whose
// cost increase is within Alpha of the greedy minimum, relative to the
// candidate spread. A non-nil polish is applied to every completed
// construction. s is treated as a read-only template.
//
// Uses Options: Alpha, Budget, MaxIterations, Seed, Logger.
func GRASP[S opt.Solution[S, C, M], C comparable, M any](s S, polish Polish[S], o Options) (S, error) {
	var zero S
	if o.Alpha < 0 || o.Alpha > 1 || math.IsNaN(o.Alpha) {
		return zero, fmt.Errorf("%w: alpha %v outside [0,1]", ErrBadOptions, o.Alpha)
	}
	if err := o.requireStop(); err != nil {
		return zero, err
	}

	var (
		rng   = opt.RNGFromSeed(o.Seed)
		clock = newBudgetClock(o.Budget)

		best    S
		bestObj float64
		have    bool

		entries []rclEntry[C] // reused across steps
		rcl     []int         // indices into entries
	)

	for restart := 0; o.MaxIterations == 0 || restart < o.MaxIterations; restart++ {
		if clock.now() {
			break
		}

		cand := s.Copy()
		for !cand.IsFeasible() {
			entries = entries[:0]
			cmin, cmax := math.Inf(1), math.Inf(-1)
			for c := range cand.AddCandidates() {
				d := cand.DeltaForAdd(c)
				entries = append(entries, rclEntry[C]{comp: c, delta: d})
				cmin = math.Min(cmin, d)
				cmax = math.Max(cmax, d)
			}
			if len(entries) == 0 {
				break // dead end; discard this construction
			}

			threshold := cmin + o.Alpha*(cmax-cmin)
			rcl = rcl[:0]
			for i := range entries {
				if entries[i].delta <= threshold {
					rcl = append(rcl, i)
				}
			}
			pick := entries[rcl[rng.Intn(len(rcl))]].comp
			if err := cand.Add(pick); err != nil {
				return zero, err
			}
		}
		if !cand.IsFeasible() {
			continue
		}

		if polish != nil {
			var err error
			if cand, err = polish(cand); err != nil {
				return zero, err
			}
		}
		if obj, ok := cand.Objective(); ok && (!have || obj < bestObj) {
			best, bestObj, have = cand, obj, true
			o.Logger.Debug().Int("restart", restart).Float64("objective", bestObj).Msg("grasp incumbent improved")
		}
	}

	if !have {
		return zero, ErrNoSolution
	}
	return best, nil
}
