// Package solvers - simulated annealing over the random-move stream.
package solvers

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"

	"github.com/deltour/deltour/opt"
)

// saEpochLen is the number of proposals between cooling steps.
const saEpochLen = 256

// saCalibrationSample caps the number of moves sampled when deriving the
// initial temperature.
const saCalibrationSample = 64

// calibrateTemperature derives a start temperature from the mean absolute
// delta of a sampled move population, scaled so a mean-magnitude uphill
// move is accepted with probability 1/2. Returns 0 when the solution
// admits no moves or every sampled delta is 0.
func calibrateTemperature[S opt.Solution[S, C, M], C comparable, M any](s S, rng *rand.Rand) float64 {
	var deltas []float64
	for m := range s.RandomLocalMovesWithoutReplacement(rng) {
		deltas = append(deltas, math.Abs(s.DeltaForLocalMove(m)))
		if len(deltas) == saCalibrationSample {
			break
		}
	}
	if len(deltas) == 0 {
		return 0
	}
	mean, err := stats.Mean(deltas)
	if err != nil || mean <= 0 {
		return 0
	}
	return mean / math.Ln2
}

// SimulatedAnnealing runs a Metropolis walk on random moves: improving
// moves are always applied, worsening moves with probability
// exp(-delta/T). The temperature cools geometrically by CoolingRate every
// saEpochLen proposals, starting from InitialTemperature or, when that is
// 0, from an auto-calibrated value. Mutates s in place; returns the best
// solution visited, not the final state of the walk.
//
// Uses Options: Budget, MaxIterations (cooling epochs), Seed,
// InitialTemperature, CoolingRate, Logger.
func SimulatedAnnealing[S opt.Solution[S, C, M], C comparable, M any](s S, o Options) (S, error) {
	if !s.IsFeasible() {
		return s, ErrNotFeasible
	}
	if o.CoolingRate <= 0 || o.CoolingRate >= 1 {
		return s, fmt.Errorf("%w: cooling rate %v outside (0,1)", ErrBadOptions, o.CoolingRate)
	}
	if o.InitialTemperature < 0 || math.IsNaN(o.InitialTemperature) {
		return s, fmt.Errorf("%w: initial temperature %v", ErrBadOptions, o.InitialTemperature)
	}
	if err := o.requireStop(); err != nil {
		return s, err
	}

	rng := opt.RNGFromSeed(o.Seed)
	clock := newBudgetClock(o.Budget)

	temp := o.InitialTemperature
	if temp == 0 {
		temp = calibrateTemperature[S, C, M](s, opt.DeriveRNG(rng, 0))
		o.Logger.Debug().Float64("temperature", temp).Msg("sa temperature calibrated")
	}

	best := s.Copy()
	bestObj, _ := best.Objective()
	curObj := bestObj

	for epoch := 0; o.MaxIterations == 0 || epoch < o.MaxIterations; epoch++ {
		for proposal := 0; proposal < saEpochLen; proposal++ {
			if clock.sparse() {
				return best, nil
			}
			m, ok := s.RandomLocalMove(rng)
			if !ok {
				return best, nil
			}
			delta := s.DeltaForLocalMove(m)
			if delta > 0 && rng.Float64() >= math.Exp(-delta/temp) {
				continue
			}
			if err := s.Step(m); err != nil {
				return best, err
			}
			curObj += delta
			if curObj < bestObj {
				best, bestObj = s.Copy(), curObj
				o.Logger.Debug().Int("epoch", epoch).Float64("objective", bestObj).Msg("sa incumbent improved")
			}
		}
		temp *= o.CoolingRate
		if clock.now() {
			break
		}
	}
	return best, nil
}
