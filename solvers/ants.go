// Package solvers - ant-colony ensembles: AntSystem and MaxMinAntSystem.
//
// Both drivers share one pheromone trail keyed by Component. Construction
// follows the classic roulette rule: a candidate is drawn with probability
// proportional to tau(c) * (1/cost)^Beta, with the pheromone of unseen
// components read as the scheme's default (Tau0, or TauMax for MMAS).
// Evaporation touches only materialized trail entries, matching the
// map-backed bookkeeping the rule set is defined on.
package solvers

import (
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/deltour/deltour/opt"
)

// etaFloor bounds the heuristic desirability 1/cost when a candidate's
// cost increase is zero or negative.
const etaFloor = 1e-9

// rouletteIndex draws an index with probability proportional to its
// weight. Falls back to a uniform draw when the mass is degenerate.
func rouletteIndex(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 || math.IsInf(total, 1) || math.IsNaN(total) {
		return rng.Intn(len(weights))
	}
	u := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}

// runAnt builds one complete solution from a copy of seed, sampling each
// extension by pheromone times heuristic desirability.
func runAnt[S opt.Solution[S, C, M], C comparable, M any](seed S, tau map[C]float64, tauDefault, beta float64, rng *rand.Rand) (S, error) {
	ant := seed.Copy()
	var (
		cands   []C
		weights []float64
	)
	for !ant.IsFeasible() {
		cands, weights = cands[:0], weights[:0]
		total := 0.0
		for c := range ant.AddCandidates() {
			eta := 1.0 / math.Max(ant.DeltaForAdd(c), etaFloor)
			t, seen := tau[c]
			if !seen {
				t = tauDefault
			}
			w := t * math.Pow(eta, beta)
			cands = append(cands, c)
			weights = append(weights, w)
			total += w
		}
		if len(cands) == 0 {
			return ant, fmt.Errorf("%w: ant construction stalled", ErrNoSolution)
		}
		if err := ant.Add(cands[rouletteIndex(weights, total, rng)]); err != nil {
			return ant, err
		}
	}
	return ant, nil
}

// buildGeneration constructs one ant per seed into ants, sequentially or
// in parallel per Options.Parallel. Per-ant generators are derived from
// genRNG in seed order first, so both modes consume the stream identically
// and produce the same generation.
func buildGeneration[S opt.Solution[S, C, M], C comparable, M any](seeds, ants []S, tau map[C]float64, tauDefault float64, o Options, genRNG *rand.Rand) error {
	rngs := make([]*rand.Rand, len(seeds))
	for i := range seeds {
		rngs[i] = opt.DeriveRNG(genRNG, uint64(i))
	}
	if !o.Parallel {
		for i := range seeds {
			ant, err := runAnt[S, C, M](seeds[i], tau, tauDefault, o.Beta, rngs[i])
			if err != nil {
				return err
			}
			ants[i] = ant
		}
		return nil
	}

	// Trail reads are safe concurrently: no deposit happens mid-generation.
	g := new(errgroup.Group)
	for i := range seeds {
		g.Go(func() error {
			ant, err := runAnt[S, C, M](seeds[i], tau, tauDefault, o.Beta, rngs[i])
			if err != nil {
				return err
			}
			ants[i] = ant
			return nil
		})
	}
	return g.Wait()
}

// depositOn adds amount to every component of s, reading unseen entries as
// tauDefault first.
func depositOn[S opt.Solution[S, C, M], C comparable, M any](tau map[C]float64, s S, tauDefault, amount float64) {
	for c := range s.Components() {
		t, seen := tau[c]
		if !seen {
			t = tauDefault
		}
		tau[c] = t + amount
	}
}

// AntSystem runs the classic ant system over one immutable problem: every
// generation each seed builds a solution, all completed solutions deposit
// 1/objective on their components after a global evaporation by Rho. A
// non-nil polish is applied to every ant before tracking and deposit.
// The seeds are treated as read-only templates, one per desired start.
//
// Uses Options: Budget, MaxIterations (generations), Seed, Beta, Rho,
// Tau0, Parallel, Logger.
func AntSystem[S opt.Solution[S, C, M], C comparable, M any](seeds []S, polish Polish[S], o Options) (S, error) {
	var zero S
	if len(seeds) == 0 {
		return zero, fmt.Errorf("%w: no seed solutions", ErrBadOptions)
	}
	if o.Beta < 0 || math.IsNaN(o.Beta) {
		return zero, fmt.Errorf("%w: beta %v", ErrBadOptions, o.Beta)
	}
	if o.Rho <= 0 || o.Rho >= 1 {
		return zero, fmt.Errorf("%w: evaporation rate %v outside (0,1)", ErrBadOptions, o.Rho)
	}
	if o.Tau0 <= 0 {
		return zero, fmt.Errorf("%w: tau0 %v", ErrBadOptions, o.Tau0)
	}
	if err := o.requireStop(); err != nil {
		return zero, err
	}

	var (
		root  = opt.RNGFromSeed(o.Seed)
		clock = newBudgetClock(o.Budget)
		tau   = make(map[C]float64)
		ants  = make([]S, len(seeds))

		best    S
		bestObj float64
		have    bool
	)

	for gen := 0; o.MaxIterations == 0 || gen < o.MaxIterations; gen++ {
		if clock.now() {
			break
		}
		genRNG := opt.DeriveRNG(root, uint64(gen))
		if err := buildGeneration[S, C, M](seeds, ants, tau, o.Tau0, o, genRNG); err != nil {
			return zero, err
		}
		if polish != nil {
			for i := range ants {
				polished, err := polish(ants[i])
				if err != nil {
					return zero, err
				}
				ants[i] = polished
			}
		}

		for k := range tau {
			tau[k] *= 1 - o.Rho
		}
		for _, ant := range ants {
			obj, ok := ant.Objective()
			if !ok || obj <= 0 {
				continue
			}
			depositOn[S, C, M](tau, ant, o.Tau0, 1/obj)
			if !have || obj < bestObj {
				best, bestObj, have = ant, obj, true
				o.Logger.Debug().Int("generation", gen).Float64("objective", bestObj).Msg("ant-system incumbent improved")
			}
		}
	}

	if !have {
		return zero, ErrNoSolution
	}
	return best, nil
}

// MaxMinAntSystem runs the max-min variant: only one solution deposits per
// generation (the global best with probability GlobalRatio, the iteration
// best otherwise) and the trail is clamped into [TauMax/(2*len(seeds)),
// TauMax] after every update, with unseen entries starting at TauMax.
//
// Uses Options: Budget, MaxIterations (generations), Seed, Beta, Rho,
// TauMax, GlobalRatio, Parallel, Logger.
func MaxMinAntSystem[S opt.Solution[S, C, M], C comparable, M any](seeds []S, polish Polish[S], o Options) (S, error) {
	var zero S
	if len(seeds) == 0 {
		return zero, fmt.Errorf("%w: no seed solutions", ErrBadOptions)
	}
	if o.Beta < 0 || math.IsNaN(o.Beta) {
		return zero, fmt.Errorf("%w: beta %v", ErrBadOptions, o.Beta)
	}
	if o.Rho <= 0 || o.Rho >= 1 {
		return zero, fmt.Errorf("%w: evaporation rate %v outside (0,1)", ErrBadOptions, o.Rho)
	}
	if o.TauMax <= 0 {
		return zero, fmt.Errorf("%w: tau max %v", ErrBadOptions, o.TauMax)
	}
	if o.GlobalRatio < 0 || o.GlobalRatio > 1 || math.IsNaN(o.GlobalRatio) {
		return zero, fmt.Errorf("%w: global ratio %v outside [0,1]", ErrBadOptions, o.GlobalRatio)
	}
	if err := o.requireStop(); err != nil {
		return zero, err
	}

	var (
		root   = opt.RNGFromSeed(o.Seed)
		clock  = newBudgetClock(o.Budget)
		tau    = make(map[C]float64)
		ants   = make([]S, len(seeds))
		tauMin = o.TauMax / (2 * float64(len(seeds)))

		best    S
		bestObj float64
		have    bool
	)

	for gen := 0; o.MaxIterations == 0 || gen < o.MaxIterations; gen++ {
		if clock.now() {
			break
		}
		genRNG := opt.DeriveRNG(root, uint64(gen))
		if err := buildGeneration[S, C, M](seeds, ants, tau, o.TauMax, o, genRNG); err != nil {
			return zero, err
		}
		if polish != nil {
			for i := range ants {
				polished, err := polish(ants[i])
				if err != nil {
					return zero, err
				}
				ants[i] = polished
			}
		}

		var (
			genBest    S
			genBestObj float64
			genHave    bool
		)
		for _, ant := range ants {
			obj, ok := ant.Objective()
			if !ok || obj <= 0 {
				continue
			}
			if !genHave || obj < genBestObj {
				genBest, genBestObj, genHave = ant, obj, true
			}
			if !have || obj < bestObj {
				best, bestObj, have = ant, obj, true
				o.Logger.Debug().Int("generation", gen).Float64("objective", bestObj).Msg("max-min incumbent improved")
			}
		}

		for k := range tau {
			tau[k] *= 1 - o.Rho
		}
		if genHave {
			depositor, depositObj := genBest, genBestObj
			if genRNG.Float64() < o.GlobalRatio {
				depositor, depositObj = best, bestObj
			}
			depositOn[S, C, M](tau, depositor, o.TauMax, 1/depositObj)
		}
		for k, v := range tau {
			if v < tauMin {
				tau[k] = tauMin
			} else if v > o.TauMax {
				tau[k] = o.TauMax
			}
		}
	}

	if !have {
		return zero, ErrNoSolution
	}
	return best, nil
}
