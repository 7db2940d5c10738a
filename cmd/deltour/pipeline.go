package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/deltour/deltour/opt"
	"github.com/deltour/deltour/solvers"
)

// graspPolishBudget caps each first-improvement pass applied to a finished
// restart; restarts themselves are bounded by -cbudget.
const graspPolishBudget = 100 * time.Millisecond

// pipeline binds one problem variant to the generic drivers. The closed-tour
// variant polishes grasp restarts and finished ants with a short
// first-improvement descent; the oriented-sequencing variant runs them bare.
type pipeline[S interface {
	opt.Solution[S, C, M]
	Output(w io.Writer) error
}, C comparable, M any] struct {
	template S                  // open solution the constructive phase starts from
	antSeeds func() ([]S, error) // start ensemble for the ant drivers, built on demand
	polished bool
}

func (pl pipeline[S, C, M]) run(cfg Config, params Params, logger zerolog.Logger, out io.Writer) error {
	start := time.Now()

	s := pl.template
	if cfg.CSearch != "none" {
		built, err := pl.construct(cfg.CSearch, params.solverOptions(cfg.CBudget, cfg.Seed, logger))
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.CSearch, err)
		}
		s = built
	}
	if cfg.LSearch != "none" {
		improved, err := pl.improve(s, cfg.LSearch, params.solverOptions(cfg.LBudget, cfg.Seed, logger))
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.LSearch, err)
		}
		s = improved
	}

	elapsed := time.Since(start)

	if err := s.Output(out); err != nil {
		return err
	}
	if obj, ok := s.Objective(); ok {
		logger.Info().Msgf("Objective: %.3f", obj)
	} else {
		logger.Info().Msg("Objective: none")
	}
	logger.Info().Msgf("Elapsed solving time: %.4f", elapsed.Seconds())

	if cfg.Verify {
		if err := s.Verify(); err != nil {
			return err
		}
		logger.Debug().Msg("verify passed")
	}
	return nil
}

func (pl pipeline[S, C, M]) construct(name string, o solvers.Options) (S, error) {
	switch name {
	case "greedy":
		return solvers.Greedy[S, C, M](pl.template)
	case "heuristic":
		return solvers.HeuristicConstruction[S, C, M](pl.template)
	case "beam":
		return solvers.Beam[S, C, M](pl.template, o)
	case "grasp":
		return solvers.GRASP[S, C, M](pl.template, pl.polish(graspPolishBudget, o.Seed), o)
	case "as":
		seeds, err := pl.antSeeds()
		if err != nil {
			var zero S
			return zero, err
		}
		return solvers.AntSystem[S, C, M](seeds, pl.polish(antPolishBudget(len(seeds)), o.Seed), o)
	case "mmas":
		seeds, err := pl.antSeeds()
		if err != nil {
			var zero S
			return zero, err
		}
		return solvers.MaxMinAntSystem[S, C, M](seeds, pl.polish(antPolishBudget(len(seeds)), o.Seed), o)
	}
	var zero S
	return zero, fmt.Errorf("unknown constructive search %q", name)
}

func (pl pipeline[S, C, M]) improve(s S, name string, o solvers.Options) (S, error) {
	switch name {
	case "bi":
		return solvers.BestImprovement[S, C, M](s, o)
	case "fi":
		return solvers.FirstImprovement[S, C, M](s, o)
	case "ils":
		return solvers.ILS[S, C, M](s, o)
	case "rls":
		return solvers.RandomLocalSearch[S, C, M](s, o)
	case "sa":
		return solvers.SimulatedAnnealing[S, C, M](s, o)
	}
	return s, fmt.Errorf("unknown local search %q", name)
}

// polish returns the first-improvement hook handed to grasp and the ant
// drivers, or nil for variants that run them bare.
func (pl pipeline[S, C, M]) polish(budget time.Duration, seed int64) solvers.Polish[S] {
	if !pl.polished {
		return nil
	}
	o := solvers.DefaultOptions()
	o.Budget = budget
	o.Seed = seed
	return func(s S) (S, error) {
		return solvers.FirstImprovement[S, C, M](s, o)
	}
}

// antPolishBudget splits one second of descent across the colony, so bigger
// ensembles spend less per ant.
func antPolishBudget(ants int) time.Duration {
	return time.Second / time.Duration(ants)
}
