package solvers

import "errors"

var (
	// ErrBadOptions reports an Options field outside the range the driver
	// accepts (non-positive beam width, evaporation rate outside (0,1), ...).
	ErrBadOptions = errors.New("solvers: invalid options")

	// ErrNoSolution reports that a constructive driver exhausted its limits
	// without completing any feasible solution.
	ErrNoSolution = errors.New("solvers: no feasible solution found")

	// ErrNotFeasible reports a local-search driver invoked on a solution
	// that is still under construction.
	ErrNotFeasible = errors.New("solvers: local search requires a feasible solution")
)

// Polish is an optional local-search hook applied by restart-style drivers
// to every completed construction (GRASP iterations, ant generations).
// A nil Polish skips the step.
type Polish[S any] func(S) (S, error)
