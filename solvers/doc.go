// Package solvers implements metaheuristic drivers over the opt.Solution
// contract: constructive heuristics (Greedy, HeuristicConstruction, Beam,
// GRASP), ant-colony ensembles (AntSystem, MaxMinAntSystem) and local
// searches (BestImprovement, FirstImprovement, RandomLocalSearch, ILS,
// SimulatedAnnealing).
//
// Design:
//   - Drivers are generic over [S opt.Solution[S, C, M], C comparable, M any]
//     and never branch on the concrete problem behind the contract. Go does
//     not infer C and M from S alone, so call sites instantiate explicitly:
//
//       best, err := solvers.Beam[*tour.Solution, tour.Component, tour.LocalMove](s, opts)
//
//   - Knobs live in Options (value semantics; start from DefaultOptions and
//     override fields). Invalid knobs surface as ErrBadOptions; drivers never
//     panic on caller input.
//   - Time budgets are cooperative: drivers poll a wall-clock deadline
//     between move evaluations, sparsely in tight loops, so every operation
//     in between remains a finite synchronous computation.
//   - All randomness flows from Options.Seed through explicit generators.
//     Ensemble drivers derive one independent stream per member, which keeps
//     runs reproducible whether or not Options.Parallel is set.
//   - Local searches mutate the solution they are handed and return it;
//     restart-style drivers (GRASP, the ant systems) treat their input as an
//     immutable template and work on copies.
//
// Stopping:
//   - Greedy, HeuristicConstruction and Beam stop when construction cannot
//     continue; Beam additionally honors the budget.
//   - BestImprovement and FirstImprovement stop at a local optimum or when
//     the budget elapses, whichever comes first.
//   - GRASP, the ant systems, RandomLocalSearch, ILS and SimulatedAnnealing
//     have no natural fixed point and require a positive Budget or a
//     positive MaxIterations.
//
// Errors:
//   - ErrBadOptions  - an Options field is out of range for the driver.
//   - ErrNoSolution  - no feasible solution was found within the limits.
//   - ErrNotFeasible - a local-search driver was handed an open solution.
package solvers
