package solvers_test

import (
	"math"
	"testing"

	"github.com/deltour/deltour/collect"
	"github.com/deltour/deltour/opt"
	"github.com/deltour/deltour/solvers"
	"github.com/deltour/deltour/tour"
)

// Driver instantiations under test, bound once so call sites stay readable.
// Binding both variants also proves every driver compiles against either
// implementation of the contract.
var (
	tourGreedy    = solvers.Greedy[*tour.Solution, tour.Component, tour.LocalMove]
	tourHeuristic = solvers.HeuristicConstruction[*tour.Solution, tour.Component, tour.LocalMove]
	tourBeam      = solvers.Beam[*tour.Solution, tour.Component, tour.LocalMove]
	tourGRASP     = solvers.GRASP[*tour.Solution, tour.Component, tour.LocalMove]
	tourAS        = solvers.AntSystem[*tour.Solution, tour.Component, tour.LocalMove]
	tourMMAS      = solvers.MaxMinAntSystem[*tour.Solution, tour.Component, tour.LocalMove]
	tourBI        = solvers.BestImprovement[*tour.Solution, tour.Component, tour.LocalMove]
	tourFI        = solvers.FirstImprovement[*tour.Solution, tour.Component, tour.LocalMove]
	tourRLS       = solvers.RandomLocalSearch[*tour.Solution, tour.Component, tour.LocalMove]
	tourILS       = solvers.ILS[*tour.Solution, tour.Component, tour.LocalMove]
	tourSA        = solvers.SimulatedAnnealing[*tour.Solution, tour.Component, tour.LocalMove]

	collectGreedy    = solvers.Greedy[*collect.Solution, collect.Component, collect.LocalMove]
	collectHeuristic = solvers.HeuristicConstruction[*collect.Solution, collect.Component, collect.LocalMove]
	collectBeam      = solvers.Beam[*collect.Solution, collect.Component, collect.LocalMove]
	collectGRASP     = solvers.GRASP[*collect.Solution, collect.Component, collect.LocalMove]
	collectAS        = solvers.AntSystem[*collect.Solution, collect.Component, collect.LocalMove]
	collectMMAS      = solvers.MaxMinAntSystem[*collect.Solution, collect.Component, collect.LocalMove]
	collectBI        = solvers.BestImprovement[*collect.Solution, collect.Component, collect.LocalMove]
	collectFI        = solvers.FirstImprovement[*collect.Solution, collect.Component, collect.LocalMove]
	collectRLS       = solvers.RandomLocalSearch[*collect.Solution, collect.Component, collect.LocalMove]
	collectILS       = solvers.ILS[*collect.Solution, collect.Component, collect.LocalMove]
	collectSA        = solvers.SimulatedAnnealing[*collect.Solution, collect.Component, collect.LocalMove]
)

// unitSquare is the 4-point instance whose optimal tour is the perimeter,
// length exactly 4. Every 2-opt local optimum on it is the optimum, so
// polished drivers must land on 4.0 exactly.
func unitSquare(t *testing.T) *tour.Problem {
	t.Helper()
	p, err := tour.NewProblem([]tour.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

// randomTour draws n points with one-decimal coordinates.
func randomTour(t *testing.T, n int, seed int64) *tour.Problem {
	t.Helper()
	rng := opt.RNGFromSeed(seed)
	points := make([]tour.Point, n)
	for i := range points {
		points[i].X = math.Floor(rng.Float64()*1000) / 10
		points[i].Y = math.Floor(rng.Float64()*1000) / 10
	}
	p, err := tour.NewProblem(points)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

// randomCollect builds an n-stop orientation instance with positive
// one-decimal costs.
func randomCollect(t *testing.T, n int, seed int64) *collect.Problem {
	t.Helper()
	rng := opt.RNGFromSeed(seed)
	cost := func() float64 { return math.Floor(rng.Float64()*900)/10 + 1 }

	var entry, exit [2][]float64
	for o := 0; o < 2; o++ {
		entry[o] = make([]float64, n)
		exit[o] = make([]float64, n)
		for i := 0; i < n; i++ {
			entry[o][i] = cost()
			exit[o][i] = cost()
		}
	}
	var pair [4][][]float64
	for k := 0; k < 4; k++ {
		pair[k] = make([][]float64, n)
		for i := 0; i < n; i++ {
			pair[k][i] = make([]float64, n)
			for j := 0; j < n; j++ {
				pair[k][i][j] = cost()
			}
		}
	}
	p, err := collect.NewProblem(entry, exit, pair)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

// closedRandomTour returns a feasible tour built by uniform random adds.
func closedRandomTour(t *testing.T, p *tour.Problem, seed int64) *tour.Solution {
	t.Helper()
	s := p.EmptySolution()
	rng := opt.RNGFromSeed(seed)
	for !s.IsFeasible() {
		var cs []tour.Component
		for c := range s.AddCandidates() {
			cs = append(cs, c)
		}
		if len(cs) == 0 {
			t.Fatalf("no candidates on an open path")
		}
		if err := s.Add(cs[rng.Intn(len(cs))]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return s
}

// completedCollect returns a feasible orientation solution built by uniform
// random adds.
func completedCollect(t *testing.T, p *collect.Problem, seed int64) *collect.Solution {
	t.Helper()
	s := p.EmptySolution()
	rng := opt.RNGFromSeed(seed)
	for !s.IsFeasible() {
		var cs []collect.Component
		for c := range s.AddCandidates() {
			cs = append(cs, c)
		}
		if len(cs) == 0 {
			t.Fatalf("no candidates on a partial solution")
		}
		if err := s.Add(cs[rng.Intn(len(cs))]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return s
}

// mustObjective unwraps a defined objective.
func mustObjective(t *testing.T, s interface{ Objective() (float64, bool) }) float64 {
	t.Helper()
	obj, ok := s.Objective()
	if !ok {
		t.Fatalf("objective undefined on a feasible solution")
	}
	return obj
}
