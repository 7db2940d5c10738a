// Package collect_test - property tests for the incremental evaluation
// engine: deltas against full recomputation, enumeration completeness, and
// bound behavior.
package collect_test

import (
	"math"
	"testing"

	"github.com/deltour/deltour/collect"
	"github.com/deltour/deltour/opt"
)

// -----------------------------------------------------------------------------
// 1) DeltaForLocalMove equals copy-apply-recompute over the whole
//    neighborhood, covering I==J, adjacent, distant and boundary positions.
// -----------------------------------------------------------------------------

func TestDeltaForLocalMove_MatchesRecomputation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6} {
		for seed := int64(1); seed <= 3; seed++ {
			p := randomProblem(t, n, seed)
			rng := opt.RNGFromSeed(seed)
			s := completeRandomly(t, p, rng)
			before, _ := s.Objective()

			moves := 0
			for m := range s.LocalMoveCandidates() {
				delta := s.DeltaForLocalMove(m)
				cp := s.Copy()
				if err := cp.Step(m); err != nil {
					t.Fatalf("n=%d seed=%d Step(%+v): %v", n, seed, m, err)
				}
				if err := cp.Verify(); err != nil {
					t.Fatalf("n=%d seed=%d Verify after %+v: %v", n, seed, m, err)
				}
				after, ok := cp.Objective()
				if !ok {
					t.Fatalf("n=%d seed=%d objective undefined after %+v", n, seed, m)
				}
				if want := after - before; !close9(delta, want) {
					t.Fatalf("n=%d seed=%d move %+v: delta %v, recomputed %v", n, seed, m, delta, want)
				}
				moves++
			}
			if want := n * (n + 1) / 2 * 4; moves != want {
				t.Fatalf("n=%d: enumerated %d moves, want %d", n, moves, want)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// 2) A burst of random steps keeps the accumulated cost in lock-step.
// -----------------------------------------------------------------------------

func TestStep_BurstStaysConsistent(t *testing.T) {
	p := randomProblem(t, 7, seedDet)
	rng := opt.RNGFromSeed(seedDet)
	s := completeRandomly(t, p, rng)

	for k := 0; k < 64; k++ {
		m, ok := s.RandomLocalMove(rng)
		if !ok {
			t.Fatalf("no move available at step %d", k)
		}
		delta := s.DeltaForLocalMove(m)
		before, _ := s.Objective()
		if err := s.Step(m); err != nil {
			t.Fatalf("Step(%+v): %v", m, err)
		}
		after, _ := s.Objective()
		if !close9(after-before, delta) {
			t.Fatalf("step %d: objective moved by %v, delta said %v", k, after-before, delta)
		}
		if err := s.Verify(); err != nil {
			t.Fatalf("step %d: %v", k, err)
		}
	}
	obj, _ := s.Objective()
	if want := routeCost(t, p, s); !close9(obj, want) {
		t.Fatalf("objective %v diverged from recomputation %v after burst", obj, want)
	}
}

// -----------------------------------------------------------------------------
// 3) DeltaForAdd equals the accumulated-cost increase of the actual Add.
// -----------------------------------------------------------------------------

func TestDeltaForAdd_MatchesAccumulation(t *testing.T) {
	p := randomProblem(t, 6, seedDet)
	rng := opt.RNGFromSeed(seedDet)
	s := p.EmptySolution()

	var want float64
	for !s.IsFeasible() {
		var cands []collect.Component
		for c := range s.AddCandidates() {
			cands = append(cands, c)
		}
		c := cands[rng.Intn(len(cands))]
		want += s.DeltaForAdd(c)
		if err := s.Add(c); err != nil {
			t.Fatalf("Add(%v): %v", c, err)
		}
	}

	obj, _ := s.Objective()
	var last collect.Component
	for c := range s.Components() {
		last = c
	}
	if got := want + p.ExitCost(last); !close9(obj, got) {
		t.Fatalf("sum of add deltas + exit = %v, objective = %v", got, obj)
	}
}

// -----------------------------------------------------------------------------
// 4) Without-replacement enumeration is exactly the exhaustive multiset.
// -----------------------------------------------------------------------------

func TestRandomLocalMovesWOR_Completeness(t *testing.T) {
	p := randomProblem(t, 4, seedDet)
	rng := opt.RNGFromSeed(seedDet)
	s := completeRandomly(t, p, rng)

	want := make(map[collect.LocalMove]int)
	for m := range s.LocalMoveCandidates() {
		want[m]++
	}
	got := make(map[collect.LocalMove]int)
	total := 0
	for m := range s.RandomLocalMovesWithoutReplacement(rng) {
		got[m]++
		total++
	}

	if total != len(want) {
		t.Fatalf("WOR yielded %d moves, exhaustive has %d", total, len(want))
	}
	for m, c := range got {
		if c != 1 {
			t.Fatalf("move %+v yielded %d times", m, c)
		}
		if want[m] != 1 {
			t.Fatalf("move %+v not in exhaustive neighborhood", m)
		}
	}
}

func TestRandomLocalMovesWOR_EmptyOnPartial(t *testing.T) {
	p := randomProblem(t, 3, seedDet)
	s := p.EmptySolution()
	if err := s.Add(collect.Component{Stop: 0}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	for range s.RandomLocalMovesWithoutReplacement(opt.RNGFromSeed(seedDet)) {
		t.Fatalf("WOR yielded a move on a partial route")
	}
	if _, ok := s.RandomLocalMove(opt.RNGFromSeed(seedDet)); ok {
		t.Fatalf("RandomLocalMove produced a move on a partial route")
	}
}

// -----------------------------------------------------------------------------
// 5) Greedy selection: cheapest immediate transition, first-seen tie-break.
// -----------------------------------------------------------------------------

func TestGreedyAddCandidate_CheapestFirstSeen(t *testing.T) {
	entry := [2][]float64{{5, 9, 5}, {6, 9, 7}}
	exit := [2][]float64{{1, 1, 1}, {1, 1, 1}}
	var pair [4][][]float64
	for k := 0; k < 4; k++ {
		pair[k] = [][]float64{
			{0, 50, 50},
			{50, 0, 50},
			{50, 50, 0},
		}
	}
	p := mustProblem(t, entry, exit, pair)
	s := p.EmptySolution()

	// Ties at cost 5 for (0,o0) and (2,o0); stop 0 is seen first.
	c, ok := s.GreedyAddCandidate()
	if !ok {
		t.Fatalf("no greedy candidate on empty route")
	}
	if want := (collect.Component{Stop: 0, Orient: 0}); c != want {
		t.Fatalf("greedy pick = %+v, want %+v", c, want)
	}

	if err := s.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// From stop 0 all pair costs tie at 50; expect (1, o0) by scan order.
	c, ok = s.GreedyAddCandidate()
	if !ok {
		t.Fatalf("no greedy candidate on partial route")
	}
	if want := (collect.Component{Stop: 1, Orient: 0}); c != want {
		t.Fatalf("greedy pick = %+v, want %+v", c, want)
	}
}

// -----------------------------------------------------------------------------
// 6) LowerBoundDeltaForAdd: matches bound recomputation, and is exactly 0
//    when one stop remains before the add.
// -----------------------------------------------------------------------------

func TestLowerBoundDeltaForAdd_MatchesRecomputation(t *testing.T) {
	p := randomProblem(t, 6, seedDet)
	rng := opt.RNGFromSeed(seedDet)
	s := p.EmptySolution()

	for s.NumUnvisited() > 1 {
		cur, ok := s.LowerBound()
		if !ok {
			t.Fatalf("LowerBound undefined on partial route")
		}
		for c := range s.AddCandidates() {
			incr := s.LowerBoundDeltaForAdd(c)
			cp := s.Copy()
			if err := cp.Add(c); err != nil {
				t.Fatalf("Add(%v): %v", c, err)
			}
			next, ok := cp.LowerBound()
			if !ok {
				t.Fatalf("LowerBound undefined after non-final add")
			}
			if want := next - cur; !close9(incr, want) {
				t.Fatalf("LowerBoundDeltaForAdd(%v) = %v, recomputed %v", c, incr, want)
			}
		}
		var pick collect.Component
		var cands []collect.Component
		for c := range s.AddCandidates() {
			cands = append(cands, c)
		}
		pick = cands[rng.Intn(len(cands))]
		if err := s.Add(pick); err != nil {
			t.Fatalf("Add(%v): %v", pick, err)
		}
	}

	// One stop left: the increment must be exactly zero for every candidate.
	for c := range s.AddCandidates() {
		if got := s.LowerBoundDeltaForAdd(c); got != 0 {
			t.Fatalf("final-add increment = %v, want exactly 0", got)
		}
	}
}

func TestLowerBoundDeltaForAdd_SingleStopInstance(t *testing.T) {
	entry := [2][]float64{{4}, {9}}
	exit := [2][]float64{{2}, {3}}
	var pair [4][][]float64
	for k := 0; k < 4; k++ {
		pair[k] = [][]float64{{0}}
	}
	p := mustProblem(t, entry, exit, pair)
	s := p.EmptySolution()

	if got := s.LowerBoundDeltaForAdd(collect.Component{Stop: 0}); got != 0 {
		t.Fatalf("n=1 increment = %v, want exactly 0", got)
	}
}

// -----------------------------------------------------------------------------
// 7) Admissibility on a family where it provably holds: pair costs constant
//    per destination, entries at least the largest pair cost.
// -----------------------------------------------------------------------------

func columnConstantProblem(t *testing.T, n int, seed int64) *collect.Problem {
	t.Helper()
	rng := opt.RNGFromSeed(seed)
	w := make([]float64, n)
	maxW := 0.0
	for b := range w {
		w[b] = 1 + math.Floor(rng.Float64()*50)
		maxW = math.Max(maxW, w[b])
	}

	var entry, exit [2][]float64
	for o := 0; o < 2; o++ {
		entry[o] = make([]float64, n)
		exit[o] = make([]float64, n)
		for s := 0; s < n; s++ {
			entry[o][s] = maxW + math.Floor(rng.Float64()*50)
			exit[o][s] = math.Floor(rng.Float64() * 50)
		}
	}
	var pair [4][][]float64
	for k := 0; k < 4; k++ {
		pair[k] = make([][]float64, n)
		for a := 0; a < n; a++ {
			pair[k][a] = make([]float64, n)
			for b := 0; b < n; b++ {
				pair[k][a][b] = w[b]
			}
		}
	}
	return mustProblem(t, entry, exit, pair)
}

// bestCompletion brute-forces the cheapest feasible completion reachable
// from s.
func bestCompletion(s *collect.Solution) float64 {
	if obj, ok := s.Objective(); ok {
		return obj
	}
	best := math.Inf(1)
	for c := range s.AddCandidates() {
		cp := s.Copy()
		if err := cp.Add(c); err != nil {
			continue
		}
		if v := bestCompletion(cp); v < best {
			best = v
		}
	}
	return best
}

func TestLowerBound_AdmissibleOnColumnConstantFamily(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		p := columnConstantProblem(t, 5, seed)
		rng := opt.RNGFromSeed(seed)

		s := p.EmptySolution()
		for {
			bound, ok := s.LowerBound()
			if !ok {
				break
			}
			best := bestCompletion(s)
			if bound > best+1e-9 {
				t.Fatalf("seed=%d: bound %v exceeds best completion %v at %d visited",
					seed, bound, best, p.NumStops()-s.NumUnvisited())
			}
			var cands []collect.Component
			for c := range s.AddCandidates() {
				cands = append(cands, c)
			}
			if err := s.Add(cands[rng.Intn(len(cands))]); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// 8) Uniform tables: the bound is exact from the empty route.
// -----------------------------------------------------------------------------

func TestLowerBound_ExactOnUniformTables(t *testing.T) {
	const (
		n = 4
		c = 7.0
		e = 7.0 // entry equal to pair cost
		x = 3.0
	)
	var entry, exit [2][]float64
	for o := 0; o < 2; o++ {
		entry[o] = []float64{e, e, e, e}
		exit[o] = []float64{x, x, x, x}
	}
	var pair [4][][]float64
	for k := 0; k < 4; k++ {
		pair[k] = make([][]float64, n)
		for a := 0; a < n; a++ {
			pair[k][a] = []float64{c, c, c, c}
		}
	}
	p := mustProblem(t, entry, exit, pair)

	s := p.EmptySolution()
	bound, ok := s.LowerBound()
	if !ok {
		t.Fatalf("LowerBound undefined on empty route")
	}
	if want := n*c + x; !close9(bound, want) {
		t.Fatalf("bound = %v, want %v", bound, want)
	}
	if best := bestCompletion(s); !close9(bound, best) {
		t.Fatalf("bound %v not tight: optimum %v", bound, best)
	}
}
