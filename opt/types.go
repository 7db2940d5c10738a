package opt

import (
	"iter"
	"math/rand"
)

// Problem is an immutable problem instance acting as a factory for empty
// solutions. Implementations must be safe for concurrent readers.
type Problem[S any] interface {
	// EmptySolution returns a fresh solution with nothing decided yet.
	EmptySolution() S
}

// Solution is the capability contract metaheuristic drivers are generic
// over. S is the implementing type itself (so Copy returns the concrete
// type), C is the component type (one atomic construction decision) and M
// is the local-move type (one rearrangement of a complete solution).
//
// C is constrained comparable on purpose: a component value is its own
// stable identity, directly usable as a map key by pheromone bookkeeping
// and other per-component statistics.
//
// Lifecycle: Empty → Partial → Complete. Add is valid while the solution is
// not complete; Step and Perturb only once it is. Objective is defined only
// on complete solutions, LowerBound only on empty/partial ones (variants may
// extend either, never restrict). Both report definedness via their second
// return value rather than erroring: an undefined query in the current state
// is a normal condition for a driver probing where it stands.
//
// All Delta* methods are pure: they evaluate a hypothetical mutation against
// the current state without changing it, in O(1) for the variants in this
// module. Their move/component argument must come from the solution's own
// enumerators (or equal such a value); feeding a foreign descriptor is a
// programming error with unspecified (but state-preserving) results.
type Solution[S any, C comparable, M any] interface {
	// Copy returns a deep copy sharing only the immutable problem instance.
	// Mutating the copy never affects the original.
	Copy() S

	// IsFeasible reports whether the solution is complete (every decision
	// made, ready for objective evaluation).
	IsFeasible() bool

	// Objective returns the exact cost of a complete solution. ok==false on
	// empty or partial solutions.
	Objective() (float64, bool)

	// LowerBound returns an admissible optimistic completion bound: no
	// completion of the current state can cost less. ok==false when the
	// bound is not defined in the current state.
	LowerBound() (float64, bool)

	// AddCandidates enumerates every component that may legally extend the
	// current partial solution. Empty sequence once complete.
	AddCandidates() iter.Seq[C]

	// LocalMoveCandidates exhaustively enumerates the local-move
	// neighborhood of a complete solution in a deterministic order. Empty
	// sequence while the solution is not complete.
	LocalMoveCandidates() iter.Seq[M]

	// RandomLocalMove draws one random move from the neighborhood.
	// ok==false when the neighborhood is empty (or the solution too small
	// to admit a move).
	RandomLocalMove(rng *rand.Rand) (M, bool)

	// RandomLocalMovesWithoutReplacement enumerates the same multiset of
	// moves as LocalMoveCandidates in a randomized order, never repeating a
	// move within one traversal, lazily (no up-front materialization of the
	// full neighborhood where the index space allows it).
	RandomLocalMovesWithoutReplacement(rng *rand.Rand) iter.Seq[M]

	// GreedyAddCandidate returns the feasible component with the cheapest
	// immediate cost increase, first seen winning ties. ok==false once the
	// solution is complete.
	GreedyAddCandidate() (C, bool)

	// DeltaForAdd returns the exact accumulated-cost increase Add(c) would
	// cause: the cost of the one new transition the append creates.
	DeltaForAdd(c C) float64

	// LowerBoundDeltaForAdd returns the exact change of LowerBound that
	// Add(c) would cause. Exactly 0 when c completes the solution.
	LowerBoundDeltaForAdd(c C) float64

	// DeltaForLocalMove returns the exact objective change Step(m) would
	// cause: cost of created transitions minus cost of destroyed ones.
	DeltaForLocalMove(m M) float64

	// Add extends the solution with component c and updates the accumulated
	// cost incrementally. Errors when c is not currently addable.
	Add(c C) error

	// Step applies local move m to a complete solution, updating the
	// accumulated cost by the created-minus-destroyed transition delta.
	// Errors on a partial solution or out-of-range move indices.
	Step(m M) error

	// Perturb applies strength random local moves drawn from rng (the kick
	// used by iterated local search). Errors when the solution is not
	// complete.
	Perturb(rng *rand.Rand, strength int) error

	// Components enumerates the components the current solution is built
	// from, in sequence order.
	Components() iter.Seq[C]

	// Verify recomputes cost and membership bookkeeping from scratch and
	// returns a descriptive error on any divergence from the incremental
	// state. Nil means internally consistent.
	Verify() error
}
