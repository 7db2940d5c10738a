// Package opt defines the incremental-construction / local-search contract
// shared by every problem variant in deltour, plus the deterministic RNG
// plumbing the randomized operations build on.
//
// The contract splits responsibilities in two:
//
//   - A Problem is an immutable instance: sizes, cost tables, coordinates.
//     It is safe to share across goroutines once built and acts as a factory
//     for fresh empty solutions.
//
//   - A Solution is a mutable search state owned by exactly one search
//     thread. It grows monotonically via Add (construction), is rearranged
//     non-monotonically via Step (local search), and answers cost queries
//     in O(1) against an incrementally maintained accumulated cost.
//
// Candidate enumeration is lazy: AddCandidates, LocalMoveCandidates,
// RandomLocalMovesWithoutReplacement and Components return iter.Seq values
// that generate elements on demand and may be abandoned mid-traversal.
// Ranging over the same value again re-traverses from the start (for the
// randomized sequence: with a fresh order drawn from the caller's RNG).
//
// Determinism policy (shared with every package in this module):
//
//   - No hidden randomness. Every randomized operation takes a caller-owned
//     *math/rand.Rand; the library never reads time or global generators.
//   - seed==0 is mapped to a fixed default seed, so the zero value of a
//     configuration still yields reproducible runs.
//   - *rand.Rand is not goroutine-safe; derive independent streams with
//     DeriveRNG for parallel workers instead of sharing one generator.
//
// Error policy: no logging, no panics on user input. Mutators return
// package-level sentinel errors on precondition violations (adding a unit
// twice, stepping a partial solution); pure queries that are undefined in
// the current lifecycle state report ok==false instead of failing.
//
// Verification: Verify recomputes the solution's accumulated cost and
// membership bookkeeping from scratch and compares against the incremental
// state. It is an explicit, always-compiled consistency pass intended for
// tests and debugging runs, never gated on build tags.
package opt
