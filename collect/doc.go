// Package collect implements the sequencing-with-orientation routing
// variant of the deltour contract: a vehicle leaves a depot, services every
// stop exactly once in some order, and finishes at a disposal site. Each
// stop is serviced in one of two orientations, and every cost in the model
// depends on orientation:
//
//   - entry cost depot → stop, per orientation of the first stop;
//   - exit cost stop → disposal, per orientation of the last stop;
//   - stop → stop cost per (orientation, orientation) pair, four n×n
//     tables indexed prevOrient<<1 | nextOrient.
//
// Problem is the immutable instance (tables + size); Solution is the
// mutable search state implementing opt.Solution[*Solution, Component,
// LocalMove]:
//
//   - Add appends a (stop, orientation) component and pays exactly one new
//     transition: the entry cost for the first stop, a pair cost otherwise.
//   - Step applies a swap-with-reorientation move to a complete route:
//     positions I and J exchange stops, position I takes OrientI, position
//     J takes OrientJ. I == J is the pure reorientation move. The
//     accumulated cost is updated from the destroyed/created boundary
//     transitions alone, never recomputed.
//   - The accumulated cost covers entry plus all stop→stop transitions of
//     the current sequence; the exit transition is added by Objective once
//     the route is complete.
//   - LowerBound relaxes the remaining work: each unvisited stop is charged
//     its cheapest incoming arc from within the unvisited set (over all
//     four orientation pairs) plus one cheapest exit arc over the set.
//
// Instance text format (ParseProblem): first token n; two n-token rows of
// entry costs (orientation 0, then 1); two n-token rows of exit costs; four
// n×n blocks of pair costs in on-disk orientation-pair order 00, 01, 11, 10.
//
// Costs are float64 throughout. All randomized operations take a
// caller-owned *rand.Rand per the module policy in package opt.
package collect
