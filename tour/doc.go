// Package tour implements the closed-tour sequencing variant of the
// deltour contract: visit every point exactly once starting from a chosen
// start point and return to it, under symmetric Euclidean distance.
//
// Problem holds the coordinates and a packed symmetric distance table
// (gonum mat.SymDense) built once at construction; Solution is the mutable
// path implementing opt.Solution[*Solution, Component, LocalMove]:
//
//   - A Component is one directed arc (From, To) appended to the path; the
//     final closing arc back to the start is itself a component, so a
//     complete path stores n+1 entries with the start at both ends as the
//     single sanctioned duplicate.
//   - A LocalMove{I, J} is a 2-opt rearrangement: reverse path[I:J).
//     Under symmetric distance only the two boundary arcs change, so Step
//     updates the accumulated length with exactly two subtractions and two
//     additions.
//   - LowerBound is deliberately trivial (the accumulated length so far):
//     this variant computes no relaxation, trading pruning power for zero
//     bound overhead. The companion collect variant shows the opposite
//     trade.
//
// Instance text format (ParseProblem): first token n, then n coordinate
// pairs. Output lists the visited point indices one per line, omitting the
// trailing duplicate of the start.
package tour
