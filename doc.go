// Package deltour is your in-memory playground for incremental local
// search on sequencing problems: solutions grow one component at a time
// and classic metaheuristics reshape them, pricing every move in O(1)
// before it is applied.
//
// 🚀 What is deltour?
//
//	A small, explicit optimization library that brings together:
//		• One contract: solutions built from components, reshaped by local moves
//		• Two variants: closed planar tours & oriented stop sequencing
//		• Delta evaluation: every move is priced before it is applied
//		• Constructives: greedy, nearest-candidate, beam search, GRASP
//		• Ant ensembles: Ant System and Max-Min Ant System
//		• Descent & beyond: first/best improvement, RLS, ILS, simulated annealing
//
// ✨ Why choose deltour?
//
//   - Deterministic runs – explicit seeds, bit-identical parallel ensembles
//   - Honest accounting – opt-in Verify() recomputes every cached invariant
//   - Lazy enumeration – move streams are restartable iter.Seq values
//   - Extensible – implement opt.Solution once, gain every driver for free
//
// Under the hood, everything is organized under four subpackages and one
// command:
//
//	opt/      the contract: Solution, seeded RNG streams, shuffled indices
//	collect/  oriented stop sequencing over entry/exit/pairwise cost tables
//	tour/     closed tours over planar point sets
//	solvers/  constructive, ant and local-search drivers, generic over opt
//	cmd/      the deltour command: read an instance, solve, print the visit order
//
// Quick ASCII example:
//
//	    0───1
//	    │   │
//	    3───2
//
//	the four corners of the unit square; the optimal closed tour visits
//	them in perimeter order and has length 4.
//
// Dive into the opt package docs for the contract and into solvers for the
// driver catalogue and stopping rules.
//
//	go get github.com/deltour/deltour
package deltour
