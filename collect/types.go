package collect

import "errors"

// Sentinel errors returned by the collect variant.
var (
	// ErrBadInstance indicates a malformed instance: wrong token count,
	// non-numeric field, truncated table, or inconsistent dimensions.
	ErrBadInstance = errors.New("collect: malformed instance")

	// ErrBadComponent indicates a component referencing a stop outside
	// [0, n) or an orientation other than 0/1.
	ErrBadComponent = errors.New("collect: component out of range")

	// ErrStopVisited indicates an attempt to add a stop that is already in
	// the route.
	ErrStopVisited = errors.New("collect: stop already visited")

	// ErrSolutionComplete indicates an Add on a route that already visits
	// every stop.
	ErrSolutionComplete = errors.New("collect: solution already complete")

	// ErrSolutionNotComplete indicates a Step or Perturb on a route that
	// does not yet visit every stop.
	ErrSolutionNotComplete = errors.New("collect: solution not complete")

	// ErrBadLocalMove indicates move indices that are out of range, not
	// ordered I ≤ J, or an orientation other than 0/1.
	ErrBadLocalMove = errors.New("collect: local move out of range")

	// ErrInconsistent is returned by Verify when the incrementally
	// maintained state diverges from a from-scratch recomputation.
	ErrInconsistent = errors.New("collect: incremental state diverged")
)

// Component is one construction decision: service Stop in orientation
// Orient (0 or 1). The zero-sized descriptor is its own identity: two equal
// Component values denote the same decision, which is what pheromone maps
// and other per-component bookkeeping key on.
type Component struct {
	Stop   int
	Orient uint8
}

// Depot and Disposal are the virtual route endpoints accepted by
// Problem.TransitionCost: a route conceptually runs depot → stops →
// disposal. Neither carries an orientation and neither ever appears inside
// a Solution.
var (
	Depot    = Component{Stop: -1}
	Disposal = Component{Stop: -2}
)

// LocalMove is a swap-with-reorientation descriptor on a complete route:
// the stops at positions I and J (I ≤ J) trade places, position I takes
// orientation OrientI and position J takes OrientJ. With I == J no stop
// moves and the position ends up in OrientJ (the later of the two
// assignments), so the move degenerates to a pure reorientation.
type LocalMove struct {
	I, J             int
	OrientI, OrientJ uint8
}
