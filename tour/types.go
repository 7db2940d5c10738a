package tour

import "errors"

// Sentinel errors returned by the tour variant.
var (
	// ErrBadInstance indicates a malformed instance: missing token,
	// non-numeric coordinate, or an empty point set.
	ErrBadInstance = errors.New("tour: malformed instance")

	// ErrBadStart indicates a start point outside [0, n).
	ErrBadStart = errors.New("tour: start point out of range")

	// ErrBadComponent indicates an arc that does not extend the current
	// path: out-of-range endpoint or From not equal to the current last
	// point.
	ErrBadComponent = errors.New("tour: component does not extend the path")

	// ErrPointVisited indicates an arc into an already-visited point other
	// than the legal closing return to the start.
	ErrPointVisited = errors.New("tour: point already visited")

	// ErrSolutionComplete indicates an Add on an already closed tour.
	ErrSolutionComplete = errors.New("tour: solution already complete")

	// ErrSolutionNotComplete indicates a Step or Perturb before the tour is
	// closed.
	ErrSolutionNotComplete = errors.New("tour: solution not complete")

	// ErrBadLocalMove indicates 2-opt indices outside 1 ≤ I ≤ J-2 < J ≤ n.
	ErrBadLocalMove = errors.New("tour: local move out of range")

	// ErrInconsistent is returned by Verify when the incrementally
	// maintained state diverges from a from-scratch recomputation.
	ErrInconsistent = errors.New("tour: incremental state diverged")
)

// Point is a planar coordinate pair.
type Point struct {
	X, Y float64
}

// Component is one directed arc From → To appended to the path. The value
// is its own identity: pheromone maps and other per-arc statistics key on
// it directly.
type Component struct {
	From, To int
}

// LocalMove is a 2-opt descriptor on a closed tour: reverse the slice
// path[I:J). Both endpoints of the path (the start at positions 0 and n)
// stay fixed; only the two boundary arcs change cost.
type LocalMove struct {
	I, J int
}
