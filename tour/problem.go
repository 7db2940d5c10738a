package tour

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Problem is an immutable closed-tour instance: point coordinates plus the
// full symmetric Euclidean distance table, built once so every later cost
// query is a plain lookup. Safe for concurrent readers.
type Problem struct {
	n      int
	coords []Point
	dist   *mat.SymDense
}

// NewProblem builds an instance from at least one point.
func NewProblem(points []Point) (*Problem, error) {
	n := len(points)
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one point", ErrBadInstance)
	}

	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			d.SetSym(i, j, math.Sqrt(dx*dx+dy*dy))
		}
	}
	return &Problem{
		n:      n,
		coords: append([]Point(nil), points...),
		dist:   d,
	}, nil
}

// ParseProblem reads the textual instance format: n, then n coordinate
// pairs, tokens separated by any whitespace. Fails fast with an
// ErrBadInstance-wrapped error on the first malformed or missing token.
func ParseProblem(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func(what string) (float64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("%w: reading %s: %v", ErrBadInstance, what, err)
			}
			return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrBadInstance, what)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not a number", ErrBadInstance, what, sc.Text())
		}
		return v, nil
	}

	nf, err := next("instance size")
	if err != nil {
		return nil, err
	}
	n := int(nf)
	if n < 1 || float64(n) != nf {
		return nil, fmt.Errorf("%w: instance size %v", ErrBadInstance, nf)
	}

	points := make([]Point, n)
	for i := range points {
		if points[i].X, err = next(fmt.Sprintf("point %d x", i)); err != nil {
			return nil, err
		}
		if points[i].Y, err = next(fmt.Sprintf("point %d y", i)); err != nil {
			return nil, err
		}
	}
	return NewProblem(points)
}

// NumPoints returns n, the number of points to visit.
func (p *Problem) NumPoints() int { return p.n }

// PointDistance returns the Euclidean distance between points a and b.
func (p *Problem) PointDistance(a, b int) float64 { return p.dist.At(a, b) }

// EmptySolution returns a fresh path anchored at point 0.
func (p *Problem) EmptySolution() *Solution {
	s, _ := p.EmptySolutionWithStart(0)
	return s
}

// EmptySolutionWithStart returns a fresh path anchored at the given start
// point. Ensemble drivers use one per candidate start.
func (p *Problem) EmptySolutionWithStart(start int) (*Solution, error) {
	if start < 0 || start >= p.n {
		return nil, fmt.Errorf("%w: %d with n=%d", ErrBadStart, start, p.n)
	}
	s := &Solution{
		p:     p,
		start: start,
		path:  append(make([]int, 0, p.n+1), start),
		used:  make([]bool, p.n),
	}
	s.used[start] = true
	return s, nil
}
