package collect

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// orientPairs lists the (OrientI, OrientJ) combinations in the order the
// exhaustive enumerators emit them.
var orientPairs = [4][2]uint8{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Problem is an immutable sequencing-with-orientation instance. Safe for
// concurrent readers; every Solution keeps a reference and never copies the
// tables.
//
// The pair tables are stored flattened (cost of a→b at index a*n+b) with
// one table per orientation pair, indexed prevOrient<<1 | nextOrient.
type Problem struct {
	n     int
	entry [2][]float64 // depot → stop, by orientation of the stop
	exit  [2][]float64 // stop → disposal, by orientation of the stop
	pair  [4][]float64 // stop → stop, by prevOrient<<1|nextOrient, flattened n×n
}

// NewProblem builds an instance from dense tables: entry[o][s] and
// exit[o][s] for orientation o of stop s, pair[k][a][b] for the transition
// a→b under orientation pair k = prevOrient<<1|nextOrient. All tables must
// agree on n ≥ 1.
func NewProblem(entry, exit [2][]float64, pair [4][][]float64) (*Problem, error) {
	n := len(entry[0])
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one stop", ErrBadInstance)
	}
	for o := 0; o < 2; o++ {
		if len(entry[o]) != n || len(exit[o]) != n {
			return nil, fmt.Errorf("%w: entry/exit tables disagree on n=%d", ErrBadInstance, n)
		}
	}

	p := &Problem{n: n}
	for o := 0; o < 2; o++ {
		p.entry[o] = append([]float64(nil), entry[o]...)
		p.exit[o] = append([]float64(nil), exit[o]...)
	}
	for k := 0; k < 4; k++ {
		if len(pair[k]) != n {
			return nil, fmt.Errorf("%w: pair table %d has %d rows, want %d", ErrBadInstance, k, len(pair[k]), n)
		}
		flat := make([]float64, n*n)
		for a, row := range pair[k] {
			if len(row) != n {
				return nil, fmt.Errorf("%w: pair table %d row %d has %d columns, want %d", ErrBadInstance, k, a, len(row), n)
			}
			copy(flat[a*n:], row)
		}
		p.pair[k] = flat
	}
	return p, nil
}

// ParseProblem reads the textual instance format: n, two entry rows, two
// exit rows, then four n×n pair blocks in on-disk orientation-pair order
// 00, 01, 11, 10. Tokens may be separated by any whitespace. Fails fast
// with an ErrBadInstance-wrapped error on the first malformed or missing
// token.
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

	p := &Problem{n: n}
	row := func(what string) ([]float64, error) {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v, err := next(what)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	for o := 0; o < 2; o++ {
		if p.entry[o], err = row(fmt.Sprintf("entry row %d", o)); err != nil {
			return nil, err
		}
	}
	for o := 0; o < 2; o++ {
		if p.exit[o], err = row(fmt.Sprintf("exit row %d", o)); err != nil {
			return nil, err
		}
	}

	// Pair blocks appear on disk as 00, 01, 11, 10; table index is
	// prevOrient<<1|nextOrient, hence the 0, 1, 3, 2 placement.
	for bi, k := range [4]int{0, 1, 3, 2} {
		flat := make([]float64, n*n)
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				v, err := next(fmt.Sprintf("pair block %d row %d", bi, a))
				if err != nil {
					return nil, err
				}
				flat[a*n+b] = v
			}
		}
		p.pair[k] = flat
	}
	return p, nil
}

// NumStops returns n, the number of stops to service.
func (p *Problem) NumStops() int { return p.n }

// EntryCost returns the depot → c transition cost.
func (p *Problem) EntryCost(c Component) float64 { return p.entry[c.Orient][c.Stop] }

// ExitCost returns the c → disposal transition cost.
func (p *Problem) ExitCost(c Component) float64 { return p.exit[c.Orient][c.Stop] }

// PairCost returns the from → to transition cost under the orientation pair
// of the two components.
func (p *Problem) PairCost(from, to Component) float64 {
	return p.pair[from.Orient<<1|to.Orient][from.Stop*p.n+to.Stop]
}

// TransitionCost returns the cost of servicing to directly after from,
// resolving the virtual endpoints: entry cost when from is the depot, exit
// cost when to is the disposal site, pair cost between two real stops.
// Endpoint matching is by stop marker, so orientation on a virtual endpoint
// is ignored.
func (p *Problem) TransitionCost(from, to Component) float64 {
	switch {
	case from.Stop == Depot.Stop:
		return p.EntryCost(to)
	case to.Stop == Disposal.Stop:
		return p.ExitCost(from)
	default:
		return p.PairCost(from, to)
	}
}

// EmptySolution returns a fresh route with no stop serviced yet.
func (p *Problem) EmptySolution() *Solution {
	return &Solution{
		p:       p,
		stops:   make([]int, 0, p.n),
		orients: make([]uint8, 0, p.n),
		visited: make([]bool, p.n),
	}
}

// validComponent reports whether c references a real stop and orientation.
func (p *Problem) validComponent(c Component) bool {
	return c.Stop >= 0 && c.Stop < p.n && c.Orient <= 1
}
