// Package collect - remaining-work relaxation behind LowerBound and
// LowerBoundDeltaForAdd.
package collect

import "math"

// remainderBound sums, for every unvisited stop (optionally skipping one),
// the cheapest incoming arc from another unvisited stop across all four
// orientation pairs, then adds the single cheapest exit arc over the same
// set. skip < 0 skips nothing. The relaxation charges each remaining stop
// one incoming arc and the whole set one exit arc; joint realizability of
// those choices is deliberately ignored.
//
// Complexity: O(u²) for u unvisited stops.
func (s *Solution) remainderBound(skip int) float64 {
	var (
		n              = s.p.n
		p0, p1, p2, p3 = s.p.pair[0], s.p.pair[1], s.p.pair[2], s.p.pair[3]
		total          float64
	)

	for dest := 0; dest < n; dest++ {
		if s.visited[dest] || dest == skip {
			continue
		}
		best := math.Inf(1)
		for dep := 0; dep < n; dep++ {
			if s.visited[dep] || dep == skip || dep == dest {
				continue
			}
			base := dep*n + dest
			if c := p0[base]; c < best {
				best = c
			}
			if c := p1[base]; c < best {
				best = c
			}
			if c := p2[base]; c < best {
				best = c
			}
			if c := p3[base]; c < best {
				best = c
			}
		}
		if !math.IsInf(best, 1) {
			total += best
		}
	}

	exitBest := math.Inf(1)
	for dep := 0; dep < n; dep++ {
		if s.visited[dep] || dep == skip {
			continue
		}
		if c := s.p.exit[0][dep]; c < exitBest {
			exitBest = c
		}
		if c := s.p.exit[1][dep]; c < exitBest {
			exitBest = c
		}
	}
	if !math.IsInf(exitBest, 1) {
		total += exitBest
	}
	return total
}
