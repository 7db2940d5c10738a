package tour

import (
	"errors"
	"testing"
)

// newClosedTour hand-builds the unit-square perimeter tour for corruption
// tests that need access to the private state.
func newClosedTour(t *testing.T) *Solution {
	t.Helper()
	p, err := NewProblem([]Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	s := p.EmptySolution()
	for _, c := range []Component{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		if err := s.Add(c); err != nil {
			t.Fatalf("Add(%v): %v", c, err)
		}
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("fresh tour: %v", err)
	}
	return s
}

func TestVerify_DetectsCorruption(t *testing.T) {
	cases := []struct {
		name    string
		corrupt func(s *Solution)
	}{
		{"drifted accumulated length", func(s *Solution) { s.acc += 0.5 }},
		{"membership flag cleared", func(s *Solution) { s.used[2] = false }},
		{"duplicated point", func(s *Solution) { s.path[1] = s.path[2] }},
		{"point out of range", func(s *Solution) { s.path[2] = 9 }},
		{"lost anchor", func(s *Solution) { s.path[0] = 1 }},
		{"broken closing return", func(s *Solution) { s.path[len(s.path)-1] = 2 }},
		{"overlong path", func(s *Solution) { s.path = append(s.path, 1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newClosedTour(t)
			tc.corrupt(s)
			if err := s.Verify(); !errors.Is(err, ErrInconsistent) {
				t.Fatalf("Verify() = %v, want ErrInconsistent", err)
			}
		})
	}
}
