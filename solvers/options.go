package solvers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Options carries every driver knob. Each driver validates only the fields
// it reads, so one Options value can be shared across a whole pipeline.
type Options struct {
	// Budget is the wall-clock allowance. Zero disables the deadline, which
	// is only legal for drivers with a natural fixed point (see doc.go).
	Budget time.Duration

	// MaxIterations caps the driver's outer loop: GRASP restarts, ant
	// generations, ILS kicks, SimulatedAnnealing cooling epochs,
	// RandomLocalSearch proposals. Zero means unlimited.
	MaxIterations int

	// Seed feeds every random decision of the driver. Zero selects the
	// fixed default stream, never the clock.
	Seed int64

	// Logger receives incumbent improvements at debug level. The default is
	// a no-op logger; drivers never touch global logger state.
	Logger zerolog.Logger

	// BeamWidth is the number of partial solutions Beam keeps per level.
	BeamWidth int

	// Alpha is the GRASP restricted-candidate-list parameter in [0,1]:
	// 0 keeps only the greedy minimum, 1 keeps every candidate.
	Alpha float64

	// Beta is the ant-colony heuristic exponent (weight of 1/cost against
	// pheromone). Zero makes construction pheromone-only.
	Beta float64

	// Rho is the pheromone evaporation rate in (0,1).
	Rho float64

	// Tau0 is the AntSystem initial pheromone per component.
	Tau0 float64

	// TauMax is the MaxMinAntSystem pheromone ceiling; the floor is derived
	// as TauMax / (2*len(seeds)).
	TauMax float64

	// GlobalRatio is the MaxMinAntSystem probability of depositing from the
	// global best instead of the iteration best.
	GlobalRatio float64

	// Parallel builds each ant generation concurrently, one goroutine per
	// seed. Results are identical to the sequential run for a given Seed.
	Parallel bool

	// InitialTemperature is the SimulatedAnnealing start temperature.
	// Zero auto-calibrates from a sample of move deltas.
	InitialTemperature float64

	// CoolingRate is the per-epoch geometric cooling factor in (0,1).
	CoolingRate float64

	// PerturbStrength is the number of random moves per ILS kick.
	PerturbStrength int
}

// DefaultOptions returns the knob values the command-line drivers start
// from:
//
//   - Budget:             5s
//   - MaxIterations:      0 (unlimited, budget-bound)
//   - Seed:               0 (fixed default stream)
//   - BeamWidth:          10
//   - Alpha:              0.01
//   - Beta:               5.0
//   - Rho:                0.5
//   - Tau0:               1/3000
//   - TauMax:             1/3000
//   - GlobalRatio:        0.1
//   - InitialTemperature: 0 (auto-calibrated)
//   - CoolingRate:        0.95
//   - PerturbStrength:    3
func DefaultOptions() Options {
	return Options{
		Budget:             5 * time.Second,
		Logger:             zerolog.Nop(),
		BeamWidth:          10,
		Alpha:              0.01,
		Beta:               5.0,
		Rho:                0.5,
		Tau0:               1.0 / 3000.0,
		TauMax:             1.0 / 3000.0,
		GlobalRatio:        0.1,
		CoolingRate:        0.95,
		PerturbStrength:    3,
	}
}

// requireStop rejects option sets under which a restart-style driver could
// never terminate.
func (o Options) requireStop() error {
	if o.Budget <= 0 && o.MaxIterations <= 0 {
		return fmt.Errorf("%w: need a positive Budget or MaxIterations", ErrBadOptions)
	}
	return nil
}

// budgetClock is the cooperative deadline shared by all drivers. The sparse
// check is intended for tight inner loops: it consults the wall clock once
// every 2048 calls.
type budgetClock struct {
	deadline time.Time
	active   bool
	step     int
}

func newBudgetClock(budget time.Duration) *budgetClock {
	if budget <= 0 {
		return &budgetClock{}
	}
	return &budgetClock{deadline: time.Now().Add(budget), active: true}
}

// sparse reports deadline expiry, polling the clock once per 2048 calls.
func (c *budgetClock) sparse() bool {
	c.step++
	if !c.active || (c.step&2047) != 0 {
		return false
	}
	return time.Now().After(c.deadline)
}

// now reports deadline expiry with a direct clock read, for coarse loops.
func (c *budgetClock) now() bool {
	return c.active && time.Now().After(c.deadline)
}
