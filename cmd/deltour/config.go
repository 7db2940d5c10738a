package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/deltour/deltour/solvers"
)

// Config is the flag surface of the command.
type Config struct {
	Problem    string
	CSearch    string
	CBudget    time.Duration
	LSearch    string
	LBudget    time.Duration
	Seed       int64
	InputFile  string
	OutputFile string
	LogLevel   string
	LogFile    string
	Verify     bool
	ConfigFile string
}

func (c Config) validate() error {
	switch c.Problem {
	case "tour", "collect":
	default:
		return fmt.Errorf("-problem must be tour or collect, got %q", c.Problem)
	}
	switch c.CSearch {
	case "greedy", "heuristic", "beam", "grasp", "as", "mmas", "none":
	default:
		return fmt.Errorf("unknown -csearch %q", c.CSearch)
	}
	switch c.LSearch {
	case "bi", "fi", "ils", "rls", "sa", "none":
	default:
		return fmt.Errorf("unknown -lsearch %q", c.LSearch)
	}
	return nil
}

// Params are the solver knobs a -config file may override. Only the keys
// present in the file replace the defaults, so a file tuning the annealing
// temperature leaves the pheromone rates alone.
type Params struct {
	BeamWidth       int     `mapstructure:"beam_width"`
	Alpha           float64 `mapstructure:"alpha"`
	Beta            float64 `mapstructure:"beta"`
	Rho             float64 `mapstructure:"rho"`
	Tau0            float64 `mapstructure:"tau0"`
	TauMax          float64 `mapstructure:"taumax"`
	GlobalRatio     float64 `mapstructure:"global_ratio"`
	Temperature     float64 `mapstructure:"temperature"` // 0 auto-calibrates
	CoolingRate     float64 `mapstructure:"cooling_rate"`
	PerturbStrength int     `mapstructure:"perturb_strength"`
	Parallel        bool    `mapstructure:"parallel"`
}

// defaultParams is the fixed stock parameterization. The two variants tune
// annealing and max-min pheromone search differently: oriented sequencing
// moves on a coarser cost scale and keeps a wider pheromone band.
func defaultParams(problem, csearch string) Params {
	p := Params{
		BeamWidth:       10,
		Alpha:           0.01,
		Beta:            5.0,
		Rho:             0.5,
		Tau0:            1.0 / 3000.0,
		TauMax:          1.0 / 3000.0,
		GlobalRatio:     0.1,
		Temperature:     10,
		CoolingRate:     0.95,
		PerturbStrength: 3,
	}
	if problem == "collect" {
		p.Temperature = 30
		if csearch == "mmas" {
			p.Rho = 0.02
			p.GlobalRatio = 0.5
		}
	} else if csearch == "mmas" {
		p.Rho = 0.05
	}
	return p
}

// loadParams overlays the optional config file onto the defaults. Any
// format viper can infer from the file extension works.
func loadParams(path string, defaults Params) (Params, error) {
	p := defaults
	if path == "" {
		return p, nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return p, fmt.Errorf("read -config: %w", err)
	}
	if err := viper.Unmarshal(&p); err != nil {
		return p, fmt.Errorf("parse -config: %w", err)
	}
	return p, nil
}

// solverOptions copies the parameter set into driver options for one phase.
func (p Params) solverOptions(budget time.Duration, seed int64, logger zerolog.Logger) solvers.Options {
	o := solvers.DefaultOptions()
	o.Budget = budget
	o.Seed = seed
	o.Logger = logger
	o.BeamWidth = p.BeamWidth
	o.Alpha = p.Alpha
	o.Beta = p.Beta
	o.Rho = p.Rho
	o.Tau0 = p.Tau0
	o.TauMax = p.TauMax
	o.GlobalRatio = p.GlobalRatio
	o.Parallel = p.Parallel
	o.InitialTemperature = p.Temperature
	o.CoolingRate = p.CoolingRate
	o.PerturbStrength = p.PerturbStrength
	return o
}
