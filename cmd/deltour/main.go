// Command deltour reads a routing instance from a file or stdin, runs the
// selected constructive and local searches, and writes the resulting visit
// sequence to a file or stdout.
//
// Two instance kinds are supported: -problem tour expects planar point
// coordinates and builds a closed tour, -problem collect expects the
// entry/exit/pairwise cost tables of the oriented stop-sequencing problem.
// Searches and budgets are picked per phase, for example:
//
//	deltour -problem tour -csearch grasp -cbudget 10s -lsearch sa -lbudget 5s <points.txt
//
// Solver knobs beyond the flag surface (beam width, pheromone rates,
// annealing temperature) start from fixed defaults and may be overridden
// with a -config file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/deltour/deltour/collect"
	"github.com/deltour/deltour/tour"
)

// collectAnts is the colony size for the oriented-sequencing variant, which
// has a single anchor-free start state instead of one start per point.
const collectAnts = 100

func main() {
	cfg := parseFlags()
	if err := realMain(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "deltour: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Problem, "problem", "", "problem variant: tour or collect")
	flag.StringVar(&cfg.CSearch, "csearch", "none", "constructive search: greedy, heuristic, beam, grasp, as, mmas or none")
	flag.DurationVar(&cfg.CBudget, "cbudget", 5*time.Second, "constructive search budget")
	flag.StringVar(&cfg.LSearch, "lsearch", "none", "local search: bi, fi, ils, rls, sa or none")
	flag.DurationVar(&cfg.LBudget, "lbudget", 5*time.Second, "local search budget")
	flag.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 selects the fixed default stream)")
	flag.StringVar(&cfg.InputFile, "input-file", "", "instance file (default stdin)")
	flag.StringVar(&cfg.OutputFile, "output-file", "", "solution file (default stdout)")
	flag.StringVar(&cfg.LogLevel, "log-level", "warn", "log level: trace, debug, info, warn or error")
	flag.StringVar(&cfg.LogFile, "log-file", "", "log sink (default stderr)")
	flag.BoolVar(&cfg.Verify, "verify", false, "run the full consistency check on the final solution")
	flag.StringVar(&cfg.ConfigFile, "config", "", "optional solver parameter file")
	flag.Parse()
	return cfg
}

func realMain(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	logger, logClose, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer logClose()

	in := io.Reader(os.Stdin)
	if cfg.InputFile != "" {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	outFile := os.Stdout
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		outFile = f
	}
	out := bufio.NewWriter(outFile)

	switch cfg.Problem {
	case "tour":
		err = runTour(cfg, logger, in, out)
	case "collect":
		err = runCollect(cfg, logger, in, out)
	}
	if err != nil {
		return err
	}
	return out.Flush()
}

// openLogger builds a console logger on stderr or on the -log-file sink.
// The returned closer releases the sink; it is never nil on success.
func openLogger(cfg Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("bad -log-level: %w", err)
	}

	sink := io.Writer(os.Stderr)
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		sink = f
		closer = func() { f.Close() }
	}

	cw := zerolog.ConsoleWriter{Out: sink, NoColor: cfg.LogFile != "", TimeFormat: time.TimeOnly}
	return zerolog.New(cw).With().Timestamp().Logger().Level(level), closer, nil
}

func runTour(cfg Config, logger zerolog.Logger, in io.Reader, out io.Writer) error {
	p, err := tour.ParseProblem(in)
	if err != nil {
		return err
	}

	pl := pipeline[*tour.Solution, tour.Component, tour.LocalMove]{
		template: p.EmptySolution(),
		polished: true,
		antSeeds: func() ([]*tour.Solution, error) {
			seeds := make([]*tour.Solution, 0, p.NumPoints())
			for i := 0; i < p.NumPoints(); i++ {
				s, err := p.EmptySolutionWithStart(i)
				if err != nil {
					return nil, err
				}
				seeds = append(seeds, s)
			}
			return seeds, nil
		},
	}

	params, err := loadParams(cfg.ConfigFile, defaultParams(cfg.Problem, cfg.CSearch))
	if err != nil {
		return err
	}
	return pl.run(cfg, params, logger, out)
}

func runCollect(cfg Config, logger zerolog.Logger, in io.Reader, out io.Writer) error {
	p, err := collect.ParseProblem(in)
	if err != nil {
		return err
	}

	pl := pipeline[*collect.Solution, collect.Component, collect.LocalMove]{
		template: p.EmptySolution(),
		antSeeds: func() ([]*collect.Solution, error) {
			seeds := make([]*collect.Solution, collectAnts)
			for i := range seeds {
				seeds[i] = p.EmptySolution()
			}
			return seeds, nil
		},
	}

	params, err := loadParams(cfg.ConfigFile, defaultParams(cfg.Problem, cfg.CSearch))
	if err != nil {
		return err
	}
	return pl.run(cfg, params, logger, out)
}
