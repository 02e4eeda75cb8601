package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oleg578/tabular"
	"github.com/oleg578/tabular/engine"
	"github.com/oleg578/tabular/internal/report"
)

// RunCmd measures read and write throughput for each engine and shape.
type RunCmd struct {
	Engine          []string `help:"Engines to run; all when empty." short:"e"`
	Shape           []string `help:"Record shapes to run (S, N, D, M)." short:"s" default:"S,N,D,M" enum:"S,N,D,M"`
	Count           int      `help:"Records per workload." default:"1048576" short:"n"`
	Rounds          int      `help:"Timed rounds per operation; the fastest is reported." default:"3"`
	PoolStrings     bool     `help:"Intern decoded strings." env:"TABBENCH_POOL_STRINGS"`
	MaxPooledLength int      `help:"Longest string interned when pooling." default:"128"`

	out io.Writer `kong:"-"`
}

// Validate rejects a negative count and fewer than one round.
func (c *RunCmd) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("--count must not be negative")
	}
	if c.Rounds < 1 {
		return fmt.Errorf("--rounds must be at least 1")
	}
	return nil
}

// Run measures every selected engine and shape and prints the results table.
func (c *RunCmd) Run(logger *slog.Logger) error {
	cfg := engine.Config{
		Dialect:         tabular.DefaultDialect,
		PoolStrings:     c.PoolStrings,
		MaxPooledLength: c.MaxPooledLength,
		Logger:          logger,
	}

	names := c.Engine
	if len(names) == 0 {
		names = engine.Names()
	}

	var results []report.Result
	for _, name := range names {
		e, err := engine.New(name, cfg)
		if err != nil {
			return err
		}
		for _, shapeName := range c.Shape {
			s, err := lookupShape(shapeName)
			if err != nil {
				return err
			}
			logger.Info("running workload", "engine", e.Name, "shape", s.name, "records", report.Unit(c.Count), "rounds", c.Rounds)
			res, err := s.run(e, c.Count, c.Rounds)
			if err != nil {
				return err
			}
			for _, r := range res {
				logger.Debug("measured", "engine", r.Engine, "shape", r.Shape, "op", r.Op, "elapsed", r.Elapsed)
			}
			results = append(results, res...)
		}
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	report.Render(out, results)
	return nil
}
