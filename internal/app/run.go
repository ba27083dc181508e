package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"prime-ca/internal/core"
	"prime-ca/internal/engine"
	"prime-ca/internal/gridio"
	pcore "prime-ca/pkg/core"
)

// Run loads the input grid, simulates it and saves the final grid. Nothing is
// written to cfg.Output unless every generation succeeded. Time steps are
// printed to stdout when cfg.Print is set.
func Run(ctx context.Context, cfg *Config, log logrus.FieldLogger, stdout io.Writer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("%w: no output file given", ErrConfig)
	}
	sym, _ := cfg.Symbols()

	grid, err := gridio.Load(cfg.Input, sym)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	size := grid.Size()
	log = log.WithFields(logrus.Fields{"input": cfg.Input, "rows": size.H, "cols": size.W})
	log.Info("grid loaded")

	report := &Report{
		Input:       cfg.Input,
		Output:      cfg.Output,
		Rows:        size.H,
		Cols:        size.W,
		Workers:     cfg.Workers,
		Generations: cfg.Generations,
		Started:     time.Now().UTC(),
	}
	observers := []engine.Observer{report.Observe}
	if cfg.Print {
		observers = append(observers, gridio.PrintObserver(stdout, sym))
	}
	observe := chain(observers...)
	if err := observe(0, grid); err != nil {
		return nil, err
	}

	sim := engine.New(grid, engine.Options{
		Workers:     cfg.Workers,
		Generations: cfg.Generations,
		Observer:    observe,
		Logger:      log,
	})
	if err := sim.Run(ctx); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	final, err := sim.Result()
	if err != nil {
		return nil, err
	}
	report.Elapsed = time.Since(report.Started)

	if err := gridio.Save(cfg.Output, final, sym); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"output":     cfg.Output,
		"population": final.Population(),
		"elapsed":    report.Elapsed.Round(time.Millisecond),
	}).Info("output written")

	if cfg.Report != "" {
		if err := WriteReport(cfg.Report, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func chain(observers ...engine.Observer) engine.Observer {
	return func(generation int, v core.View) error {
		for _, o := range observers {
			if err := o(generation, v); err != nil {
				return err
			}
		}
		return nil
	}
}

// GenerateOptions describes a random grid.
type GenerateOptions struct {
	Rows    int
	Cols    int
	Seed    int64
	Density float64
	Output  string
	Symbols gridio.Symbols
}

// Generate writes a random grid.
func Generate(opts GenerateOptions) error {
	if opts.Rows < 1 || opts.Cols < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrConfig, opts.Rows, opts.Cols)
	}
	if opts.Density < 0 || opts.Density > 1 {
		return fmt.Errorf("%w: density must be within [0,1], got %g", ErrConfig, opts.Density)
	}
	if opts.Output == "" {
		return fmt.Errorf("%w: no output file given", ErrConfig)
	}
	if err := opts.Symbols.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	g := pcore.RandomGrid(opts.Seed, opts.Rows, opts.Cols, opts.Density)
	return gridio.Save(opts.Output, g, opts.Symbols)
}
