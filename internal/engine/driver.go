// Package engine drives the prime/parity automaton: it schedules the two
// passes of every generation across workers and sequences generations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"prime-ca/internal/core"
)

// DefaultGenerations is the number of generations a run advances by default.
const DefaultGenerations = 100

var (
	// ErrNotCompleted is returned by Result before the run has finished.
	ErrNotCompleted = errors.New("simulation not completed")
	// ErrFinished is returned by Step once the run has completed or failed.
	ErrFinished = errors.New("simulation already finished")
)

// State is the lifecycle state of a Simulation.
type State int

const (
	Initialized State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Observer is called after every generation with the generation number and a
// read-only view of the settled grid. A non-nil error aborts the run.
type Observer func(generation int, v core.View) error

// Options configures a Simulation.
type Options struct {
	Workers int
	// Generations is the number of generations Run advances. Zero means the
	// grid is returned unchanged; a negative value selects DefaultGenerations.
	Generations int
	Observer    Observer
	Logger      logrus.FieldLogger
}

// Simulation advances a grid through a fixed number of generations.
type Simulation struct {
	grid        *core.Grid
	sched       *Scheduler
	generations int
	observer    Observer
	log         logrus.FieldLogger

	state      State
	generation int
}

// New returns a simulation over g. The simulation owns g from now on.
func New(g *core.Grid, opts Options) *Simulation {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	gens := opts.Generations
	if gens < 0 {
		gens = DefaultGenerations
	}
	return &Simulation{
		grid:        g,
		sched:       NewScheduler(opts.Workers, log),
		generations: gens,
		observer:    opts.Observer,
		log:         log,
		state:       Initialized,
	}
}

// State returns the current lifecycle state.
func (s *Simulation) State() State { return s.state }

// Generation returns the number of completed generations.
func (s *Simulation) Generation() int { return s.generation }

// Generations returns the total number of generations the run advances.
func (s *Simulation) Generations() int { return s.generations }

// View exposes the grid read-only.
func (s *Simulation) View() core.View { return s.grid }

// Step advances exactly one generation and notifies the observer. Once the
// generation bound is reached it leaves the grid alone and returns ErrFinished.
func (s *Simulation) Step(ctx context.Context) error {
	if s.state != Failed && s.generation >= s.generations {
		s.state = Completed
	}
	if s.state == Completed || s.state == Failed {
		return fmt.Errorf("step after generation %d: %w (state %s)", s.generation, ErrFinished, s.state)
	}
	s.state = Running

	if err := s.sched.Generation(ctx, s.grid); err != nil {
		return s.fail(fmt.Errorf("generation %d: %w", s.generation+1, err))
	}
	s.generation++

	s.log.WithFields(logrus.Fields{
		"generation": s.generation,
		"population": s.grid.Population(),
	}).Debug("generation complete")

	if s.observer != nil {
		if err := s.observer(s.generation, s.grid); err != nil {
			return s.fail(fmt.Errorf("observer at generation %d: %w", s.generation, err))
		}
	}
	if s.generation >= s.generations {
		s.state = Completed
	}
	return nil
}

// Run advances the remaining generations and completes the simulation.
func (s *Simulation) Run(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{
		"rows":        s.grid.Size().H,
		"cols":        s.grid.Size().W,
		"workers":     s.sched.Workers(),
		"generations": s.generations,
	}).Info("simulation started")

	for s.generation < s.generations {
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	if s.state == Failed {
		return fmt.Errorf("run after generation %d: %w (state %s)", s.generation, ErrFinished, s.state)
	}
	s.state = Completed

	s.log.WithFields(logrus.Fields{
		"generation": s.generation,
		"population": s.grid.Population(),
	}).Info("simulation completed")
	return nil
}

// Result returns the final grid once the simulation has completed.
func (s *Simulation) Result() (*core.Grid, error) {
	if s.state != Completed {
		return nil, fmt.Errorf("%w (state %s)", ErrNotCompleted, s.state)
	}
	return s.grid, nil
}

func (s *Simulation) fail(err error) error {
	s.state = Failed
	return err
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
