package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"prime-ca/internal/core"
	"prime-ca/internal/sims/primelife"
)

// ErrWorker is returned, wrapped in a *WorkerError, when a worker fails
// during a pass.
var ErrWorker = errors.New("worker failed")

// Pass names one of the two phases of a generation.
type Pass string

const (
	// PassSum computes neighbour counts.
	PassSum Pass = "sum"
	// PassTransition applies the automaton rule.
	PassTransition Pass = "transition"
)

// WorkerError describes the failure of a single worker.
type WorkerError struct {
	Worker int
	Pass   Pass
	Rows   core.RowRange
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d %s pass on rows %v: %v", e.Worker, e.Pass, e.Rows, e.Err)
}

// Unwrap exposes both ErrWorker and the underlying cause.
func (e *WorkerError) Unwrap() []error { return []error{ErrWorker, e.Err} }

// RowFunc processes one row range of g.
type RowFunc func(g *core.Grid, rr core.RowRange) error

// Scheduler runs the two passes of a generation over per-worker row ranges.
type Scheduler struct {
	workers int
	log     logrus.FieldLogger

	sum        RowFunc
	transition RowFunc
}

// NewScheduler returns a scheduler for the given worker count. Counts below
// one are treated as one.
func NewScheduler(workers int, log logrus.FieldLogger) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = discardLogger()
	}
	return &Scheduler{
		workers: workers,
		log:     log,
		sum: func(g *core.Grid, rr core.RowRange) error {
			primelife.SumRows(g, rr)
			return nil
		},
		transition: func(g *core.Grid, rr core.RowRange) error {
			primelife.TransitionRows(g, rr)
			return nil
		},
	}
}

// Workers returns the configured worker count.
func (s *Scheduler) Workers() int { return s.workers }

// Generation advances g by one generation. Every worker finishes the sum pass
// before any worker starts the transition pass.
func (s *Scheduler) Generation(ctx context.Context, g *core.Grid) error {
	if s.workers == 1 {
		all := core.RowRange{Start: 0, End: g.Size().H}
		if err := s.serial(g, PassSum, all, s.sum); err != nil {
			return err
		}
		return s.serial(g, PassTransition, all, s.transition)
	}

	ranges := core.Partition(g.Size().H, s.workers)
	if err := s.forkJoin(ctx, g, PassSum, ranges, s.sum); err != nil {
		return err
	}
	return s.forkJoin(ctx, g, PassTransition, ranges, s.transition)
}

func (s *Scheduler) serial(g *core.Grid, pass Pass, rr core.RowRange, fn RowFunc) error {
	return runWorker(0, pass, rr, func() error { return fn(g, rr) })
}

// forkJoin starts one goroutine per non-empty range and waits for all of them.
func (s *Scheduler) forkJoin(ctx context.Context, g *core.Grid, pass Pass, ranges []core.RowRange, fn RowFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var eg errgroup.Group
	for i, rr := range ranges {
		if rr.Empty() {
			continue
		}
		eg.Go(func() error {
			return runWorker(i, pass, rr, func() error { return fn(g, rr) })
		})
	}
	if err := eg.Wait(); err != nil {
		s.log.WithFields(logrus.Fields{"pass": pass, "workers": s.workers}).WithError(err).Error("pass aborted")
		return err
	}
	return nil
}

// runWorker converts errors and panics raised by fn into a *WorkerError.
func runWorker(id int, pass Pass, rr core.RowRange, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerError{Worker: id, Pass: pass, Rows: rr, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if ferr := fn(); ferr != nil {
		return &WorkerError{Worker: id, Pass: pass, Rows: rr, Err: ferr}
	}
	return nil
}
