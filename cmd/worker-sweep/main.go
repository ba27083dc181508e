package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"prime-ca/internal/core"
	"prime-ca/internal/engine"
	pcore "prime-ca/pkg/core"
)

type sweepResult struct {
	workers    int
	elapsed    time.Duration
	population int
	matches    bool
}

func main() {
	rows := flag.Int("rows", 512, "grid rows")
	cols := flag.Int("cols", 512, "grid columns")
	generations := flag.Int("generations", engine.DefaultGenerations, "generations per run")
	maxWorkers := flag.Int("max-workers", runtime.NumCPU(), "largest worker count to try")
	seed := flag.Int64("seed", 1337, "seed for the random grid")
	density := flag.Float64("density", 0.5, "initial live-cell density")
	repeats := flag.Int("repeats", 3, "runs per worker count; the fastest is kept")
	flag.Parse()

	if *maxWorkers < 1 || *repeats < 1 {
		fmt.Fprintln(os.Stderr, "max-workers and repeats must be positive")
		os.Exit(2)
	}

	base := pcore.RandomGrid(*seed, *rows, *cols, *density)
	fmt.Printf("Sweeping 1..%d workers on a %dx%d grid (%d generations, %d repeats)\n",
		*maxWorkers, *rows, *cols, *generations, *repeats)

	ctx := context.Background()
	var reference *core.Grid
	var all []sweepResult
	for workers := 1; workers <= *maxWorkers; workers++ {
		res := sweepResult{workers: workers, elapsed: time.Duration(1<<63 - 1)}
		for r := 0; r < *repeats; r++ {
			final, elapsed, err := runOnce(ctx, base, workers, *generations)
			if err != nil {
				fmt.Fprintf(os.Stderr, "workers=%d: %v\n", workers, err)
				os.Exit(1)
			}
			if elapsed < res.elapsed {
				res.elapsed = elapsed
			}
			if reference == nil {
				reference = final
			}
			res.population = final.Population()
			res.matches = reference.Equal(final)
		}
		all = append(all, res)
		if !res.matches {
			fmt.Printf("MISMATCH: %d workers diverged from the serial result\n", workers)
		}
	}

	serial := all[0].elapsed
	sort.Slice(all, func(i, j int) bool { return all[i].elapsed < all[j].elapsed })

	fmt.Printf("\n%8s %12s %8s %10s %6s\n", "workers", "elapsed", "speedup", "population", "match")
	for _, res := range all {
		speedup := float64(serial) / float64(res.elapsed)
		fmt.Printf("%8d %12s %8.2f %10d %6v\n",
			res.workers, res.elapsed.Round(time.Microsecond), speedup, res.population, res.matches)
	}
}

func runOnce(ctx context.Context, base *core.Grid, workers, generations int) (*core.Grid, time.Duration, error) {
	sim := engine.New(base.Clone(), engine.Options{Workers: workers, Generations: generations})
	start := time.Now()
	if err := sim.Run(ctx); err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(start)
	final, err := sim.Result()
	return final, elapsed, err
}
