package gridio

import (
	"fmt"
	"io"

	"prime-ca/internal/core"
)

// PrintStep writes a "time_step_N" header followed by the grid.
func PrintStep(w io.Writer, generation int, v core.View, sym Symbols) error {
	if _, err := fmt.Fprintf(w, "\ntime_step_%d\n", generation); err != nil {
		return err
	}
	return Write(w, v, sym)
}

// PrintObserver returns an engine observer that prints every generation to w.
func PrintObserver(w io.Writer, sym Symbols) func(int, core.View) error {
	return func(generation int, v core.View) error {
		return PrintStep(w, generation, v, sym)
	}
}
