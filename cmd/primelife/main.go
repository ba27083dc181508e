package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prime-ca/internal/app"
	"prime-ca/internal/gridio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, app.ErrConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:   "primelife -i INPUT -o OUTPUT [-p WORKERS]",
		Short: "Simulate the prime/parity cellular automaton on a toroidal grid",
		Long: `primelife reads a grid of 'O' (alive) and '.' (dead) cells, advances it
for a fixed number of generations and writes the final grid.

A living cell survives only if its number of live neighbours is prime.
A dead cell comes alive if its number of live neighbours is non-zero and even.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			log, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			_, err = app.Run(cmd.Context(), cfg, log, cmd.OutOrStdout())
			return err
		},
	}
	app.NewConfig().Bind(root.Flags())
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")

	root.AddCommand(newGenerateCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	opts := app.GenerateOptions{Rows: 32, Cols: 32, Seed: 1, Density: 0.5}
	var alive, dead string
	cmd := &cobra.Command{
		Use:   "generate -o OUTPUT",
		Short: "Write a random grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(alive) != 1 || len(dead) != 1 {
				return fmt.Errorf("%w: symbols must be single bytes", app.ErrConfig)
			}
			opts.Symbols = gridio.Symbols{Alive: alive[0], Dead: dead[0]}
			return app.Generate(opts)
		},
	}
	sym := gridio.DefaultSymbols()
	fs := cmd.Flags()
	fs.IntVar(&opts.Rows, "rows", opts.Rows, "number of rows")
	fs.IntVar(&opts.Cols, "cols", opts.Cols, "number of columns")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	fs.Float64Var(&opts.Density, "density", opts.Density, "probability of a cell being alive")
	fs.StringVarP(&opts.Output, "output", "o", "", "output grid file (- for stdout)")
	fs.StringVar(&alive, "alive", string(sym.Alive), "symbol of a living cell")
	fs.StringVar(&dead, "dead", string(sym.Dead), "symbol of a dead cell")
	return cmd
}
