//go:build ebiten

package main

import (
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"prime-ca/internal/app"
	"prime-ca/internal/engine"
	"prime-ca/internal/gridio"
)

func main() {
	defaults := app.NewConfig()
	defaults.Bind(pflag.CommandLine)
	defaults.BindViewer(pflag.CommandLine)
	configFile := pflag.String("config", "", "YAML configuration file")
	pflag.Parse()

	cfg, err := app.Load(pflag.CommandLine, *configFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	sym, _ := cfg.Symbols()

	grid, err := gridio.Load(cfg.Input, sym)
	if err != nil {
		log.Fatal(err)
	}
	sim := engine.NewStepper(grid, engine.Options{
		Workers:     cfg.Workers,
		Generations: cfg.Generations,
		Logger:      logger,
	})

	game := app.New(sim, cfg.Scale, cfg.Rate, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("primelife — " + cfg.Input)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale+app.StatusHeight)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
