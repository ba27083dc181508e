package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"prime-ca/internal/core"
)

// Report summarises a finished run.
type Report struct {
	Input       string        `yaml:"input"`
	Output      string        `yaml:"output"`
	Rows        int           `yaml:"rows"`
	Cols        int           `yaml:"cols"`
	Workers     int           `yaml:"workers"`
	Generations int           `yaml:"generations"`
	Started     time.Time     `yaml:"started"`
	Elapsed     time.Duration `yaml:"elapsed"`
	Population  []int         `yaml:"population"`
}

// Observe records the population of a generation.
func (r *Report) Observe(generation int, v core.View) error {
	if generation != len(r.Population) {
		return fmt.Errorf("report expected generation %d, got %d", len(r.Population), generation)
	}
	r.Population = append(r.Population, v.Population())
	return nil
}

// FinalPopulation returns the population after the last recorded generation.
func (r *Report) FinalPopulation() int {
	if len(r.Population) == 0 {
		return 0
	}
	return r.Population[len(r.Population)-1]
}

// Marshal renders the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteReport stores r as YAML at path.
func WriteReport(path string, r *Report) error {
	out, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
