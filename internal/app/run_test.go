package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prime-ca/internal/gridio"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunWritesFinalGrid(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeFile(t, dir, "in.txt", "........\n........\n")
	cfg.Output = filepath.Join(dir, "out.txt")
	cfg.Report = filepath.Join(dir, "report.yaml")
	cfg.Workers = 4

	report, err := Run(context.Background(), cfg, quietLogger(), io.Discard)
	require.NoError(t, err)
	assert.Len(t, report.Population, 101)

	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "........\n........\n", string(out))

	back, err := ReadReport(cfg.Report)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Rows)
	assert.Equal(t, 8, back.Cols)
	assert.Equal(t, 4, back.Workers)
	assert.Len(t, back.Population, 101)
}

func TestRunFullTwoRowGridDiesAfterOneGeneration(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeFile(t, dir, "in.txt", "OOOOOOOO\nOOOOOOOO\n")
	cfg.Output = filepath.Join(dir, "out.txt")
	cfg.Generations = 1
	cfg.Print = true

	var stdout bytes.Buffer
	report, err := Run(context.Background(), cfg, quietLogger(), &stdout)
	require.NoError(t, err)
	assert.Equal(t, []int{16, 0}, report.Population)
	assert.Equal(t, 0, report.FinalPopulation())
	assert.Equal(t, "\ntime_step_0\nOOOOOOOO\nOOOOOOOO\n\ntime_step_1\n........\n........\n", stdout.String())
}

func TestRunRejectsBadConfigBeforeLoading(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = filepath.Join(dir, "does-not-exist.txt")
	cfg.Output = filepath.Join(dir, "out.txt")
	cfg.Workers = 0

	_, err := Run(context.Background(), cfg, quietLogger(), io.Discard)
	assert.ErrorIs(t, err, ErrConfig)
	assert.NoFileExists(t, cfg.Output)
}

func TestRunMalformedInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeFile(t, dir, "in.txt", "OO.\nO.\n")
	cfg.Output = filepath.Join(dir, "out.txt")

	_, err := Run(context.Background(), cfg, quietLogger(), io.Discard)
	assert.ErrorIs(t, err, gridio.ErrMalformed)
	assert.NoFileExists(t, cfg.Output)
}

// cancelOnWrite cancels a run once the printed trace reaches a marker.
type cancelOnWrite struct {
	marker string
	cancel context.CancelFunc
}

func (w *cancelOnWrite) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.marker) {
		w.cancel()
	}
	return len(p), nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunCancelledMidRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeFile(t, dir, "in.txt", "O..O\n.OO.\n..O.\n")
	cfg.Output = filepath.Join(dir, "out.txt")
	cfg.Report = filepath.Join(dir, "report.yaml")
	cfg.Workers = 2
	cfg.Print = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := Run(ctx, cfg, quietLogger(), &cancelOnWrite{marker: "time_step_3", cancel: cancel})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, cfg.Output)
	assert.NoFileExists(t, cfg.Report)
}

func TestRunObserverFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeFile(t, dir, "in.txt", "O.\n.O\n")
	cfg.Output = filepath.Join(dir, "out.txt")
	cfg.Print = true

	_, err := Run(context.Background(), cfg, quietLogger(), failingWriter{})
	assert.Error(t, err)
	assert.NoFileExists(t, cfg.Output)
}

func TestRunRequiresOutput(t *testing.T) {
	cfg := NewConfig()
	cfg.Input = writeFile(t, t.TempDir(), "in.txt", "O\n")
	_, err := Run(context.Background(), cfg, quietLogger(), io.Discard)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestGenerateIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	opts := GenerateOptions{Rows: 6, Cols: 9, Seed: 3, Density: 0.5, Symbols: gridio.DefaultSymbols()}

	opts.Output = filepath.Join(dir, "a.txt")
	require.NoError(t, Generate(opts))
	opts.Output = filepath.Join(dir, "b.txt")
	require.NoError(t, Generate(opts))

	a, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(a), "\n"), "\n"), 6)
}

func TestGenerateValidates(t *testing.T) {
	base := GenerateOptions{Rows: 2, Cols: 2, Density: 0.5, Output: "x", Symbols: gridio.DefaultSymbols()}
	bad := []GenerateOptions{base, base, base}
	bad[0].Rows = 0
	bad[1].Density = 1.5
	bad[2].Output = ""
	for _, opts := range bad {
		assert.ErrorIs(t, Generate(opts), ErrConfig)
	}
}
