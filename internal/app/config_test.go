package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := NewConfig()
	cfg.Bind(fs)
	cfg.BindViewer(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 100, cfg.Generations)
	assert.Equal(t, "O", cfg.Alive)
	assert.Equal(t, ".", cfg.Dead)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadLayersFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: from-file.txt\nworkers: 3\ngenerations: 7\nlog-level: debug\n"), 0o644))
	t.Setenv("PRIMECA_GENERATIONS", "9")

	cfg, err := Load(newFlags(t, "-p", "5"), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.txt", cfg.Input)
	assert.Equal(t, 5, cfg.Workers, "flag beats file")
	assert.Equal(t, 9, cfg.Generations, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := NewConfig()
		c.Input = "in.txt"
		return c
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"zero workers":      func(c *Config) { c.Workers = 0 },
		"negative workers":  func(c *Config) { c.Workers = -2 },
		"negative gens":     func(c *Config) { c.Generations = -1 },
		"no input":          func(c *Config) { c.Input = "" },
		"same symbols":      func(c *Config) { c.Dead = "O" },
		"multi-byte symbol": func(c *Config) { c.Alive = "##" },
		"newline as symbol": func(c *Config) { c.Dead = "\n" },
	}
	for name, mutate := range cases {
		c := valid()
		mutate(c)
		assert.ErrorIs(t, c.Validate(), ErrConfig, name)
	}
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("debug", "json", os.Stderr)
	require.NoError(t, err)

	_, err = NewLogger("loud", "text", os.Stderr)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewLogger("info", "xml", os.Stderr)
	assert.ErrorIs(t, err, ErrConfig)
}
