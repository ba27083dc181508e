package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"prime-ca/internal/engine"
	"prime-ca/internal/gridio"
)

// ErrConfig is wrapped by every configuration validation failure.
var ErrConfig = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. PRIMECA_WORKERS.
const EnvPrefix = "PRIMECA"

// Config represents the parameters of a simulation run.
type Config struct {
	Input       string `mapstructure:"input"`
	Output      string `mapstructure:"output"`
	Workers     int    `mapstructure:"workers"`
	Generations int    `mapstructure:"generations"`
	Print       bool   `mapstructure:"print"`
	Report      string `mapstructure:"report"`
	Alive       string `mapstructure:"alive"`
	Dead        string `mapstructure:"dead"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`

	// Viewer settings.
	Scale int   `mapstructure:"scale"`
	TPS   int   `mapstructure:"tps"`
	Rate  int   `mapstructure:"rate"`
	Seed  int64 `mapstructure:"seed"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	sym := gridio.DefaultSymbols()
	return &Config{
		Workers:     1,
		Generations: engine.DefaultGenerations,
		Alive:       string(sym.Alive),
		Dead:        string(sym.Dead),
		LogLevel:    "info",
		LogFormat:   "text",
		Scale:       4,
		TPS:         60,
		Rate:        10,
	}
}

// Bind attaches the run parameters to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Input, "input", "i", c.Input, "input grid file (- for stdin)")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output grid file (- for stdout)")
	fs.IntVarP(&c.Workers, "workers", "p", c.Workers, "number of parallel workers")
	fs.IntVarP(&c.Generations, "generations", "g", c.Generations, "number of generations to simulate")
	fs.BoolVar(&c.Print, "print", c.Print, "print every time step to stdout")
	fs.StringVar(&c.Report, "report", c.Report, "write a YAML run report to this file")
	fs.StringVar(&c.Alive, "alive", c.Alive, "symbol of a living cell")
	fs.StringVar(&c.Dead, "dead", c.Dead, "symbol of a dead cell")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (text, json)")
}

// BindViewer attaches the interactive viewer parameters to the FlagSet.
func (c *Config) BindViewer(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed used by the random reset key")
}

// Load layers the configuration: explicitly set flags win over PRIMECA_*
// environment variables, which win over the YAML file at configFile (if
// any), which wins over the defaults.
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	def := NewConfig()
	v.SetDefault("workers", def.Workers)
	v.SetDefault("generations", def.Generations)
	v.SetDefault("alive", def.Alive)
	v.SetDefault("dead", def.Dead)
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("log-format", def.LogFormat)
	v.SetDefault("scale", def.Scale)
	v.SetDefault("tps", def.TPS)
	v.SetDefault("rate", def.Rate)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes a Config from v without validating it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings shared by every entry point.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be a positive integer, got %d", ErrConfig, c.Workers)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrConfig, c.Generations)
	}
	if c.Input == "" {
		return fmt.Errorf("%w: no input grid given", ErrConfig)
	}
	if _, err := c.Symbols(); err != nil {
		return err
	}
	return nil
}

// Symbols returns the grid alphabet.
func (c *Config) Symbols() (gridio.Symbols, error) {
	if len(c.Alive) != 1 || len(c.Dead) != 1 {
		return gridio.Symbols{}, fmt.Errorf("%w: symbols must be single bytes, got %q and %q", ErrConfig, c.Alive, c.Dead)
	}
	sym := gridio.Symbols{Alive: c.Alive[0], Dead: c.Dead[0]}
	if err := sym.Validate(); err != nil {
		return gridio.Symbols{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return sym, nil
}
