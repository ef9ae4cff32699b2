package pipeline

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/katalvlaran/choreo/chaos"
	"github.com/katalvlaran/choreo/core"
	"github.com/katalvlaran/choreo/cspace"
	"github.com/katalvlaran/choreo/interp"
	"github.com/katalvlaran/choreo/search"
)

// ErrInvalidConfig wraps every configuration problem.
var ErrInvalidConfig = fmt.Errorf("pipeline: invalid config: %w", core.ErrPrecondition)

// Config is the YAML run configuration.
type Config struct {
	// Interval is the pose quantization step in degrees.
	Interval float64 `yaml:"interval"`

	Lorenz    chaos.Lorenz `yaml:"lorenz"`
	MappingIC []float64    `yaml:"mapping_ic"`
	ShuffleIC []float64    `yaml:"shuffle_ic"`

	// Steps is the integration step count; zero means frames-1.
	Steps    int            `yaml:"steps"`
	StepSize float64        `yaml:"step_size"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`

	Search  SearchConfig `yaml:"search"`
	Workers int          `yaml:"workers"`
	Store   StoreConfig  `yaml:"store"`
}

// AdaptiveConfig switches integration to adaptive RK4.
type AdaptiveConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Tolerance   float64 `yaml:"tolerance"`
	MaxHalvings int     `yaml:"max_halvings"`
}

// SearchConfig selects and bounds the bridging search.
type SearchConfig struct {
	Strategy      string `yaml:"strategy"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxExpansions int    `yaml:"max_expansions"`
}

// StoreConfig locates the graph store. An empty Dir without InMemory
// disables persistence.
type StoreConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

// Enabled reports whether a store should be opened.
func (s StoreConfig) Enabled() bool { return s.InMemory || s.Dir != "" }

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Interval:  cspace.DefaultInterval,
		Lorenz:    chaos.DefaultLorenz(),
		MappingIC: []float64{1, 1, 1},
		ShuffleIC: []float64{1.01, 1, 1},
		StepSize:  0.01,
		Adaptive:  AdaptiveConfig{Tolerance: 1e-6, MaxHalvings: 64},
		Search: SearchConfig{
			Strategy:      interp.BestFirst.String(),
			MaxDepth:      16,
			MaxExpansions: 200000,
		},
		Workers: 4,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pipeline: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pipeline: parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig))
	}

	if !(c.Interval > 0 && c.Interval <= 360) {
		bad("interval %g not in (0, 360]", c.Interval)
	}
	if len(c.MappingIC) != 3 {
		bad("mapping_ic needs 3 components, has %d", len(c.MappingIC))
	}
	if len(c.ShuffleIC) != 3 {
		bad("shuffle_ic needs 3 components, has %d", len(c.ShuffleIC))
	}
	if c.Steps < 0 {
		bad("steps %d is negative", c.Steps)
	}
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		bad("step_size %g must be positive", c.StepSize)
	}
	if c.Adaptive.Enabled && !(c.Adaptive.Tolerance > 0) {
		bad("adaptive.tolerance %g must be positive", c.Adaptive.Tolerance)
	}
	if c.Adaptive.Enabled && c.Adaptive.MaxHalvings < 1 {
		bad("adaptive.max_halvings %d must be >= 1", c.Adaptive.MaxHalvings)
	}
	if _, err := interp.ParseStrategy(c.Search.Strategy); err != nil {
		bad("search.strategy %q", c.Search.Strategy)
	}
	if c.Search.MaxDepth < 1 {
		bad("search.max_depth %d must be >= 1", c.Search.MaxDepth)
	}
	if c.Search.MaxExpansions < 0 {
		bad("search.max_expansions %d is negative", c.Search.MaxExpansions)
	}
	if c.Workers < 1 {
		bad("workers %d must be >= 1", c.Workers)
	}
	return errors.Join(errs...)
}

func (c Config) searchOptions() []search.Option {
	return []search.Option{
		search.WithMaxDepth(c.Search.MaxDepth),
		search.WithMaxExpansions(c.Search.MaxExpansions),
	}
}

func (c Config) adaptiveOptions() []chaos.MapperOption {
	if !c.Adaptive.Enabled {
		return nil
	}
	return []chaos.MapperOption{
		chaos.WithAdaptive(c.Adaptive.Tolerance, chaos.WithMaxHalvings(c.Adaptive.MaxHalvings)),
	}
}
