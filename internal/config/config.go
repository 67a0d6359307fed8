// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the lvlattice command and
// translates it into lattice options. Command line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvlattice/lattice"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Algorithm names accepted in reduce.algorithm.
const (
	AlgoSize = "size"
	AlgoLLL  = "lll"
	AlgoDeep = "deep"
)

// Config is the root document.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Reduce  ReduceConfig  `yaml:"reduce"`
	Enum    EnumConfig    `yaml:"enum"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Bench   BenchConfig   `yaml:"bench"`
}

// LatticeConfig describes the generated basis.
type LatticeConfig struct {
	Dimension int   `yaml:"dimension"`         // n rows
	Columns   int   `yaml:"columns,omitempty"` // m, 0 means n
	Seed      int64 `yaml:"seed"`
	SeedMin   int64 `yaml:"seed_min"`
	SeedMax   int64 `yaml:"seed_max"`
}

// ReduceConfig selects and parameterizes the reduction.
type ReduceConfig struct {
	Algorithm       string  `yaml:"algorithm"`
	Delta           float64 `yaml:"delta"`
	Depth           int     `yaml:"depth"`
	MaxIterations   int     `yaml:"max_iterations"`
	CheckpointEvery int     `yaml:"checkpoint_every"`
}

// EnumConfig parameterizes the enumeration.
type EnumConfig struct {
	RadiusSquared float64 `yaml:"radius_squared"` // 0 means ‖b*_0‖²
	Shrink        float64 `yaml:"shrink"`
	MaxNodes      int     `yaml:"max_nodes"`
}

// LogConfig selects the handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// ProgressPerSecond throttles progress records; 0 disables them.
	ProgressPerSecond float64 `yaml:"progress_per_second"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// BenchConfig sizes the benchmark worker pool.
type BenchConfig struct {
	Trials  int `yaml:"trials"`
	Workers int `yaml:"workers"`
}

// DefaultConfig mirrors the lattice package defaults.
func DefaultConfig() Config {
	return Config{
		Lattice: LatticeConfig{
			Dimension: 10,
			Seed:      1,
			SeedMin:   lattice.DefaultSeedMin,
			SeedMax:   lattice.DefaultSeedMax,
		},
		Reduce: ReduceConfig{
			Algorithm:       AlgoLLL,
			Delta:           lattice.DefaultDelta,
			MaxIterations:   lattice.DefaultMaxIterations,
			CheckpointEvery: lattice.DefaultCheckpointEvery,
		},
		Enum: EnumConfig{
			Shrink: lattice.DefaultShrink,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			Trials:  8,
			Workers: 4,
		},
	}
}

// Load reads path over DefaultConfig and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over DefaultConfig. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Write stores cfg as YAML, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks ranges that the lattice package would otherwise reject
// later with less context.
func (c Config) Validate() error {
	var errs []error
	if c.Lattice.Dimension < 1 {
		errs = append(errs, fmt.Errorf("lattice.dimension must be >= 1 (%d)", c.Lattice.Dimension))
	}
	if c.Lattice.Columns != 0 && c.Lattice.Columns < c.Lattice.Dimension {
		errs = append(errs, fmt.Errorf("lattice.columns %d < dimension %d", c.Lattice.Columns, c.Lattice.Dimension))
	}
	if c.Lattice.SeedMin > c.Lattice.SeedMax {
		errs = append(errs, fmt.Errorf("lattice.seed_min %d > seed_max %d", c.Lattice.SeedMin, c.Lattice.SeedMax))
	}
	switch c.Reduce.Algorithm {
	case AlgoSize, AlgoLLL, AlgoDeep:
	default:
		errs = append(errs, fmt.Errorf("reduce.algorithm %q not in {size, lll, deep}", c.Reduce.Algorithm))
	}
	if !(c.Reduce.Delta > 0.25 && c.Reduce.Delta < 1) {
		errs = append(errs, fmt.Errorf("reduce.delta %v not in (0.25, 1)", c.Reduce.Delta))
	}
	if c.Reduce.Depth < 0 {
		errs = append(errs, fmt.Errorf("reduce.depth cannot be negative (%d)", c.Reduce.Depth))
	}
	if c.Reduce.MaxIterations <= 0 || c.Reduce.CheckpointEvery <= 0 {
		errs = append(errs, errors.New("reduce.max_iterations and reduce.checkpoint_every must be positive"))
	}
	if c.Enum.RadiusSquared < 0 {
		errs = append(errs, fmt.Errorf("enum.radius_squared cannot be negative (%v)", c.Enum.RadiusSquared))
	}
	if !(c.Enum.Shrink > 0 && c.Enum.Shrink <= 1) {
		errs = append(errs, fmt.Errorf("enum.shrink %v not in (0, 1]", c.Enum.Shrink))
	}
	if c.Enum.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("enum.max_nodes cannot be negative (%d)", c.Enum.MaxNodes))
	}
	if c.Bench.Trials < 1 || c.Bench.Workers < 1 {
		errs = append(errs, errors.New("bench.trials and bench.workers must be >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Cols returns the column count, defaulting to the dimension.
func (c LatticeConfig) Cols() int {
	if c.Columns == 0 {
		return c.Dimension
	}

	return c.Columns
}

// BuildOptions returns the lattice construction options for seed.
func (c LatticeConfig) BuildOptions(seed int64) []lattice.BuildOption {
	return []lattice.BuildOption{
		lattice.WithSeed(seed),
		lattice.WithSeedRange(c.SeedMin, c.SeedMax),
	}
}

// Options returns the reduction options; extra options are appended.
func (c ReduceConfig) Options(extra ...lattice.Option) []lattice.Option {
	opts := []lattice.Option{
		lattice.WithDelta(c.Delta),
		lattice.WithDepth(c.Depth),
		lattice.WithMaxIterations(c.MaxIterations),
		lattice.WithCheckpointEvery(c.CheckpointEvery),
	}

	return append(opts, extra...)
}

// Options returns the enumeration options; reduce supplies δ, the
// checkpoint interval and any extra reduction options (logger, metrics, ...).
func (c EnumConfig) Options(reduce ReduceConfig, extra ...lattice.Option) []lattice.EnumOption {
	opts := []lattice.EnumOption{
		lattice.WithShrink(c.Shrink),
		lattice.WithMaxNodes(c.MaxNodes),
		lattice.WithEnumDelta(reduce.Delta),
		lattice.WithReduceOptions(append([]lattice.Option{lattice.WithCheckpointEvery(reduce.CheckpointEvery)}, extra...)...),
	}
	if c.RadiusSquared > 0 {
		opts = append(opts, lattice.WithRadiusSquared(c.RadiusSquared))
	}

	return opts
}
