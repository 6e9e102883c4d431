// Package config loads sweep configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-matchbench/internal/bench"
)

// Range is a parameter range, either explicit values or start/stop/step
// with stop excluded.
type Range struct {
	Values []float64 `yaml:"values,omitempty"`
	Start  float64   `yaml:"start,omitempty"`
	Stop   float64   `yaml:"stop,omitempty"`
	Step   float64   `yaml:"step,omitempty"`
}

// Expand returns the values of the range.
func (r Range) Expand() []float64 {
	if len(r.Values) > 0 {
		return r.Values
	}
	return bench.Range(r.Start, r.Stop, r.Step)
}

// MatcherConfig describes the external matcher program.
type MatcherConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	Env     []string `yaml:"env,omitempty"`
	Dir     string   `yaml:"dir,omitempty"`
}

// Config holds the settings of a sweep and its evaluation.
type Config struct {
	Source     string        `yaml:"source"`
	Target     string        `yaml:"target"`
	Categories string        `yaml:"categories,omitempty"`
	Gold       string        `yaml:"gold"`
	Output     string        `yaml:"output"`
	Plots      string        `yaml:"plots"`
	Format     string        `yaml:"format"`
	Matcher    MatcherConfig `yaml:"matcher"`
	Leaf       Range         `yaml:"leaf"`
	Threshold  Range         `yaml:"threshold"`

	Smoothing     float64 `yaml:"smoothing"`
	StructGap     float64 `yaml:"struct_gap"`
	NameThreshold float64 `yaml:"name_threshold"`
	NonLeaf       bool    `yaml:"non_leaf"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Default returns the configuration used when no file is given. The ranges
// are the ones the Cupid experiments were run with.
func Default() *Config {
	return &Config{
		Output:        "cupid-output",
		Plots:         ".",
		Format:        "pdf",
		Leaf:          Range{Start: 0.1, Stop: 1.0, Step: 0.1},
		Threshold:     Range{Start: 0.05, Stop: 0.9, Step: 0.05},
		Smoothing:     0.01,
		StructGap:     0.1,
		NameThreshold: 0.45,
		LogLevel:      "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from MATCHBENCH_* variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Gold, "MATCHBENCH_GOLD")
	set(&c.Output, "MATCHBENCH_OUTPUT")
	set(&c.Plots, "MATCHBENCH_PLOTS")
	set(&c.Format, "MATCHBENCH_FORMAT")
	set(&c.Matcher.Command, "MATCHBENCH_MATCHER")
	set(&c.LogLevel, "MATCHBENCH_LOG_LEVEL")
}

// Grid returns the parameter grid described by the leaf and threshold ranges.
func (c *Config) Grid() bench.Grid {
	return bench.Grid{
		Leaf:      c.Leaf.Expand(),
		Threshold: c.Threshold.Expand(),
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidateSweep checks the settings a sweep needs.
func (c *Config) ValidateSweep() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if c.Target == "" {
		errs = append(errs, errors.New("target is required"))
	}
	if c.Matcher.Command == "" {
		errs = append(errs, errors.New("matcher.command is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if err := c.Grid().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateEvaluate checks the settings an evaluation needs.
func (c *Config) ValidateEvaluate() error {
	var errs []error
	if c.Gold == "" {
		errs = append(errs, errors.New("gold is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	return errors.Join(errs...)
}
