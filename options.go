package matchbench

import (
	"log/slog"

	"github.com/jamesainslie/go-matchbench/internal/bench"
)

// Option configures a Runner or an Evaluator.
type Option func(*config)

type config struct {
	smoothing     float64
	structGap     float64
	nameThreshold float64
	nonLeaf       bool
	allowPartial  bool
	grid          *Grid
	scoring       bench.Config
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		smoothing:     0.01,
		structGap:     0.1,
		nameThreshold: 0.45,
		scoring:       bench.DefaultConfig(),
		logger:        slog.Default(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSmoothing sets the half width of the acceptance band around each
// threshold (default: 0.01).
func WithSmoothing(f float64) Option {
	return func(c *config) {
		if f >= 0 {
			c.smoothing = f
		}
	}
}

// WithStructGap sets how far the non-leaf structural weight sits above the
// leaf weight (default: 0.1).
func WithStructGap(g float64) Option {
	return func(c *config) {
		c.structGap = g
	}
}

// WithNameThreshold sets the name similarity threshold passed to the
// matcher (default: 0.45).
func WithNameThreshold(t float64) Option {
	return func(c *config) {
		c.nameThreshold = t
	}
}

// WithNonLeaf enables writing non-leaf mappings when the matcher supports
// them (default: false).
func WithNonLeaf(enabled bool) Option {
	return func(c *config) {
		c.nonLeaf = enabled
	}
}

// WithAllowPartial lets an Evaluator score an incomplete sweep, logging a
// warning instead of failing (default: false).
func WithAllowPartial(allow bool) Option {
	return func(c *config) {
		c.allowPartial = allow
	}
}

// WithGrid restricts evaluation to the cells of g.
func WithGrid(g Grid) Option {
	return func(c *config) {
		c.grid = &g
	}
}

// WithWeights sets the precision and recall weights of the weighted score
// (default: 1, 1).
func WithWeights(precision, recall float64) Option {
	return func(c *config) {
		c.scoring.PrecisionWeight = precision
		c.scoring.RecallWeight = recall
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
