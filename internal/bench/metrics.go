// Package bench scores matcher output against a gold standard and manages
// the on-disk layout of parameter sweeps.
package bench

import (
	"errors"

	"github.com/jamesainslie/go-matchbench/mapping"
)

// ErrEmptyGold indicates recall was requested against an empty gold standard.
var ErrEmptyGold = errors.New("bench: empty gold standard")

// Config holds scoring parameters.
type Config struct {
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default scoring configuration.
func DefaultConfig() Config {
	return Config{
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results for one run.
type Metrics struct {
	TruePositives  int // candidate pairs found in gold
	FalsePositives int // candidate pairs not in gold
	FalseNegatives int // gold pairs missing from candidate
	Candidates     int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// hits returns the number of candidate pairs present in gold.
func hits(gold, candidate mapping.Set) int {
	idx := gold.Index()
	n := 0
	for _, p := range candidate {
		if _, ok := idx[p]; ok {
			n++
		}
	}
	return n
}

// found returns the number of gold pairs present in candidate.
func found(gold, candidate mapping.Set) int {
	idx := candidate.Index()
	n := 0
	for _, p := range gold {
		if _, ok := idx[p]; ok {
			n++
		}
	}
	return n
}

// Precision is the share of candidate pairs that are in gold.
// An empty candidate scores 0.
func Precision(gold, candidate mapping.Set) float64 {
	if len(candidate) == 0 {
		return 0
	}
	return float64(hits(gold, candidate)) / float64(len(candidate))
}

// Recall is the share of gold pairs that the candidate recovered.
// An empty candidate scores 0. Gold must not be empty; Evaluate reports
// ErrEmptyGold instead of dividing by zero, Recall returns 0.
func Recall(gold, candidate mapping.Set) float64 {
	if len(candidate) == 0 || len(gold) == 0 {
		return 0
	}
	return float64(found(gold, candidate)) / float64(len(gold))
}

// F1 is the harmonic mean of precision and recall, 0 when both are 0.
func F1(precision, recall float64) float64 {
	if precision == 0 && recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// Evaluate compares a candidate mapping set against gold.
func Evaluate(gold, candidate mapping.Set, cfg Config) (Metrics, error) {
	if len(gold) == 0 && len(candidate) > 0 {
		return Metrics{}, ErrEmptyGold
	}

	tp := hits(gold, candidate)
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: len(candidate) - tp,
		FalseNegatives: len(gold) - found(gold, candidate),
		Candidates:     len(candidate),
		Precision:      Precision(gold, candidate),
		Recall:         Recall(gold, candidate),
	}
	m.F1 = F1(m.Precision, m.Recall)

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m, nil
}

// ArgMax returns the index of the largest value, the first one on ties.
// It returns -1 for an empty slice.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
