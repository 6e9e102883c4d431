package bench

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Layout of a sweep output directory:
//
//	<out>/j-<leafWeight>/test_<threshold>.txt
const (
	WeightDirPrefix   = "j-"
	RunFilePrefix     = "test_"
	NonLeafFilePrefix = "non-leaf_"
	RunFileExt        = ".txt"
)

// decimals is the precision parameter values are rounded to before they are
// used or named, so accumulated float error never reaches a file name.
const decimals = 10

// Grid is the Cartesian product of leaf structural weights and acceptance
// thresholds.
type Grid struct {
	Leaf      []float64
	Threshold []float64
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return len(g.Leaf) * len(g.Threshold)
}

// Validate checks both ranges are non-empty, finite and free of values that
// would collide on disk.
func (g Grid) Validate() error {
	if len(g.Leaf) == 0 {
		return errors.New("empty leaf weight range")
	}
	if len(g.Threshold) == 0 {
		return errors.New("empty threshold range")
	}
	if err := checkValues("leaf weight", g.Leaf); err != nil {
		return err
	}
	return checkValues("threshold", g.Threshold)
}

func checkValues(what string, values []float64) error {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s %v is not finite", what, v)
		}
		name := FormatValue(v)
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate %s %s", what, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Contains reports whether the grid holds the cell (leaf, threshold).
func (g Grid) Contains(leaf, threshold float64) bool {
	return g.HasLeaf(leaf) && g.HasThreshold(threshold)
}

// HasLeaf reports whether leaf is one of the grid's leaf weights.
func (g Grid) HasLeaf(leaf float64) bool {
	return containsValue(g.Leaf, leaf)
}

// HasThreshold reports whether threshold is one of the grid's thresholds.
func (g Grid) HasThreshold(threshold float64) bool {
	return containsValue(g.Threshold, threshold)
}

func containsValue(values []float64, v float64) bool {
	for _, x := range values {
		if Round(x) == Round(v) {
			return true
		}
	}
	return false
}

// Range generates values from start towards stop (exclusive) with the given
// step. Values are computed from the index, not accumulated, and rounded.
func Range(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop-start)/step - 1e-9))
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, Round(start+float64(i)*step))
	}
	return values
}

// Round rounds v to the precision used for parameter names.
func Round(v float64) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

// FormatValue renders a parameter value the way it appears in names: the
// shortest decimal form of the rounded value, with at least one fractional
// digit so names of one magnitude sort lexicographically in value order
// (test_0.0.txt before test_0.05.txt).
func FormatValue(v float64) string {
	s := strconv.FormatFloat(Round(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WeightDirName returns the directory name for a leaf weight.
func WeightDirName(leaf float64) string {
	return WeightDirPrefix + FormatValue(leaf)
}

// RunFileName returns the leaf mapping file name for a threshold.
func RunFileName(threshold float64) string {
	return RunFilePrefix + FormatValue(threshold) + RunFileExt
}

// NonLeafFileName returns the non-leaf mapping file name for a threshold.
func NonLeafFileName(threshold float64) string {
	return NonLeafFilePrefix + FormatValue(threshold) + RunFileExt
}

// ParseWeightDir recovers the leaf weight from a directory name.
func ParseWeightDir(name string) (float64, bool) {
	return parseValue(name, WeightDirPrefix, "")
}

// ParseRunFile recovers the threshold from a leaf mapping file name.
func ParseRunFile(name string) (float64, bool) {
	return parseValue(name, RunFilePrefix, RunFileExt)
}

func parseValue(name, prefix, suffix string) (float64, bool) {
	s, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, suffix)
	if !ok || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
