package matchbench

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

// Plotter renders the curves of one leaf weight and returns the path of the
// rendered artifact.
type Plotter interface {
	Plot(leaf float64, thresholds, precision, recall, f1 []float64) (string, error)
}

// Curve holds the scores of every threshold evaluated for one leaf weight,
// as parallel slices ordered by threshold.
type Curve struct {
	LeafWeight    float64
	Thresholds    []float64
	Precision     []float64
	Recall        []float64
	F1            []float64
	WeightedScore []float64
	Sizes         []int  // candidate mapping count per threshold
	Artifact      string // rendered plot, if any
}

// Best returns the threshold with the highest F1, the first one on ties.
// ok is false for an empty curve.
func (c Curve) Best() (threshold, f1 float64, ok bool) {
	i := bench.ArgMax(c.F1)
	if i < 0 {
		return 0, 0, false
	}
	return c.Thresholds[i], c.F1[i], true
}

// Evaluator scores a sweep directory against a gold standard.
type Evaluator struct {
	plotter Plotter
	cfg     config
}

// NewEvaluator creates an Evaluator. p may be nil to skip rendering.
func NewEvaluator(p Plotter, opts ...Option) *Evaluator {
	return &Evaluator{
		plotter: p,
		cfg:     newConfig(opts),
	}
}

// Evaluate loads the gold standard once, scores every run file under
// sweepDir and renders one plot per leaf weight. Curves are returned in
// ascending leaf weight order.
func (e *Evaluator) Evaluate(ctx context.Context, goldFile, sweepDir string) ([]Curve, error) {
	gold, err := mapping.ParseFile(goldFile)
	if err != nil {
		return nil, fmt.Errorf("load gold standard: %w", err)
	}
	if len(gold) == 0 {
		return nil, fmt.Errorf("%s: %w", goldFile, bench.ErrEmptyGold)
	}

	dirs, err := bench.ScanSweep(sweepDir, e.cfg.logger)
	if err != nil {
		return nil, err
	}
	if e.cfg.grid != nil {
		dirs = restrict(dirs, *e.cfg.grid)
	}

	if err := e.checkComplete(sweepDir, dirs); err != nil {
		if !e.cfg.allowPartial {
			return nil, err
		}
		e.cfg.logger.Warn("evaluating partial sweep", "error", err)
	}

	curves := make([]Curve, 0, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		curve, err := e.score(gold, dir)
		if err != nil {
			return nil, err
		}

		if e.plotter != nil && len(curve.Thresholds) > 0 {
			curve.Artifact, err = e.plotter.Plot(curve.LeafWeight, curve.Thresholds, curve.Precision, curve.Recall, curve.F1)
			if err != nil {
				return nil, fmt.Errorf("plot leaf %s: %w", bench.FormatValue(curve.LeafWeight), err)
			}
		}

		if th, f1, ok := curve.Best(); ok {
			e.cfg.logger.Info("leaf weight scored",
				"leaf", curve.LeafWeight,
				"runs", len(curve.Thresholds),
				"best_threshold", th,
				"best_f1", f1,
				"plot", curve.Artifact)
		}
		curves = append(curves, curve)
	}

	return curves, nil
}

func (e *Evaluator) score(gold mapping.Set, dir bench.WeightDir) (Curve, error) {
	curve := Curve{LeafWeight: dir.LeafWeight}
	for _, run := range dir.Runs {
		candidate, err := mapping.ParseFile(run.Path)
		if err != nil {
			return Curve{}, err
		}
		m, err := bench.Evaluate(gold, candidate, e.cfg.scoring)
		if err != nil {
			return Curve{}, fmt.Errorf("%s: %w", run.Path, err)
		}

		curve.Thresholds = append(curve.Thresholds, run.Threshold)
		curve.Precision = append(curve.Precision, m.Precision)
		curve.Recall = append(curve.Recall, m.Recall)
		curve.F1 = append(curve.F1, m.F1)
		curve.WeightedScore = append(curve.WeightedScore, m.WeightedScore)
		curve.Sizes = append(curve.Sizes, m.Candidates)
	}
	return curve, nil
}

// checkComplete verifies every expected cell has a run file. The expected
// grid is the one passed with WithGrid, else the one in the sweep manifest.
// Without either, all weight directories must hold the same number of runs.
func (e *Evaluator) checkComplete(sweepDir string, dirs []bench.WeightDir) error {
	var problems []string

	expected := e.cfg.grid
	manifest, err := bench.ReadManifest(sweepDir)
	switch {
	case err == nil:
		if manifest.Status != bench.StatusComplete {
			problems = append(problems, fmt.Sprintf("manifest status %s", manifest.Status))
		}
		if expected == nil {
			expected = &manifest.Grid
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if len(dirs) == 0 {
		problems = append(problems, "no weight directories")
	}

	if expected != nil {
		for _, leaf := range expected.Leaf {
			dir, ok := lo.Find(dirs, func(d bench.WeightDir) bool {
				return bench.Round(d.LeafWeight) == bench.Round(leaf)
			})
			if !ok {
				problems = append(problems, "missing "+bench.WeightDirName(leaf))
				continue
			}
			have := lo.Map(dir.Thresholds(), func(v float64, _ int) float64 { return bench.Round(v) })
			for _, th := range expected.Threshold {
				if !lo.Contains(have, bench.Round(th)) {
					problems = append(problems, "missing "+bench.WeightDirName(leaf)+"/"+bench.RunFileName(th))
				}
			}
		}
	} else {
		for _, dir := range dirs {
			if len(dir.Runs) != len(dirs[0].Runs) {
				problems = append(problems, fmt.Sprintf("%s has %d runs, %s has %d",
					bench.WeightDirName(dir.LeafWeight), len(dir.Runs),
					bench.WeightDirName(dirs[0].LeafWeight), len(dirs[0].Runs)))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteSweep, strings.Join(problems, "; "))
	}
	return nil
}

// restrict drops weight directories and runs outside g.
func restrict(dirs []bench.WeightDir, g Grid) []bench.WeightDir {
	var out []bench.WeightDir
	for _, dir := range dirs {
		if !g.HasLeaf(dir.LeafWeight) {
			continue
		}
		dir.Runs = lo.Filter(dir.Runs, func(r bench.RunFile, _ int) bool {
			return g.HasThreshold(r.Threshold)
		})
		out = append(out, dir)
	}
	return out
}
