package matchbench

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

// nonLeafDir holds non-leaf mapping files, next to the weight directories.
const nonLeafDir = "nonleaf"

// Runner sweeps a Matcher over a parameter grid and writes each cell's
// mappings to disk.
type Runner struct {
	matcher Matcher
	cfg     config
}

// New creates a Runner for m.
func New(m Matcher, opts ...Option) *Runner {
	return &Runner{
		matcher: m,
		cfg:     newConfig(opts),
	}
}

// Params returns the matcher parameters for the cell (leaf, threshold).
func (r *Runner) Params(leaf, threshold float64) Params {
	return Params{
		Accept:        bench.Round(threshold),
		Low:           bench.Round(threshold - r.cfg.smoothing),
		High:          bench.Round(threshold + r.cfg.smoothing),
		LeafStruct:    bench.Round(leaf),
		Struct:        bench.Round(leaf + r.cfg.structGap),
		NameThreshold: r.cfg.nameThreshold,
	}
}

// Run evaluates every cell of grid and writes the leaf mappings to
// outputDir/j-<leaf>/test_<threshold>.txt. Leaf weights form the outer loop.
// It fails with ErrOutputExists, before writing anything, when outputDir
// already holds a manifest or a directory of the grid. It stops at the first
// failing cell.
func (r *Runner) Run(ctx context.Context, source, target Tree, categories Categories, outputDir string, grid Grid) (err error) {
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	nonLeaf, _ := r.matcher.(NonLeafMatcher)
	if r.cfg.nonLeaf && nonLeaf == nil {
		r.cfg.logger.Warn("matcher does not support non-leaf mappings, skipping them")
	}
	if !r.cfg.nonLeaf {
		nonLeaf = nil
	}

	// Nothing may be written to a root that already holds part of this grid.
	if err := checkFree(outputDir, grid, nonLeaf != nil); err != nil {
		return err
	}

	manifest := &bench.Manifest{
		Status: bench.StatusRunning,
		Grid:   grid,
		Params: map[string]float64{
			"smoothing":      r.cfg.smoothing,
			"struct_gap":     r.cfg.structGap,
			"name_threshold": r.cfg.nameThreshold,
		},
		StartedAt: time.Now(),
	}
	if err := bench.CreateManifest(outputDir, manifest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s holds a sweep manifest", ErrOutputExists, outputDir)
		}
		return err
	}
	defer func() {
		manifest.FinishedAt = time.Now()
		manifest.Status = bench.StatusComplete
		if err != nil {
			manifest.Status = bench.StatusFailed
			manifest.Error = err.Error()
		}
		if werr := bench.WriteManifest(outputDir, manifest); werr != nil && err == nil {
			err = werr
		}
	}()

	total := grid.Size()
	for _, leaf := range grid.Leaf {
		dir := filepath.Join(outputDir, bench.WeightDirName(leaf))
		if err := os.Mkdir(dir, 0o755); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrOutputExists, dir)
			}
			return fmt.Errorf("create weight dir: %w", err)
		}

		for _, threshold := range grid.Threshold {
			if err := ctx.Err(); err != nil {
				return err
			}

			sim, n, err := r.runCell(ctx, source, target, categories, dir, leaf, threshold)
			if err != nil {
				return fmt.Errorf("leaf %s threshold %s: %w",
					bench.FormatValue(leaf), bench.FormatValue(threshold), err)
			}
			if nonLeaf != nil {
				if err := r.runNonLeaf(ctx, nonLeaf, source, target, sim, outputDir, leaf, threshold); err != nil {
					return fmt.Errorf("leaf %s threshold %s: non-leaf: %w",
						bench.FormatValue(leaf), bench.FormatValue(threshold), err)
				}
			}

			manifest.Completed++
			r.cfg.logger.Info("cell done",
				"leaf", leaf,
				"threshold", threshold,
				"mappings", n,
				"progress", fmt.Sprintf("%d/%d", manifest.Completed, total))
		}
	}

	return nil
}

// checkFree fails with ErrOutputExists when outputDir holds a manifest or
// the directory of any leaf weight in grid.
func checkFree(outputDir string, grid Grid, nonLeaf bool) error {
	paths := []string{filepath.Join(outputDir, bench.ManifestName)}
	for _, leaf := range grid.Leaf {
		paths = append(paths, filepath.Join(outputDir, bench.WeightDirName(leaf)))
		if nonLeaf {
			paths = append(paths, filepath.Join(outputDir, nonLeafDir, bench.WeightDirName(leaf)))
		}
	}
	for _, path := range paths {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("check output: %w", err)
		}
	}
	return nil
}

// runCell matches one cell and writes its leaf mappings. It returns the
// similarity structure and the number of mappings written.
func (r *Runner) runCell(ctx context.Context, source, target Tree, categories Categories, dir string, leaf, threshold float64) (Similarity, int, error) {
	p := r.Params(leaf, threshold)

	sim, err := r.matcher.Match(ctx, source, target, categories, p)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMatcherFailed, err)
	}
	leaves, err := r.matcher.LeafMappings(ctx, source, target, sim, p.Accept)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: leaf mappings: %w", ErrMatcherFailed, err)
	}
	r.cfg.logger.Debug("leaf matchings", "leaf", leaf, "threshold", threshold, "pairs", leaves)

	if err := mapping.WriteFile(filepath.Join(dir, bench.RunFileName(threshold)), leaves); err != nil {
		return nil, 0, err
	}
	return sim, len(leaves), nil
}

// runNonLeaf recomputes the cell's similarity and writes non-leaf
// mappings under outputDir/nonleaf, outside the layout scored by Evaluate.
func (r *Runner) runNonLeaf(ctx context.Context, m NonLeafMatcher, source, target Tree, sim Similarity, outputDir string, leaf, threshold float64) error {
	accept := bench.Round(threshold)

	sim, err := m.RecomputeSimilarity(ctx, source, target, sim, accept)
	if err != nil {
		return fmt.Errorf("%w: recompute similarity: %w", ErrMatcherFailed, err)
	}
	set, err := m.NonLeafMappings(ctx, source, target, sim, accept)
	if err != nil {
		return fmt.Errorf("%w: non-leaf mappings: %w", ErrMatcherFailed, err)
	}

	dir := filepath.Join(outputDir, nonLeafDir, bench.WeightDirName(leaf))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create non-leaf dir: %w", err)
	}
	return mapping.WriteFile(filepath.Join(dir, bench.NonLeafFileName(threshold)), set)
}
