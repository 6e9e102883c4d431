package bench

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// RunFile is one leaf mapping file of a sweep.
type RunFile struct {
	Threshold float64
	Path      string
}

// WeightDir is one leaf weight directory of a sweep with its run files
// ordered by threshold.
type WeightDir struct {
	LeafWeight float64
	Path       string
	Runs       []RunFile
}

// Thresholds returns the thresholds of the runs in order.
func (w WeightDir) Thresholds() []float64 {
	return lo.Map(w.Runs, func(r RunFile, _ int) float64 { return r.Threshold })
}

// ScanSweep lists the weight directories under dir and the run files inside
// each. Parameter values are parsed from the names and both levels are
// ordered numerically. Entries that do not follow the layout are skipped.
func ScanSweep(dir string, logger *slog.Logger) ([]WeightDir, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sweep dir: %w", err)
	}

	var dirs []WeightDir
	for _, entry := range lo.Filter(entries, func(e os.DirEntry, _ int) bool { return e.IsDir() }) {
		leaf, ok := ParseWeightDir(entry.Name())
		if !ok {
			logger.Debug("skipping directory", "name", entry.Name())
			continue
		}

		path := filepath.Join(dir, entry.Name())
		runs, err := scanRuns(path, logger)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, WeightDir{LeafWeight: leaf, Path: path, Runs: runs})
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].LeafWeight < dirs[j].LeafWeight
	})
	return dirs, nil
}

func scanRuns(dir string, logger *slog.Logger) ([]RunFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read weight dir: %w", err)
	}

	var runs []RunFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		threshold, ok := ParseRunFile(entry.Name())
		if !ok {
			logger.Debug("skipping file", "dir", dir, "name", entry.Name())
			continue
		}
		runs = append(runs, RunFile{Threshold: threshold, Path: filepath.Join(dir, entry.Name())})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Threshold < runs[j].Threshold
	})
	return runs, nil
}
