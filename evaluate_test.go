package matchbench

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-matchbench/mapping"
)

type plotCall struct {
	leaf       float64
	thresholds []float64
	f1         []float64
}

type fakePlotter struct {
	calls []plotCall
}

func (f *fakePlotter) Plot(leaf float64, thresholds, precision, recall, f1 []float64) (string, error) {
	f.calls = append(f.calls, plotCall{leaf: leaf, thresholds: thresholds, f1: f1})
	return filepath.Join("plots", "cupid.pdf"), nil
}

func writeGold(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "gold.txt")
	require.NoError(t, mapping.WriteFile(path, testGold))
	return path
}

func writeRun(t *testing.T, path string, set mapping.Set) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, mapping.WriteFile(path, set))
}

func TestEvaluate_Pipeline(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	gold := writeGold(t, tmp)

	require.NoError(t, New(&fakeMatcher{}, WithLogger(quietLogger())).Run(context.Background(), "src", "dst", nil, out, testGrid))

	p := &fakePlotter{}
	curves, err := NewEvaluator(p, WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	require.NoError(t, err)
	require.Len(t, curves, 2)

	require.Len(t, p.calls, 2)
	assert.Equal(t, 0.1, p.calls[0].leaf)
	assert.Equal(t, 0.2, p.calls[1].leaf)

	c := curves[1]
	assert.Equal(t, 0.2, c.LeafWeight)
	assert.Equal(t, []float64{0.4, 0.5, 0.6}, c.Thresholds)
	assert.InDeltaSlice(t, []float64{0.25, 0.75, 0}, c.Precision, 1e-9)
	assert.InDeltaSlice(t, []float64{0.25, 0.75, 0}, c.Recall, 1e-9)
	assert.InDeltaSlice(t, []float64{0.25, 0.75, 0}, c.F1, 1e-9)
	assert.Equal(t, []int{4, 4, 0}, c.Sizes)
	assert.NotEmpty(t, c.Artifact)

	th, f1, ok := c.Best()
	assert.True(t, ok)
	assert.Equal(t, 0.5, th)
	assert.InDelta(t, 0.75, f1, 1e-9)
}

func TestEvaluate_OrdersByParsedValue(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	gold := writeGold(t, tmp)

	// No manifest: a layout produced by another tool.
	for _, leaf := range []string{"j-9", "j-10"} {
		writeRun(t, filepath.Join(out, leaf, "test_0.5.txt"), testGold)
		writeRun(t, filepath.Join(out, leaf, "test_0.45.txt"), testGold[:2])
		writeRun(t, filepath.Join(out, leaf, "test_0.05.txt"), mapping.Set{})
	}

	curves, err := NewEvaluator(nil, WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	require.NoError(t, err)
	require.Len(t, curves, 2)
	assert.Equal(t, 9.0, curves[0].LeafWeight)
	assert.Equal(t, 10.0, curves[1].LeafWeight)

	c := curves[0]
	assert.Equal(t, []float64{0.05, 0.45, 0.5}, c.Thresholds)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, c.Recall, 1e-9)
	assert.Empty(t, c.Artifact, "no plotter, no artifact")
}

func TestEvaluate_PartialSweep(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	gold := writeGold(t, tmp)

	err := New(&fakeMatcher{failAt: 0.5}, WithLogger(quietLogger())).Run(context.Background(), "src", "dst", nil, out, testGrid)
	require.ErrorIs(t, err, ErrMatcherFailed)

	_, err = NewEvaluator(nil, WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	require.ErrorIs(t, err, ErrIncompleteSweep)

	curves, err := NewEvaluator(nil, WithAllowPartial(true), WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Len(t, curves[0].Thresholds, 1)
}

func TestEvaluate_UnevenWithoutManifest(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	gold := writeGold(t, tmp)

	writeRun(t, filepath.Join(out, "j-0.1", "test_0.4.txt"), testGold)
	writeRun(t, filepath.Join(out, "j-0.1", "test_0.5.txt"), testGold)
	writeRun(t, filepath.Join(out, "j-0.2", "test_0.4.txt"), testGold)

	_, err := NewEvaluator(nil, WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	assert.ErrorIs(t, err, ErrIncompleteSweep)
}

func TestEvaluate_WithGrid(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	gold := writeGold(t, tmp)

	require.NoError(t, New(&fakeMatcher{}, WithLogger(quietLogger())).Run(context.Background(), "src", "dst", nil, out, testGrid))

	g := Grid{Leaf: []float64{0.2}, Threshold: []float64{0.4, 0.5}}
	curves, err := NewEvaluator(nil, WithGrid(g), WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Equal(t, 0.2, curves[0].LeafWeight)
	assert.Len(t, curves[0].Thresholds, 2)

	missing := Grid{Leaf: []float64{0.2}, Threshold: []float64{0.7}}
	_, err = NewEvaluator(nil, WithGrid(missing), WithLogger(quietLogger())).Evaluate(context.Background(), gold, out)
	assert.ErrorIs(t, err, ErrIncompleteSweep, "cells absent from the sweep")
}

func TestEvaluate_GoldErrors(t *testing.T) {
	tmp := t.TempDir()

	_, err := NewEvaluator(nil).Evaluate(context.Background(), filepath.Join(tmp, "missing.txt"), tmp)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	empty := filepath.Join(tmp, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("no pairs here\n"), 0o644))
	_, err = NewEvaluator(nil).Evaluate(context.Background(), empty, tmp)
	assert.Error(t, err)
}

func TestCurve_Best(t *testing.T) {
	c := Curve{Thresholds: []float64{0.1, 0.2, 0.3}, F1: []float64{0.4, 0.6, 0.6}}
	th, f1, ok := c.Best()
	assert.True(t, ok)
	assert.Equal(t, 0.2, th, "first maximum wins")
	assert.Equal(t, 0.6, f1)

	_, _, ok = (Curve{}).Best()
	assert.False(t, ok)
}
