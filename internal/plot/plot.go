// Package plot renders precision, recall and F1 curves over the threshold
// axis and marks the threshold with the best F1.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jamesainslie/go-matchbench/internal/bench"
)

var (
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 128, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

// Renderer writes one plot file per leaf weight into Dir.
type Renderer struct {
	Dir    string
	Format string // file extension understood by gonum/plot: pdf, png, svg, ...
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer writing files of the given format to dir.
func NewRenderer(dir, format string) *Renderer {
	if format == "" {
		format = "pdf"
	}
	return &Renderer{
		Dir:    dir,
		Format: format,
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
	}
}

// FileName returns the plot file name for a leaf weight.
func (r *Renderer) FileName(leaf float64) string {
	return "cupid_" + bench.FormatValue(leaf) + "." + r.Format
}

// Plot draws the three curves for one leaf weight and returns the path of
// the written file.
func (r *Renderer) Plot(leaf float64, thresholds, precision, recall, f1 []float64) (string, error) {
	n := len(thresholds)
	if n == 0 {
		return "", errors.New("plot: no thresholds")
	}
	if len(precision) != n || len(recall) != n || len(f1) != n {
		return "", fmt.Errorf("plot: series lengths differ (%d thresholds, %d/%d/%d values)",
			n, len(precision), len(recall), len(f1))
	}

	p := plot.New()
	p.Title.Text = "Precision/Recall/F1-score for w_struct_leaf = " + bench.FormatValue(leaf)
	p.X.Label.Text = "th_accept threshold"
	p.Y.Label.Text = "Value"

	series := []struct {
		name   string
		values []float64
		color  color.Color
	}{
		{"Precision", precision, blue},
		{"Recall", recall, green},
		{"F1-score", f1, red},
	}
	for _, s := range series {
		line, err := plotter.NewLine(points(thresholds, s.values))
		if err != nil {
			return "", fmt.Errorf("plot: %s: %w", s.name, err)
		}
		line.LineStyle.Color = s.color
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	best := bench.ArgMax(f1)
	bx, by := thresholds[best], f1[best]
	mark, err := plotter.NewScatter(plotter.XYs{{X: bx, Y: by}})
	if err != nil {
		return "", fmt.Errorf("plot: best point: %w", err)
	}
	mark.GlyphStyle.Color = red
	mark.GlyphStyle.Shape = draw.CircleGlyph{}
	mark.GlyphStyle.Radius = vg.Points(4)
	p.Add(mark)

	// Axis Min/Max stay as auto-scaled by Add; only the tick marks change.
	p.X.Tick.Marker = highlightTicks(p.X.Tick.Marker, p.X.Min, p.X.Max, bx, 0)
	p.Y.Tick.Marker = highlightTicks(p.Y.Tick.Marker, p.Y.Min, p.Y.Max, by, ValueShift)

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("plot: create dir: %w", err)
	}
	path := filepath.Join(r.Dir, r.FileName(leaf))
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return "", fmt.Errorf("plot: save %s: %w", path, err)
	}
	return path, nil
}

func points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// highlightTicks replaces the labelled ticks produced by marker with the
// result of AdjustTicks. Unlabelled minor ticks are kept.
func highlightTicks(marker plot.Ticker, lo, hi, v, shift float64) plot.ConstantTicks {
	defaults := marker.Ticks(lo, hi)

	labels := make(map[float64]string)
	var major []float64
	var ticks plot.ConstantTicks
	for _, t := range defaults {
		if t.Label == "" {
			ticks = append(ticks, t)
			continue
		}
		labels[t.Value] = t.Label
		major = append(major, t.Value)
	}

	for _, value := range AdjustTicks(major, v, shift) {
		label, ok := labels[value]
		if !ok {
			label = strconv.FormatFloat(value, 'g', 3, 64)
		}
		ticks = append(ticks, plot.Tick{Value: value, Label: label})
	}
	return ticks
}
