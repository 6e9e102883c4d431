package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	matchbench "github.com/jamesainslie/go-matchbench"
	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/internal/plot"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		gold, output, plots, format string
		csvPath                     string
		allowPartial, noPlot        bool
		restrict                    bool
		wp, wr                      float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a sweep against the gold standard and plot the curves",
		Long: `Score every run of a sweep against the gold standard, print the best
threshold per leaf weight and render one precision/recall/F1 plot per leaf
weight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("gold") {
				cfg.Gold = gold
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("plots") {
				cfg.Plots = plots
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if err := cfg.ValidateEvaluate(); err != nil {
				return err
			}

			opts := []matchbench.Option{
				matchbench.WithAllowPartial(allowPartial),
				matchbench.WithWeights(wp, wr),
				matchbench.WithLogger(a.logger),
			}
			if restrict {
				opts = append(opts, matchbench.WithGrid(cfg.Grid()))
			}

			var plotter matchbench.Plotter
			if !noPlot {
				plotter = plot.NewRenderer(cfg.Plots, cfg.Format)
			}

			curves, err := matchbench.NewEvaluator(plotter, opts...).Evaluate(cmd.Context(), cfg.Gold, cfg.Output)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), curves)

			if csvPath != "" {
				if err := writeCSV(csvPath, curves); err != nil {
					return err
				}
				a.logger.Info("wrote report", "path", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gold, "gold", "", "Gold standard mapping file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Sweep output directory to evaluate")
	cmd.Flags().StringVar(&plots, "plots", "", "Directory for plot files")
	cmd.Flags().StringVar(&format, "format", "", "Plot format (pdf, png, svg)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write per-run scores to this CSV file")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "Score incomplete sweeps instead of failing")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip rendering plots")
	cmd.Flags().BoolVar(&restrict, "restrict", false, "Only score cells of the configured grid")
	cmd.Flags().Float64Var(&wp, "wp", 1.0, "Precision weight for the weighted score")
	cmd.Flags().Float64Var(&wr, "wr", 1.0, "Recall weight for the weighted score")

	return cmd
}

func printSummary(w io.Writer, curves []matchbench.Curve) {
	fmt.Fprintln(w, "Best th_accept per leaf structural weight")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	fmt.Fprintf(w, "%-8s %-8s %-8s %-8s %-8s %-8s %-8s\n", "Leaf", "Thresh", "Prec", "Rec", "F1", "Weighted", "Size")

	for _, c := range curves {
		i := bench.ArgMax(c.F1)
		if i < 0 {
			fmt.Fprintf(w, "%-8s (no runs)\n", bench.FormatValue(c.LeafWeight))
			continue
		}
		fmt.Fprintf(w, "%-8s %-8.3f %-8.2f %-8.2f %-8.2f %-8.2f %-8d\n",
			bench.FormatValue(c.LeafWeight), c.Thresholds[i], c.Precision[i], c.Recall[i], c.F1[i], c.WeightedScore[i], c.Sizes[i])
	}

	fmt.Fprintln(w, strings.Repeat("-", 62))
}

func writeCSV(path string, curves []matchbench.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	cw := csv.NewWriter(f)
	_ = cw.Write([]string{"leaf_w_struct", "th_accept", "precision", "recall", "f1", "weighted", "mappings"})
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, c := range curves {
		for i, th := range c.Thresholds {
			_ = cw.Write([]string{
				bench.FormatValue(c.LeafWeight),
				bench.FormatValue(th),
				format(c.Precision[i]),
				format(c.Recall[i]),
				format(c.F1[i]),
				format(c.WeightedScore[i]),
				strconv.Itoa(c.Sizes[i]),
			})
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
