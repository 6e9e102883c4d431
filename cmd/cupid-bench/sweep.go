package main

import (
	"github.com/spf13/cobra"

	matchbench "github.com/jamesainslie/go-matchbench"
	"github.com/jamesainslie/go-matchbench/matcher"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		source, target, categories string
		output, command            string
		matcherArgs                []string
		leaf, threshold            []float64
		nonLeaf                    bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the matcher for every leaf weight and threshold",
		Long: `Run the matcher once per grid cell and write its leaf mappings to
<output>/j-<leaf>/test_<threshold>.txt. The sweep refuses to write into
directories left by an earlier sweep.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Source = source
			}
			if flags.Changed("target") {
				cfg.Target = target
			}
			if flags.Changed("categories") {
				cfg.Categories = categories
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("matcher") {
				cfg.Matcher.Command = command
			}
			if flags.Changed("matcher-arg") {
				cfg.Matcher.Args = matcherArgs
			}
			if flags.Changed("leaf") {
				cfg.Leaf.Values = leaf
			}
			if flags.Changed("threshold") {
				cfg.Threshold.Values = threshold
			}
			if flags.Changed("non-leaf") {
				cfg.NonLeaf = nonLeaf
			}
			if err := cfg.ValidateSweep(); err != nil {
				return err
			}

			m := &matcher.Exec{
				Command: cfg.Matcher.Command,
				Args:    cfg.Matcher.Args,
				Env:     cfg.Matcher.Env,
				Dir:     cfg.Matcher.Dir,
				Logger:  a.logger,
			}
			r := matchbench.New(m,
				matchbench.WithSmoothing(cfg.Smoothing),
				matchbench.WithStructGap(cfg.StructGap),
				matchbench.WithNameThreshold(cfg.NameThreshold),
				matchbench.WithNonLeaf(cfg.NonLeaf),
				matchbench.WithLogger(a.logger),
			)

			grid := cfg.Grid()
			a.logger.Info("starting sweep",
				"output", cfg.Output,
				"leaf_weights", len(grid.Leaf),
				"thresholds", len(grid.Threshold))

			var cats matchbench.Categories
			if cfg.Categories != "" {
				cats = cfg.Categories
			}
			return r.Run(cmd.Context(), cfg.Source, cfg.Target, cats, cfg.Output, grid)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source schema file")
	cmd.Flags().StringVar(&target, "target", "", "Target schema file")
	cmd.Flags().StringVar(&categories, "categories", "", "Category model file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Sweep output directory")
	cmd.Flags().StringVar(&command, "matcher", "", "Matcher program")
	cmd.Flags().StringSliceVar(&matcherArgs, "matcher-arg", nil, "Argument passed to the matcher before the parameters (repeatable)")
	cmd.Flags().Float64SliceVar(&leaf, "leaf", nil, "Leaf structural weights (comma separated)")
	cmd.Flags().Float64SliceVar(&threshold, "threshold", nil, "Acceptance thresholds (comma separated)")
	cmd.Flags().BoolVar(&nonLeaf, "non-leaf", false, "Also write non-leaf mappings when the matcher supports them")

	return cmd
}
