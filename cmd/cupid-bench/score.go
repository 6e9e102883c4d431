package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-matchbench/internal/bench"
	"github.com/jamesainslie/go-matchbench/mapping"
)

func newScoreCmd(a *app) *cobra.Command {
	var wp, wr float64

	cmd := &cobra.Command{
		Use:   "score GOLD RUN",
		Short: "Score a single mapping file against the gold standard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gold, err := mapping.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("load gold standard: %w", err)
			}
			run, err := mapping.ParseFile(args[1])
			if err != nil {
				return err
			}
			a.logger.Debug("loaded mappings", "gold", len(gold), "run", len(run))

			m, err := bench.Evaluate(gold, run, bench.Config{PrecisionWeight: wp, RecallWeight: wr})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
				m.Precision, m.Recall, m.F1, m.WeightedScore)
			fmt.Fprintf(out, "(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
			return nil
		},
	}

	cmd.Flags().Float64Var(&wp, "wp", 1.0, "Precision weight")
	cmd.Flags().Float64Var(&wr, "wr", 1.0, "Recall weight")

	return cmd
}
