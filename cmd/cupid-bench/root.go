package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-matchbench/internal/config"
)

// app carries state resolved by the root command to its subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "cupid-bench",
		Short:         "Parameter sweep evaluation for schema matchers",
		Long:          "Run a schema matcher over a grid of leaf structural weights and acceptance thresholds, then score every run against a gold standard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Sweep configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newSweepCmd(a),
		newEvaluateCmd(a),
		newScoreCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// load resolves configuration with precedence flag > env > file > default
// and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	if !cmd.Flags().Changed("config") {
		if v := os.Getenv("MATCHBENCH_CONFIG"); v != "" {
			path = v
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cupid-bench %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
