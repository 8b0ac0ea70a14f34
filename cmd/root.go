package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/schedule-planner/internal/config"
	"github.com/Tiliavir/schedule-planner/internal/logging"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Schedule planner – turn clock-in/clock-out entries into weekly reports",
	Long: `planner aggregates per-day time entries into a week-grouped schedule and
exports it as PDF, XLSX, CSV and JSON. Settings live in ~/.planner/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.planner/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(outlookCmd)
}

// setup loads the configuration and installs the run's logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return usageError{err}
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}

	l, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return usageError{err}
	}
	logger = l.With(logging.FieldRunID, uuid.NewString())
	slog.SetDefault(logger)
	return nil
}

// usageError marks failures caused by bad flags, config or input files.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// exitCode maps usage and config errors to 1 and everything else (I/O,
// network) to 2.
func exitCode(err error) int {
	var u usageError
	if errors.As(err, &u) {
		return 1
	}
	return 2
}

// usagef returns a formatted usageError.
func usagef(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}
