// docsentry guards a documentation corpus: it validates the conventional
// documentation trees with the linters the corpus depends on, enforces the
// corpus formatting rules, and manages the canonical writing standards.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docsentry/internal/logging"
)

var (
	// Global flags
	verbose   bool
	workspace string
	quiet     bool

	// Logger
	logger *zap.Logger

	// Exit status decided by subcommands (validation failures are not
	// usage errors, so they do not go through RunE's error path)
	exitCode int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docsentry",
	Short: "docsentry - documentation corpus validator",
	Long: `docsentry validates a documentation corpus against its writing standards.

It wraps the external linters the corpus depends on (rstcheck, sphinx-build,
swagger-cli, protoc, markdownlint, the graphql npm package), enforces the
formatting conventions natively (no emoji, no em dashes), checks documents
against their declared canon outlines, and records every run.

Run 'docsentry validate' in a documentation workspace to get started.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
			workspace = wd
		}

		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Documentation workspace (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print the totals line")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}
