package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docsentry/internal/config"
	"docsentry/internal/report"
	"docsentry/internal/store"
	"docsentry/internal/validate"
)

// Suite selection flags, one per suite plus the two presets.
var (
	flagRST       bool
	flagOpenAPI   bool
	flagGraphQL   bool
	flagProto     bool
	flagMarkdown  bool
	flagSphinx    bool
	flagFormat    bool
	flagPreCommit bool
	flagAll       bool

	flagNoHistory bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run validation suites over the documentation workspace",
	Long: `Runs the selected validation suites and reports pass/fail.

With no suite flags, every suite runs (--all). Exit status is 0 when no
suite reported an error (warnings, including skipped tools, do not fail
the run) and 1 otherwise.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagRST, "rest", false, "Check reStructuredText sources with rstcheck")
	validateCmd.Flags().BoolVar(&flagSphinx, "sphinx", false, "Dry-build the Sphinx tree")
	validateCmd.Flags().BoolVar(&flagOpenAPI, "openapi", false, "Validate OpenAPI documents with swagger-cli")
	validateCmd.Flags().BoolVar(&flagGraphQL, "graphql", false, "Validate GraphQL SDL files")
	validateCmd.Flags().BoolVar(&flagProto, "proto", false, "Compile proto definitions with protoc")
	validateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Lint Markdown and check document structure")
	validateCmd.Flags().BoolVar(&flagFormat, "format", false, "Scan for forbidden characters")
	validateCmd.Flags().BoolVar(&flagPreCommit, "pre-commit", false, "Fast subset for commit hooks (markdown + format)")
	validateCmd.Flags().BoolVar(&flagAll, "all", false, "Run every suite (default)")
	validateCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this run")
}

// selectedSuites maps the flag set to suite IDs.
func selectedSuites() []string {
	if flagAll {
		return validate.AllSuites()
	}
	if flagPreCommit {
		return validate.PreCommitSuites()
	}

	var suites []string
	for _, f := range []struct {
		set bool
		id  string
	}{
		{flagRST, validate.SuiteRST},
		{flagSphinx, validate.SuiteSphinx},
		{flagOpenAPI, validate.SuiteOpenAPI},
		{flagGraphQL, validate.SuiteGraphQL},
		{flagProto, validate.SuiteProto},
		{flagMarkdown, validate.SuiteMarkdown},
		{flagFormat, validate.SuiteFormat},
	} {
		if f.set {
			suites = append(suites, f.id)
		}
	}

	if len(suites) == 0 {
		return validate.AllSuites()
	}
	return suites
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWorkspace(workspace)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	suites := selectedSuites()
	logger.Debug("starting validation", zap.Strings("suites", suites), zap.String("workspace", workspace))

	runner := validate.NewRunner(workspace, cfg)
	rep, err := runner.Run(ctx, suites)
	if err != nil {
		return err
	}

	report.NewPrinter(os.Stdout, quiet).PrintReport(rep)

	if cfg.History.Enabled && !flagNoHistory {
		if err := recordHistory(cfg, rep); err != nil {
			// History is bookkeeping; never fail a run over it.
			logger.Warn("failed to record run history", zap.Error(err))
		}
	}

	exitCode = rep.ExitCode()
	return nil
}

func recordHistory(cfg *config.Config, rep *validate.Report) error {
	h, err := store.NewHistory(historyPath(cfg))
	if err != nil {
		return err
	}
	defer h.Close()

	id, err := h.RecordRun(rep)
	if err != nil {
		return err
	}
	logger.Debug("run recorded", zap.String("run_id", id))

	return h.Prune(cfg.History.KeepRuns)
}
