package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docsentry/internal/config"
	"docsentry/internal/report"
	"docsentry/internal/validate"
	"docsentry/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate the documentation tree on change",
	Long: `Watches the documentation roots and reruns the pre-commit suites
(markdown + format) whenever changes settle. Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWorkspace(workspace)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := validate.NewRunner(workspace, cfg)
	printer := report.NewPrinter(os.Stdout, quiet)

	revalidate := func(ctx context.Context, paths []string) {
		fmt.Printf("\nChanges settled (%d files), revalidating...\n", len(paths))
		rep, err := runner.Run(ctx, validate.PreCommitSuites())
		if err != nil {
			logger.Warn("revalidation failed", zap.Error(err))
			return
		}
		printer.PrintReport(rep)
	}

	w, err := watch.New(watchRoots(cfg), cfg.DebounceDuration(), revalidate)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("Watching %s (debounce %v). Press Ctrl+C to stop.\n", workspace, cfg.DebounceDuration())

	<-ctx.Done()
	fmt.Println("\nStopping watcher.")
	return nil
}

// watchRoots returns the documentation roots to watch, workspace-resolved
// and deduplicated.
func watchRoots(cfg *config.Config) []string {
	rels := []string{
		cfg.Roots.Markdown,
		cfg.Roots.Sphinx,
		cfg.Roots.APISpecs,
		cfg.Roots.GraphQL,
		cfg.Roots.Proto,
	}

	seen := make(map[string]bool)
	var roots []string
	for _, rel := range rels {
		if rel == "" {
			continue
		}
		abs := rel
		if !filepath.IsAbs(rel) {
			abs = filepath.Join(workspace, rel)
		}
		if !seen[abs] {
			seen[abs] = true
			roots = append(roots, abs)
		}
	}
	return roots
}
