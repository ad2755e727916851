package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docsentry/internal/config"
	"docsentry/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent validation runs",
	Long: `Without arguments, lists the most recent validation runs. With a run ID,
prints the issues that run recorded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
}

// historyPath resolves the history database path against the workspace.
func historyPath(cfg *config.Config) string {
	p := cfg.History.DatabasePath
	if !filepath.IsAbs(p) {
		p = filepath.Join(workspace, p)
	}
	return p
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWorkspace(workspace)
	if err != nil {
		return err
	}

	h, err := store.NewHistory(historyPath(cfg))
	if err != nil {
		return err
	}
	defer h.Close()

	if len(args) == 1 {
		return printRunIssues(h, args[0])
	}

	runs, err := h.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tDURATION\tSUITES\tFILES\tERRORS\tWARNINGS\tRESULT")
	for _, r := range runs {
		result := "pass"
		if !r.Passed {
			result = "fail"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			shortID(r.ID),
			r.Started.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(1e6),
			strings.Join(r.Suites, ","),
			r.Files, r.Errors, r.Warnings, result)
	}
	return w.Flush()
}

func printRunIssues(h *store.History, runID string) error {
	issues, err := h.RunIssues(runID)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println("No issues recorded for this run.")
		return nil
	}
	for _, is := range issues {
		loc := is.Path
		if is.Line > 0 {
			loc = fmt.Sprintf("%s:%d", is.Path, is.Line)
		}
		if loc != "" {
			loc += ": "
		}
		fmt.Printf("%s: [%s] %s%s\n", is.Severity, is.Suite, loc, is.Message)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
