package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docsentry/internal/canon"
)

var classifyShowFiles bool

var classifyCmd = &cobra.Command{
	Use:   "classify [dir]",
	Short: "Report the access-level distribution of the documentation tree",
	Long: `Scans Markdown documents for their Access-Level marker and reports the
distribution across the four tiers (Public, Internal, Restricted,
Confidential). Documents without a marker count as Internal. Invalid
markers fail the command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyShowFiles, "files", false, "List every document with its tier")
}

func runClassify(cmd *cobra.Command, args []string) error {
	root := workspace
	if len(args) == 1 {
		root = args[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(workspace, root)
		}
	}

	summary, err := canon.ClassifyTree(root)
	if err != nil {
		return err
	}

	levels := []canon.AccessLevel{
		canon.AccessPublic, canon.AccessInternal, canon.AccessRestricted, canon.AccessConfidential,
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tLEVEL\tDOCUMENTS")
	for _, l := range levels {
		fmt.Fprintf(w, "%d\t%s\t%d\n", int(l), l, summary.Counts[l])
	}
	w.Flush()

	if classifyShowFiles {
		fmt.Println()
		for _, f := range summary.Files {
			marker := ""
			if !f.Explicit {
				marker = " (default)"
			}
			fmt.Printf("%-12s %s%s\n", f.Level, f.Path, marker)
		}
	}

	if len(summary.Invalid) > 0 {
		fmt.Println()
		for _, inv := range summary.Invalid {
			fmt.Fprintf(os.Stderr, "error: %s: invalid access level %q\n", inv.Path, inv.Value)
		}
		exitCode = 1
	}

	return nil
}
