package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docsentry/internal/canon"
)

var canonShowRaw bool

var canonCmd = &cobra.Command{
	Use:   "canon",
	Short: "Inspect the canonical writing standards",
}

var canonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the canons the corpus enforces",
	RunE:  runCanonList,
}

var canonShowCmd = &cobra.Command{
	Use:   "show [canon-id]",
	Short: "Render a canon in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runCanonShow,
}

func init() {
	canonShowCmd.Flags().BoolVar(&canonShowRaw, "raw", false, "Print the Markdown source instead of rendering")
	canonCmd.AddCommand(canonListCmd)
	canonCmd.AddCommand(canonShowCmd)
}

func runCanonList(cmd *cobra.Command, args []string) error {
	reg := canon.DefaultRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tACCESS\tREQUIRED SECTIONS")
	for _, c := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Title, c.DocType, c.AccessLevel, strings.Join(c.RequiredSections, ", "))
	}
	return w.Flush()
}

func runCanonShow(cmd *cobra.Command, args []string) error {
	reg := canon.DefaultRegistry()
	id := args[0]

	if canonShowRaw {
		body, err := reg.Body(id)
		if err != nil {
			return err
		}
		fmt.Print(body)
		return nil
	}

	out, err := reg.Render(id)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
