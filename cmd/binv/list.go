package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egetools/binv/pkg/binv/output"
	"github.com/egetools/binv/pkg/binv/selection"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed binaries",
	Long: `List the binaries tracked in eget's install log, most recent first.

The filter matches the binary name, the repo, or the full install path,
case-insensitively, the same way the interactive filter does.`,
	RunE: runList,
}

var (
	listFormat string
	listFilter string
)

func init() {
	listCmd.Flags().StringVarP(&listFormat, "output", "o",
		"table", "output format: "+strings.Join(output.Available(), ", "))
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter entries by name, repo, or path")

	rootCmd.AddCommand(listCmd)
}

// runList prints the install log through the selected formatter.
func runList(cmd *cobra.Command, args []string) error {
	s := activeStore()
	sel := selection.New(s.Load())
	if listFilter != "" {
		sel.SetFilter(listFilter)
	}

	formatter, err := output.Get(listFormat)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(output.Available(), ", "))
	}

	result := &output.Result{
		Records: sel.Visible(),
		LogFile: s.Path(),
		Filter:  sel.Filter(),
		Total:   sel.Total(),
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, result); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Print(buf.String())

	return nil
}
