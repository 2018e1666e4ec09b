package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egetools/binv/pkg/binv/config"
	"github.com/egetools/binv/pkg/binv/record"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View prune history",
	Long: `View the binaries binv has deleted.

Every successful removal is recorded with its repo, path, and the space
it freed. This is a record of what happened, not an undo mechanism.`,
	RunE: runHistory,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up old history entries",
	Long:  `Remove history entries older than the retention period.`,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show")

	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// runHistory lists recent prunes.
func runHistory(cmd *cobra.Command, args []string) error {
	h := activeHistory()
	if h == nil {
		printInfo("Prune history is disabled.")
		return nil
	}

	entries, err := h.List(historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		printInfo("No prune history yet.")
		printInfo("Entries appear here after 'binv remove' or a delete in the TUI.")
		return nil
	}

	fmt.Printf("\n%-20s  %-30s  %10s  %s\n", "WHEN", "REPO", "FREED", "PATH")
	fmt.Println(strings.Repeat("-", 90))
	for _, entry := range entries {
		fmt.Printf("%-20s  %-30s  %10s  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Repo,
			record.FormatBytes(entry.FreedBytes),
			entry.Path,
		)
	}
	fmt.Println(strings.Repeat("-", 90))
	fmt.Printf("\nShowing %d entries. Use --limit to see more.\n", len(entries))

	return nil
}

// runHistoryClean removes old history entries.
func runHistoryClean(cmd *cobra.Command, args []string) error {
	h := activeHistory()
	if h == nil {
		printInfo("Prune history is disabled.")
		return nil
	}

	retentionDays := config.DefaultRetentionDays
	if cfg, err := config.Load(); err == nil && cfg.History.RetentionDays > 0 {
		retentionDays = cfg.History.RetentionDays
	}

	printInfo("Cleaning history entries older than %d days...", retentionDays)
	if err := h.Cleanup(retentionDays); err != nil {
		return fmt.Errorf("cleaning history: %w", err)
	}
	printInfo("History cleanup complete.")

	return nil
}
