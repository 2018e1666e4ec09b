package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egetools/binv/pkg/binv/record"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name|path>",
	Aliases: []string{"rm"},
	Short:   "Delete an installed binary and mark it removed",
	Long: `Delete a binary from disk and mark its install log entry as removed.

The argument is either the full install path or the binary name, as long
as the name matches exactly one tracked entry. The log entry stays in the
log with a removed marker; the line itself is never deleted.

If the binary is already gone from disk the log is left untouched, so the
log never claims a removal that didn't happen.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

// runRemove prunes one tracked binary.
func runRemove(cmd *cobra.Command, args []string) error {
	s := activeStore()
	records := s.Load()

	rec, err := resolveRecord(records, args[0])
	if err != nil {
		return err
	}
	if rec.Removed {
		printInfo("%s is already marked removed.", rec.Path)
		return nil
	}

	var freed int64
	if rec.Size != nil {
		freed = *rec.Size
	}

	if err := s.Prune(rec.Path); err != nil {
		return err
	}

	if h := activeHistory(); h != nil {
		if _, err := h.LogPrune(rec.Repo, rec.Path, freed); err != nil {
			printInfo("Warning: could not record prune history: %v", err)
		}
	}

	printInfo("Removed %s (freed %s)", rec.Path, record.FormatBytes(freed))
	return nil
}

// resolveRecord finds the record for a path or unique binary name.
func resolveRecord(records []record.InstallRecord, arg string) (record.InstallRecord, error) {
	var matches []record.InstallRecord
	for _, rec := range records {
		if rec.Path == arg {
			return rec, nil
		}
		if rec.Name() == arg {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		return record.InstallRecord{}, fmt.Errorf("no install log entry for %q", arg)
	case 1:
		return matches[0], nil
	default:
		return record.InstallRecord{}, fmt.Errorf("%q matches %d entries, use the full path", arg, len(matches))
	}
}
