package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egetools/binv/pkg/binv/record"
)

var updateCmd = &cobra.Command{
	Use:     "update <name|repo|path>",
	Aliases: []string{"up", "reinstall"},
	Short:   "Re-run eget for a tracked binary",
	Long: `Run eget again for a tracked binary, updating or reinstalling it.

The argument may be the repo (as recorded in the log), the binary name,
or the full install path. eget appends the result to its own install log.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// runUpdate re-invokes eget for the matching record's repo.
func runUpdate(cmd *cobra.Command, args []string) error {
	records := activeStore().Load()

	rec, err := resolveUpdateTarget(records, args[0])
	if err != nil {
		return err
	}

	runner := activeRunner()
	printInfo("Running: %s %s", runner.Binary(), rec.Repo)
	if err := runner.Update(cmd.Context(), rec.Repo); err != nil {
		return err
	}

	printInfo("Updated %s", rec.Repo)
	return nil
}

// resolveUpdateTarget matches arg against repo, path, or unique name.
func resolveUpdateTarget(records []record.InstallRecord, arg string) (record.InstallRecord, error) {
	var nameMatches []record.InstallRecord
	for _, rec := range records {
		if rec.Repo == arg || rec.Path == arg {
			return rec, nil
		}
		if rec.Name() == arg {
			nameMatches = append(nameMatches, rec)
		}
	}

	switch len(nameMatches) {
	case 0:
		return record.InstallRecord{}, fmt.Errorf("no install log entry for %q", arg)
	case 1:
		return nameMatches[0], nil
	default:
		return record.InstallRecord{}, fmt.Errorf("%q matches %d entries, use the repo or full path", arg, len(nameMatches))
	}
}
