// Package eget invokes the external eget binary to update or reinstall a
// tracked tool. eget appends the result to its own install log, so callers
// must reload after every invocation whether it succeeded or not.
package eget

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/egetools/binv/pkg/binv/logging"
)

// DefaultBinary is the command looked up on PATH when no explicit binary
// is configured.
const DefaultBinary = "eget"

// Runner invokes eget as a blocking subprocess.
type Runner struct {
	binary string
}

// NewRunner creates a Runner for the given eget binary. An empty binary
// uses DefaultBinary.
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{binary: binary}
}

// Binary returns the configured eget command.
func (r *Runner) Binary() string {
	return r.binary
}

// Command builds the eget invocation for repo without starting it. The
// TUI hands this to tea.ExecProcess so eget can own the terminal while it
// downloads.
func (r *Runner) Command(repo string) *exec.Cmd {
	return exec.Command(r.binary, repo)
}

// Update runs `eget <repo>` to completion, inheriting the caller's
// stdout and stderr. It returns an error when the binary cannot be found
// or exits non-zero.
func (r *Runner) Update(ctx context.Context, repo string) error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", r.binary, err)
	}

	logging.Get("eget").Info("running update", "binary", r.binary, "repo", repo)

	cmd := exec.CommandContext(ctx, r.binary, repo)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s %s: %w", r.binary, repo, err)
	}
	return nil
}
