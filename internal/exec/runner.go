package exec

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive the child's output streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates an ExecRunner wired to the parent's streams.
func NewRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes a command, streaming output as the child produces it.
// Cancelling the context kills the child process.
func (r *ExecRunner) Run(ctx context.Context, workDir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// LookPath reports where name resolves on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Verify ExecRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ExecRunner)(nil)
