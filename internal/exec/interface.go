// Package exec provides an interface for command execution.
package exec

import (
	"context"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows mocking command execution in tests.
type CommandRunner interface {
	// Run executes a command with the working directory set to workDir if
	// non-empty. The child's stdout and stderr stream through unmodified
	// while it runs; they are never captured. A non-zero exit surfaces as
	// an error whose chain reaches the underlying exit status.
	Run(ctx context.Context, workDir string, name string, args ...string) error

	// LookPath reports where name resolves on PATH, mirroring
	// exec.LookPath. Toolchain preflight checks go through this so tests
	// can simulate a missing tool.
	LookPath(name string) (string, error)
}
