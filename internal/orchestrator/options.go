package orchestrator

import (
	"io"

	iexec "github.com/hvdklauw/mountaineer/internal/exec"
)

// RequiredConfig contains the minimal required configuration for an
// Orchestrator. All fields are required and have no defaults.
type RequiredConfig struct {
	// Root is the workspace root directory. Step working directories
	// resolve against it.
	Root string
}

// Option configures an Orchestrator. Use With* functions to create Options.
type Option func(*orchestratorOptions)

// orchestratorOptions holds all optional configuration. Only used during
// construction.
type orchestratorOptions struct {
	runner    iexec.CommandRunner
	logger    *DebugLogger
	status    io.Writer
	output    io.Writer
	errOutput io.Writer
}

// WithRunner sets the command execution runner (mainly for testing).
func WithRunner(r iexec.CommandRunner) Option {
	return func(o *orchestratorOptions) { o.runner = r }
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *orchestratorOptions) { o.logger = l }
}

// WithStatus sets the writer receiving status lines. Defaults to stdout.
func WithStatus(w io.Writer) Option {
	return func(o *orchestratorOptions) { o.status = w }
}

// WithOutput redirects child stdout when the default runner is used.
func WithOutput(w io.Writer) Option {
	return func(o *orchestratorOptions) { o.output = w }
}

// WithErrOutput redirects child stderr when the default runner is used.
func WithErrOutput(w io.Writer) Option {
	return func(o *orchestratorOptions) { o.errOutput = w }
}
