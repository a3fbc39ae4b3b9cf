package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	iexec "github.com/hvdklauw/mountaineer/internal/exec"
	"github.com/hvdklauw/mountaineer/internal/tasks"
)

// Orchestrator runs aggregates against one workspace checkout.
type Orchestrator struct {
	root   string
	runner iexec.CommandRunner
	logger *DebugLogger
	status io.Writer
	runID  string
}

// New creates an Orchestrator rooted at the workspace directory.
func New(cfg RequiredConfig, opts ...Option) *Orchestrator {
	options := &orchestratorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	runner := options.runner
	if runner == nil {
		r := iexec.NewRunner()
		if options.output != nil {
			r.Stdout = options.output
		}
		if options.errOutput != nil {
			r.Stderr = options.errOutput
		}
		runner = r
	}
	logger := options.logger
	if logger == nil {
		logger = NopLogger()
	}
	status := options.status
	if status == nil {
		status = os.Stdout
	}

	return &Orchestrator{
		root:   cfg.Root,
		runner: runner,
		logger: logger,
		status: status,
		runID:  uuid.New().String()[:8],
	}
}

// RunID identifies this orchestrator instance in logs and summaries.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Run executes every member of the aggregate. The first failure aborts the
// run; the returned error is a *StepError when an external command exited
// non-zero.
func (o *Orchestrator) Run(ctx context.Context, agg tasks.Aggregate) error {
	start := time.Now()
	o.logger.Log("run %s: %s started (%d members)", o.runID, agg.Name, len(agg.Members))

	for i, member := range agg.Members {
		o.header("%s %s (%d/%d)", member.Kind, member.Project.Key, i+1, len(agg.Members))

		if err := o.runMember(ctx, agg, member); err != nil {
			o.fail("%s failed on %s %s", agg.Name, member.Kind, member.Project.Key)
			o.logger.Log("run %s: %s failed on %s %s: %v", o.runID, agg.Name, member.Kind, member.Project.Key, err)
			return err
		}
	}

	o.success("%s passed in %s", agg.Name, time.Since(start).Round(time.Millisecond))
	o.logger.Log("run %s: %s succeeded in %s", o.runID, agg.Name, time.Since(start).Round(time.Millisecond))
	return nil
}

func (o *Orchestrator) runMember(ctx context.Context, agg tasks.Aggregate, member tasks.Member) error {
	if err := o.preflight(member); err != nil {
		return err
	}

	steps, err := tasks.Expand(member.Kind, member.Project)
	if err != nil {
		return err
	}

	for _, step := range steps {
		o.echo(step)
		o.logger.Log("run %s: exec [%s] %s", o.runID, step.Dir, step)

		if err := o.runner.Run(ctx, filepath.Join(o.root, step.Dir), step.Name, step.Args...); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%s %s interrupted: %w", member.Kind, member.Project.Key, ctx.Err())
			}
			return &StepError{
				Aggregate: agg.Name,
				Member:    member,
				Spec:      step,
				ExitCode:  exitCode(err),
				Err:       err,
			}
		}
	}

	return nil
}

// preflight verifies external tools a member needs before its first step
// runs. An install for a native-extension project needs cargo on PATH for
// the maturin build.
func (o *Orchestrator) preflight(member tasks.Member) error {
	if member.Kind != tasks.KindInstall || !member.Project.NativeExtension {
		return nil
	}
	if _, err := o.runner.LookPath("cargo"); err != nil {
		return fmt.Errorf("%s builds a native extension but cargo was not found in PATH; install the Rust toolchain (https://rustup.rs)", member.Project.Key)
	}
	return nil
}

// header prints the cyan member banner.
func (o *Orchestrator) header(format string, args ...interface{}) {
	c := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(o.status, "%s %s\n", c.Sprint("==>"), fmt.Sprintf(format, args...))
}

// echo prints the command about to run, the way make echoes recipe lines.
func (o *Orchestrator) echo(step tasks.CommandSpec) {
	c := color.New(color.Faint)
	fmt.Fprintf(o.status, "%s\n", c.Sprint(step.String()))
}

func (o *Orchestrator) success(format string, args ...interface{}) {
	c := color.New(color.FgGreen)
	fmt.Fprintf(o.status, "%s %s (run %s)\n", c.Sprint("✓"), fmt.Sprintf(format, args...), o.runID)
}

func (o *Orchestrator) fail(format string, args ...interface{}) {
	c := color.New(color.FgRed)
	fmt.Fprintf(o.status, "%s %s (run %s)\n", c.Sprint("✗"), fmt.Sprintf(format, args...), o.runID)
}
