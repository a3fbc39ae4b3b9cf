package orchestrator

import (
	"errors"
	"fmt"

	"github.com/hvdklauw/mountaineer/internal/tasks"
)

// StepError reports a build step that exited non-zero. It carries the
// child's exit code so the CLI can propagate it unchanged.
type StepError struct {
	Aggregate string
	Member    tasks.Member
	Spec      tasks.CommandSpec
	ExitCode  int
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s %s: %q exited with code %d",
		e.Aggregate, e.Member.Kind, e.Member.Project.Key, e.Spec.String(), e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error from Run to a process exit code: nil is 0, a
// StepError keeps the child's code, anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var step *StepError
	if errors.As(err, &step) {
		return step.ExitCode
	}
	return 1
}

// exitCode extracts the exit status from a runner error. exec.ExitError
// satisfies the interface; test fakes implement it directly.
func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
