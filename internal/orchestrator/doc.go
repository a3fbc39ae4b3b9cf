// Package orchestrator executes aggregate build targets across the
// workspace.
//
// The orchestrator package provides functionality for:
//   - Sequential dispatch: members run strictly in declared order, and each
//     member's command steps run strictly in declared order
//   - Fail-fast semantics: the first non-zero step aborts the whole run and
//     its exit code propagates unchanged
//   - Toolchain preflight: members that need an external toolchain fail
//     with a direct diagnostic before their first step runs
//
// Child process output is never captured or decorated; the orchestrator
// only contributes banner and summary lines around it.
//
// Example usage:
//
//	orch := orchestrator.New(orchestrator.RequiredConfig{Root: root})
//	lint := tasks.Aggregates(registry.Default())[0]
//	err := orch.Run(ctx, lint)
package orchestrator
