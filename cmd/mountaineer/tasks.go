package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvdklauw/mountaineer/internal/registry"
	"github.com/hvdklauw/mountaineer/internal/tasks"
)

// addTaskCommands registers one subcommand per workspace-wide aggregate and
// per per-project task. Names, help lines, and member order all come from
// the tasks package; the CLI adds nothing of its own.
func addTaskCommands(root *cobra.Command) {
	reg := registry.Default()
	for _, agg := range tasks.Aggregates(reg) {
		root.AddCommand(taskCommand(agg))
	}
	for _, agg := range tasks.ProjectTasks(reg) {
		root.AddCommand(taskCommand(agg))
	}
}

// taskCommand builds the cobra command for one target. Only the name is
// captured; the target is rebuilt at run time against the loaded workspace
// so .mountaineer.yaml path overrides take effect.
func taskCommand(agg tasks.Aggregate) *cobra.Command {
	name := agg.Name
	return &cobra.Command{
		Use:   name,
		Short: agg.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd.Context(), name)
		},
	}
}

func runTask(ctx context.Context, name string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	agg, ok := findTask(ws.reg, name)
	if !ok {
		return fmt.Errorf("unknown task %q", name)
	}

	orch, logger := ws.orchestrator()
	defer logger.Close()

	return orch.Run(ctx, agg)
}

// findTask locates a target by CLI name across workspace-wide aggregates
// and per-project tasks.
func findTask(reg *registry.Registry, name string) (tasks.Aggregate, bool) {
	for _, agg := range tasks.Aggregates(reg) {
		if agg.Name == name {
			return agg, true
		}
	}
	for _, agg := range tasks.ProjectTasks(reg) {
		if agg.Name == name {
			return agg, true
		}
	}
	return tasks.Aggregate{}, false
}
