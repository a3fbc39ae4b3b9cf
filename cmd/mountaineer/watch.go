package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hvdklauw/mountaineer/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run read-only lint checks when project files change",
	Long: `Watches every project directory and runs the lint-validation
aggregate after each burst of file changes. Validation never rewrites
files, so the watcher cannot retrigger itself.

Check failures are reported and watching continues. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period after the last change before checks run (default from config: 500ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	debounce := ws.cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = watchDebounce
	}

	var paths []string
	for _, p := range ws.reg.Projects() {
		paths = append(paths, filepath.Join(ws.root, p.Path))
	}

	w, err := watch.New(watch.Config{Paths: paths, Debounce: debounce})
	if err != nil {
		return err
	}
	defer w.Close()

	validation, ok := findTask(ws.reg, "lint-validation")
	if !ok {
		return fmt.Errorf("lint-validation target missing")
	}

	orch, logger := ws.orchestrator()
	defer logger.Close()

	fmt.Printf("Watching %d projects for changes (debounce %s). Ctrl-C to stop.\n", ws.reg.Len(), debounce)

	ctx := cmd.Context()
	err = w.Run(ctx, func() {
		if runErr := orch.Run(ctx, validation); runErr != nil {
			printStatus("✗", runErr.Error(), color.FgRed)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
