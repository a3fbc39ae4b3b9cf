package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hvdklauw/mountaineer/internal/config"
	"github.com/hvdklauw/mountaineer/internal/orchestrator"
	"github.com/hvdklauw/mountaineer/internal/registry"
)

// workspace bundles everything a command invocation resolves up front: the
// workspace root, the project registry with overrides applied, and the
// loaded configuration.
type workspace struct {
	root string
	reg  *registry.Registry
	cfg  *config.Config
}

func loadWorkspace() (*workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	root := config.FindWorkspaceRoot(cwd)

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	if err := reg.LoadOverrides(filepath.Join(root, config.ConfigFileName)); err != nil {
		return nil, err
	}

	return &workspace{root: root, reg: reg, cfg: cfg}, nil
}

// orchestrator builds the task executor for this workspace. The caller
// closes the returned logger.
func (w *workspace) orchestrator() (*orchestrator.Orchestrator, *orchestrator.DebugLogger) {
	logger := orchestrator.NewDebugLoggerForWorkspace(w.root, w.cfg.Log.Dir)
	orch := orchestrator.New(
		orchestrator.RequiredConfig{Root: w.root},
		orchestrator.WithLogger(logger),
	)
	return orch, logger
}
