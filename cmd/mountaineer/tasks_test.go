package main

import (
	"testing"

	"github.com/hvdklauw/mountaineer/internal/registry"
	"github.com/hvdklauw/mountaineer/internal/tasks"
)

func registeredNames() map[string]bool {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	return names
}

func TestEveryTargetHasASubcommand(t *testing.T) {
	names := registeredNames()
	reg := registry.Default()

	var targets []string
	for _, agg := range tasks.Aggregates(reg) {
		targets = append(targets, agg.Name)
	}
	for _, agg := range tasks.ProjectTasks(reg) {
		targets = append(targets, agg.Name)
	}

	for _, name := range targets {
		if !names[name] {
			t.Errorf("target %q has no registered subcommand", name)
		}
	}
}

func TestUtilityCommandsRegistered(t *testing.T) {
	names := registeredNames()

	for _, name := range []string{"version", "wait-for-postgres", "watch"} {
		if !names[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestFindTask(t *testing.T) {
	reg := registry.Default()

	tests := []struct {
		name        string
		task        string
		wantFound   bool
		wantMembers int
	}{
		{"workspace aggregate", "lint", true, 3},
		{"test includes rust member", "test", true, 3},
		{"per-project task", "lint-mountaineer", true, 1},
		{"per-project test with rust", "test-mountaineer", true, 2},
		{"standalone rust suite", "test-rust", true, 1},
		{"unknown task", "deploy", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, found := findTask(reg, tt.task)
			if found != tt.wantFound {
				t.Fatalf("findTask(%q) found = %v, want %v", tt.task, found, tt.wantFound)
			}
			if !found {
				return
			}
			if len(agg.Members) != tt.wantMembers {
				t.Errorf("findTask(%q) has %d members, want %d", tt.task, len(agg.Members), tt.wantMembers)
			}
		})
	}
}

func TestTaskCommandsRejectArguments(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() != "lint" {
			continue
		}
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Error("task commands should reject positional arguments")
		}
		return
	}
	t.Fatal("lint command not registered")
}

func TestVersionNotEmpty(t *testing.T) {
	if Version() == "" {
		t.Error("embedded version is empty")
	}
}
