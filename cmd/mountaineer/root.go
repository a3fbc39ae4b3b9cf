package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hvdklauw/mountaineer/internal/orchestrator"
)

var rootCmd = &cobra.Command{
	Use:   "mountaineer",
	Short: "Build orchestrator for the mountaineer workspace",
	Long: `Drives the three sub-projects of the mountaineer workspace
(mountaineer, create-mountaineer-app, ci-webapp) through their lint, test,
install, and clean pipelines.

Tasks run strictly in sequence and stop at the first failure; the failing
tool's exit code becomes the exit code of this process. Tool output streams
through untouched.

Common invocations:
  mountaineer lint             # fix and check every project
  mountaineer lint-validation  # the same checks, read-only (CI)
  mountaineer test             # all unit suites, Rust included
  mountaineer install-deps     # poetry install everywhere`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps failures to the process exit
// code: step failures keep the child's exit code, everything else exits 1.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, shutting down...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(orchestrator.ExitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(waitForPostgresCmd)
	rootCmd.AddCommand(watchCmd)
	addTaskCommands(rootCmd)
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
