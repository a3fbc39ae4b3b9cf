package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hvdklauw/mountaineer/internal/netwait"
)

var (
	waitTimeout int
	waitPort    int
	waitHost    string
)

var waitForPostgresCmd = &cobra.Command{
	Use:   "wait-for-postgres",
	Short: "Block until the integration test database accepts connections",
	Long: `Polls the configured PostgreSQL endpoint once per second until it
accepts a TCP connection, then exits 0. Exits 1 when the budget runs out.

CI uses this to hold the integration suite back until docker compose has
the database listening.`,
	Args: cobra.NoArgs,
	RunE: runWaitForPostgres,
}

func init() {
	waitForPostgresCmd.Flags().IntVar(&waitTimeout, "timeout", 0, "Seconds to wait before giving up (default from config: 30)")
	waitForPostgresCmd.Flags().IntVar(&waitPort, "port", 0, "Port to probe (default from config: 5438)")
	waitForPostgresCmd.Flags().StringVar(&waitHost, "host", "", "Host to probe (default from config: localhost)")
}

func runWaitForPostgres(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	host := ws.cfg.Postgres.Host
	port := ws.cfg.Postgres.Port
	timeout := ws.cfg.Wait.TimeoutSeconds
	if cmd.Flags().Changed("host") {
		host = waitHost
	}
	if cmd.Flags().Changed("port") {
		port = waitPort
	}
	if cmd.Flags().Changed("timeout") {
		timeout = waitTimeout
	}

	fmt.Printf("Waiting for PostgreSQL on %s:%d (up to %ds)...\n", host, port, timeout)

	if err := netwait.Wait(cmd.Context(), netwait.Spec{
		Host:     host,
		Port:     port,
		Attempts: timeout,
	}); err != nil {
		return err
	}

	printStatus("✓", "PostgreSQL is ready", color.FgGreen)
	return nil
}
