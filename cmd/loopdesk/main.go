package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loopdesk/loopdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loopdesk",
		Short: "Loopdesk - cross-system ticket and task sync",
		Long:  `Loopdesk keeps a CRM and a development platform in sync: tickets become tasks, status changes and comments mirror both ways, and users get realtime notifications.`,
	}

	rootCmd.AddCommand(
		server.NewCRMCommand(),
		server.NewDevCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
