// Package cmd wires the command line interface. The serve subcommand
// runs a single-node machine with the gRPC control plane; the client
// subcommands talk to a running server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shrtyk/stm-core/cmd/client"
	"github.com/shrtyk/stm-core/cmd/serve"
)

const Version = "0.1.0"

var (
	RootCmd = &cobra.Command{
		Use:   "stmctl",
		Short: "snapshot-backed replicated state machine",
		Long: fmt.Sprintf(`stmctl (v%s)

Runs and administers a checkpointed state machine layered on a log
replication engine: hydration from snapshots, on-demand and periodic
checkpointing, and leader freshness checks.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of stmctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stmctl v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(client.ClientCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
