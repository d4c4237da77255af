package main

import (
	"github.com/spf13/cobra"

	"github.com/felixlaga/atmodeller/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server on stdio",
	Long:  `Exposes the solver as MCP tools so agent frontends can run equilibrium cases.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		return mcp.NewServer(logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
