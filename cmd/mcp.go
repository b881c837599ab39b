package cmd

import (
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/huangsam/hangarlog/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the HangarLog MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query the logbook through standard tools.`,
	Args:  cobra.NoArgs,
	// Stdout carries the protocol; logging goes to stderr.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iostore.Manager)
	},
}
