package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve analysis tools over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the tools
analyze_file, scan_project and classify_style. Logs go to stderr.`,
	Args:    cobra.NoArgs,
	PreRunE: preRun,
	RunE: func(_ *cobra.Command, _ []string) error {
		analyzer, err := newAnalyzer()
		if err != nil {
			return err
		}
		defer analyzer.Close()
		srv := mcp.NewServer(analyzer, buildScanOptions(), logger)
		return srv.ServeStdio()
	},
}
