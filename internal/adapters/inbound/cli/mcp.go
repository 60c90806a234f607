package cli

import (
	mcpadapter "github.com/openkraft/archfit/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the archfit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start archfit MCP server (stdio)",
		Long:  "Start the archfit MCP server using stdio transport. This lets AI coding assistants run fitness functions and read the latest report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := absPath(projectPath)
			if err != nil {
				return err
			}
			s := mcpadapter.NewArchfitMCPServer(abs, newRunner())
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
