package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/archfit/internal/application"
)

// NewArchfitMCPServer creates an MCP server exposing the fitness runner as
// tools and the latest report as a resource. projectPath is the root of the
// project under evaluation.
func NewArchfitMCPServer(projectPath string, runner *application.Runner) *server.MCPServer {
	s := server.NewMCPServer(
		"archfit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, runner)
	registerResources(s, projectPath, runner)

	return s
}
