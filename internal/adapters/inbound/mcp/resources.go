package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/archfit/internal/application"
)

const reportURI = "archfit://report"

// registerResources registers the archfit MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, runner *application.Runner) {
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Fitness Report",
			mcplib.WithResourceDescription("Report of a full fitness run over the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath, runner),
	)
}

func handleReportResource(projectPath string, runner *application.Runner) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := runner.Run(ctx, projectPath, application.RunOptions{})
		if err != nil {
			return nil, fmt.Errorf("run failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      reportURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
