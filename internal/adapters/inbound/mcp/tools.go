package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/archfit/internal/application"
	"github.com/openkraft/archfit/internal/domain"
)

// registerTools registers the archfit MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, runner *application.Runner) {
	// 1. archfit_run
	s.AddTool(
		mcplib.NewTool("archfit_run",
			mcplib.WithDescription("Runs every fitness function in order and returns the report as JSON"),
			mcplib.WithBoolean("fail_fast",
				mcplib.Description("Stop at the first mandatory failure"),
			),
		),
		handleRun(projectPath, runner),
	)

	// 2. archfit_check
	s.AddTool(
		mcplib.NewTool("archfit_check",
			mcplib.WithDescription("Runs a single fitness function and returns its report as JSON"),
			mcplib.WithString("check",
				mcplib.Required(),
				mcplib.Description("Check to run: coupling, budgets, contract, migrations, slo or headers"),
				mcplib.Enum(domain.CheckOrder...),
			),
		),
		handleCheck(projectPath, runner),
	)
}

func handleRun(projectPath string, runner *application.Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := application.RunOptions{FailFast: request.GetBool("fail_fast", false)}
		report, err := runner.Run(ctx, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("run failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheck(projectPath string, runner *application.Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("check")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := runner.Check(ctx, projectPath, name)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
