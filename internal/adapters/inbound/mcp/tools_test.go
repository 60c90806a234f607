package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/archfit/internal/application"
	"github.com/openkraft/archfit/internal/domain"
)

type staticLoader struct {
	err error
}

func (l staticLoader) Load(string) (domain.Config, error) {
	return domain.DefaultConfig(), l.err
}

type staticCheck struct {
	name   string
	status domain.Status
}

func (c staticCheck) Name() string    { return c.name }
func (c staticCheck) Mandatory() bool { return true }

func (c staticCheck) Run(context.Context, string, domain.Config) domain.CheckOutcome {
	return domain.CheckOutcome{Name: c.name, Status: c.status, Message: string(c.status), Mandatory: true}
}

func testRunner(loaderErr error) *application.Runner {
	return application.NewRunner(staticLoader{err: loaderErr}, nil,
		staticCheck{name: domain.CheckCoupling, status: domain.StatusFail},
		staticCheck{name: domain.CheckBudgets, status: domain.StatusPass},
	)
}

func callTool(t *testing.T, args map[string]any) mcplib.CallToolRequest {
	t.Helper()
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func decodeReport(t *testing.T, res *mcplib.CallToolResult) domain.Report {
	t.Helper()
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(text.Text), &report))
	return report
}

func TestHandleRun(t *testing.T) {
	res, err := handleRun(".", testRunner(nil))(context.Background(), callTool(t, nil))
	require.NoError(t, err)

	report := decodeReport(t, res)
	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, domain.CheckCoupling, report.Outcomes[0].Name)
	assert.Equal(t, domain.StatusFail, report.Outcomes[0].Status)
}

func TestHandleRun_FailFast(t *testing.T) {
	res, err := handleRun(".", testRunner(nil))(context.Background(), callTool(t, map[string]any{"fail_fast": true}))
	require.NoError(t, err)

	report := decodeReport(t, res)
	assert.Len(t, report.Outcomes, 1)
	assert.True(t, report.Aborted)
}

func TestHandleRun_ConfigError(t *testing.T) {
	res, err := handleRun(".", testRunner(errors.New("bad yaml")))(context.Background(), callTool(t, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleCheck(t *testing.T) {
	res, err := handleCheck(".", testRunner(nil))(context.Background(), callTool(t, map[string]any{"check": "budgets"}))
	require.NoError(t, err)

	report := decodeReport(t, res)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, domain.CheckBudgets, report.Outcomes[0].Name)
	assert.True(t, report.Passed())
}

func TestHandleCheck_MissingArgument(t *testing.T) {
	res, err := handleCheck(".", testRunner(nil))(context.Background(), callTool(t, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleCheck_UnknownCheck(t *testing.T) {
	res, err := handleCheck(".", testRunner(nil))(context.Background(), callTool(t, map[string]any{"check": "lint"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleReportResource(t *testing.T) {
	contents, err := handleReportResource(".", testRunner(nil))(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, reportURI, text.URI)
	assert.Contains(t, text.Text, `"outcomes"`)
}

func TestHandleReportResource_ConfigError(t *testing.T) {
	_, err := handleReportResource(".", testRunner(errors.New("bad yaml")))(context.Background(), mcplib.ReadResourceRequest{})
	assert.Error(t, err)
}
