package main_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "archfit-e2e")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(dir, "archfit")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func fixturePath() string {
	abs, _ := filepath.Abs("../../testdata/project")
	return abs
}

func run(t *testing.T, env []string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func TestE2E_Run(t *testing.T) {
	out, code := run(t, nil, "run", "--path", fixturePath())
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "All fitness functions passed")
}

func TestE2E_RunJSON(t *testing.T) {
	cmd := exec.Command(binaryPath, "run", "--path", fixturePath(), "--json")
	out, err := cmd.Output()
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Len(t, report.Outcomes, 6)
	assert.False(t, report.Aborted)
}

func TestE2E_VerboseLogsToStderr(t *testing.T) {
	cmd := exec.Command(binaryPath, "check", "coupling", "--path", fixturePath(), "--json", "--verbose")
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	require.NoError(t, cmd.Run())

	assert.Contains(t, stderr.String(), "level=DEBUG")
	assert.Contains(t, stderr.String(), "running check")

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(stdout.String()), &report), "stdout stays pure JSON")
}

func TestE2E_FailingProjectExitsOne(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deps.json"), []byte(`{"core/a": ["features/b"]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archfit.yaml"), []byte("paths:\n  graph: deps.json\n"), 0644))

	out, code := run(t, nil, "check", "coupling", "--path", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "core module core/a depends on feature module features/b")
}

func TestE2E_FailedRunPrintsOnlyTheReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deps.json"), []byte(`{"A": ["B"], "B": ["A"]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archfit.yaml"), []byte("paths:\n  graph: deps.json\n"), 0644))

	cmd := exec.Command(binaryPath, "check", "coupling", "--path", dir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stdout.String(), "Coupling check failed")
	assert.NotContains(t, stderr.String(), "Error:")
}

func TestE2E_InvalidConfigPrintsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archfit.yaml"), []byte("skip: [lint]\n"), 0644))

	cmd := exec.Command(binaryPath, "run", "--path", dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "lint")
}

func TestE2E_HeadersAgainstUnreachableApp(t *testing.T) {
	out, code := run(t, []string{"APP_URL=http://127.0.0.1:1"}, "check", "headers", "--path", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Security headers check failed")
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, nil, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "archfit")
}
