package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/archfit/internal/adapters/outbound/artifacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSized(t *testing.T, root, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestSizer_PlainFile(t *testing.T) {
	dist := t.TempDir()
	writeSized(t, dist, "bundle.js", 20480)

	m, err := artifacts.New().Measure(dist, "bundle.js")
	require.NoError(t, err)
	assert.True(t, m.Found)
	assert.Equal(t, 1, m.Files)
	assert.Equal(t, int64(20480), m.Bytes)
}

func TestSizer_MissingFile(t *testing.T) {
	m, err := artifacts.New().Measure(t.TempDir(), "bundle.js")
	require.NoError(t, err)
	assert.False(t, m.Found)
}

func TestSizer_GlobSumsMatches(t *testing.T) {
	dist := t.TempDir()
	writeSized(t, dist, "assets/index-abc123.js", 1000)
	writeSized(t, dist, "assets/index-def456.js", 500)
	writeSized(t, dist, "assets/index-abc123.css", 300)

	m, err := artifacts.New().Measure(dist, "assets/index-*.js")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Files)
	assert.Equal(t, int64(1500), m.Bytes)
}

func TestSizer_DoubleStarTotal(t *testing.T) {
	dist := t.TempDir()
	writeSized(t, dist, "index.html", 100)
	writeSized(t, dist, "assets/a.js", 200)
	writeSized(t, dist, "assets/img/logo.png", 300)

	m, err := artifacts.New().Measure(dist, "**/*")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Files, "directories are not counted")
	assert.Equal(t, int64(600), m.Bytes)
}

func TestSizer_InvalidPattern(t *testing.T) {
	_, err := artifacts.New().Measure(t.TempDir(), "assets/[")
	assert.Error(t, err)
}
