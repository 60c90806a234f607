package migrations_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/archfit/internal/adapters/outbound/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirReader_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"0002_add_index.sql": "CREATE INDEX i ON t(x);",
		"0001_init.sql":      "CREATE TABLE t (x int);",
		"README.md":          "DROP TABLE docs;",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0755))

	files, err := migrations.New().List(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "0001_init.sql", files[0].Name)
	assert.Equal(t, "0002_add_index.sql", files[1].Name)
	assert.Equal(t, "CREATE TABLE t (x int);", files[0].SQL)
}

func TestDirReader_MissingDir(t *testing.T) {
	_, err := migrations.New().List(filepath.Join(t.TempDir(), "migrations"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDirReader_EmptyDir(t *testing.T) {
	files, err := migrations.New().List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
