package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openkraft/archfit/internal/domain/migration"
)

// DirReader implements domain.MigrationSource over a flat directory of .sql files.
type DirReader struct{}

func New() *DirReader {
	return &DirReader{}
}

// List returns the .sql files in dir sorted by filename. A missing directory
// is returned as an error wrapping os.ErrNotExist.
func (r *DirReader) List(dir string) ([]migration.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]migration.File, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}
		files = append(files, migration.File{Name: name, SQL: string(data)})
	}
	return files, nil
}
