package artifacts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/openkraft/archfit/internal/domain/budget"
)

// Sizer implements domain.ArtifactSizer. Patterns use doublestar syntax, so
// "assets/index-*.js" and "**/*" both resolve; the measured size is the sum
// of every regular file matched.
type Sizer struct{}

func New() *Sizer {
	return &Sizer{}
}

func (s *Sizer) Measure(distDir, pattern string) (budget.Measurement, error) {
	m := budget.Measurement{Name: pattern}

	if !doublestar.ValidatePattern(pattern) {
		return m, fmt.Errorf("invalid artifact pattern %q", pattern)
	}

	fsys := os.DirFS(distDir)
	matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
	if err != nil {
		return m, fmt.Errorf("resolving %s: %w", pattern, err)
	}

	for _, match := range matches {
		info, err := fs.Stat(fsys, match)
		if err != nil {
			return m, fmt.Errorf("stat %s: %w", match, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		m.Files++
		m.Bytes += info.Size()
	}
	m.Found = m.Files > 0
	return m, nil
}
