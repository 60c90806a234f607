package domain

import (
	"context"
	"net/http"

	"github.com/openkraft/archfit/internal/domain/budget"
	"github.com/openkraft/archfit/internal/domain/contract"
	"github.com/openkraft/archfit/internal/domain/coupling"
	"github.com/openkraft/archfit/internal/domain/migration"
)

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// GraphSource produces the module dependency graph. Implementations return
// an error wrapping os.ErrNotExist when there is nothing to analyze.
type GraphSource interface {
	Graph(ctx context.Context, projectPath string, paths PathsConfig) (coupling.ModuleGraph, error)
}

// ArtifactSizer resolves a budgeted artifact glob under a build output dir.
type ArtifactSizer interface {
	Measure(distDir, pattern string) (budget.Measurement, error)
}

// SpecLoader reads an API contract from disk.
type SpecLoader interface {
	Load(path string) (*contract.Spec, error)
	Parse(data []byte) (*contract.Spec, error)
}

// MigrationSource lists migration files ordered by filename.
type MigrationSource interface {
	List(dir string) ([]migration.File, error)
}

// MetricsQuerier evaluates an instant query and returns its first scalar.
// ok is false when the query returned no rows.
type MetricsQuerier interface {
	QueryScalar(ctx context.Context, query string) (value float64, ok bool, err error)
}

// HeaderFetcher issues a single request and returns the response headers.
type HeaderFetcher interface {
	FetchHeaders(ctx context.Context, url string) (http.Header, error)
}

// GitInfo provides repository metadata.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
	ReadFileAtRef(projectPath, ref, path string) ([]byte, error)
}
