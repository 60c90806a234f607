package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/coupling"
)

// Source implements domain.GraphSource. A configured graph file takes
// precedence; otherwise the source tree is parsed as a Go module.
type Source struct {
	extractor *GoExtractor
}

func New() *Source {
	return &Source{extractor: NewGoExtractor()}
}

func (s *Source) Graph(ctx context.Context, projectPath string, paths domain.PathsConfig) (coupling.ModuleGraph, error) {
	if paths.Graph != "" {
		file := paths.Graph
		if !filepath.IsAbs(file) {
			file = filepath.Join(projectPath, file)
		}
		slog.Debug("loading module graph file", "path", file)
		return LoadJSON(file)
	}

	root := paths.Source
	if !filepath.IsAbs(root) {
		root = filepath.Join(projectPath, root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source tree %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source tree %s is not a directory", root)
	}

	slog.Debug("extracting Go import graph", "root", root)
	return s.extractor.Extract(ctx, root)
}

// LoadJSON reads a madge-style adjacency file: {"module": ["dep", ...]}.
func LoadJSON(path string) (coupling.ModuleGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module graph: %w", err)
	}

	var g coupling.ModuleGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing module graph %s: %w", filepath.Base(path), err)
	}
	if g == nil {
		return nil, errors.New("module graph file is null")
	}
	return g, nil
}
