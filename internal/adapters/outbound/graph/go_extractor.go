package graph

import (
	"context"
	"errors"
	"fmt"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/openkraft/archfit/internal/domain/coupling"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// GoExtractor builds a package-level import graph from a Go source tree.
// Module ids are directories relative to the module root; only imports that
// stay inside the module become edges.
type GoExtractor struct{}

func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

func (e *GoExtractor) Extract(ctx context.Context, root string) (coupling.ModuleGraph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	modRoot, modulePath, err := findModule(absRoot)
	if err != nil {
		return nil, err
	}

	g := coupling.ModuleGraph{}
	fset := token.NewFileSet()

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		file, err := goparser.ParseFile(fset, path, nil, goparser.ImportsOnly)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		rel, err := filepath.Rel(modRoot, filepath.Dir(path))
		if err != nil {
			return err
		}
		pkg := packageID(rel)
		if _, ok := g[pkg]; !ok {
			g[pkg] = nil
		}

		for _, imp := range file.Imports {
			target, ok := internalTarget(modulePath, strings.Trim(imp.Path.Value, `"`))
			if !ok || target == pkg || containsString(g[pkg], target) {
				continue
			}
			g[pkg] = append(g[pkg], target)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for pkg := range g {
		sort.Strings(g[pkg])
	}
	return g, nil
}

// findModule walks up from dir to the nearest go.mod and returns its
// directory and module path.
func findModule(dir string) (string, string, error) {
	for cur := dir; ; {
		data, err := os.ReadFile(filepath.Join(cur, "go.mod"))
		if err == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return "", "", fmt.Errorf("go.mod in %s has no module directive", cur)
			}
			return cur, path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", "", fmt.Errorf("no go.mod found above %s: %w", dir, os.ErrNotExist)
		}
		cur = parent
	}
}

func packageID(rel string) string {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "."
	}
	return rel
}

func internalTarget(modulePath, imp string) (string, bool) {
	if imp == modulePath {
		return ".", true
	}
	if strings.HasPrefix(imp, modulePath+"/") {
		return strings.TrimPrefix(imp, modulePath+"/"), true
	}
	return "", false
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
