package openapi

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/archfit/internal/domain/contract"
)

const componentParamPrefix = "#/components/parameters/"

// Loader implements domain.SpecLoader for OpenAPI 3 documents in YAML or JSON.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

type rawParameter struct {
	Ref      string `yaml:"$ref"`
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required"`
}

type rawOperation struct {
	Parameters []rawParameter `yaml:"parameters"`
}

type rawDocument struct {
	Paths      map[string]map[string]yaml.Node `yaml:"paths"`
	Components struct {
		Parameters map[string]rawParameter `yaml:"parameters"`
	} `yaml:"components"`
}

func (l *Loader) Load(path string) (*contract.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes an OpenAPI document. Only HTTP method keys of each path item
// are kept, and local parameter references are resolved against
// components.parameters.
func (l *Loader) Parse(data []byte) (*contract.Spec, error) {
	var doc rawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing openapi document: %w", err)
	}

	spec := &contract.Spec{Paths: make(map[string]contract.PathItem, len(doc.Paths))}

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		// A null path item declares nothing, so the path counts as absent.
		if doc.Paths[path] == nil {
			continue
		}
		item := contract.PathItem{}
		for key, node := range doc.Paths[path] {
			if !contract.IsMethod(key) {
				continue
			}
			var raw rawOperation
			if err := node.Decode(&raw); err != nil {
				return nil, fmt.Errorf("decoding %s %s: %w", strings.ToUpper(key), path, err)
			}
			op, err := resolveOperation(raw, doc.Components.Parameters)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(key), path, err)
			}
			item[strings.ToLower(key)] = op
		}
		spec.Paths[path] = item
	}

	return spec, nil
}

func resolveOperation(raw rawOperation, components map[string]rawParameter) (contract.Operation, error) {
	var op contract.Operation
	for _, p := range raw.Parameters {
		if p.Ref != "" {
			resolved, err := resolveRef(p.Ref, components)
			if err != nil {
				return op, err
			}
			p = resolved
		}
		op.Parameters = append(op.Parameters, contract.Parameter{
			Name:     p.Name,
			In:       p.In,
			Required: p.Required,
		})
	}
	return op, nil
}

func resolveRef(ref string, components map[string]rawParameter) (rawParameter, error) {
	if !strings.HasPrefix(ref, componentParamPrefix) {
		return rawParameter{}, fmt.Errorf("unsupported parameter reference %q", ref)
	}
	p, ok := components[strings.TrimPrefix(ref, componentParamPrefix)]
	if !ok {
		return rawParameter{}, fmt.Errorf("unresolved parameter reference %q", ref)
	}
	if p.Ref != "" {
		return rawParameter{}, fmt.Errorf("nested parameter reference %q", ref)
	}
	return p, nil
}
