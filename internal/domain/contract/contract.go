// Package contract models the subset of an OpenAPI document needed to detect
// breaking changes between two versions of an API.
package contract

import (
	"fmt"
	"sort"
	"strings"
)

// Methods lists the path-item keys that describe operations. Other keys
// (parameters, summary, servers, $ref) are ignored.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// IsMethod reports whether key names an HTTP operation.
func IsMethod(key string) bool {
	key = strings.ToLower(key)
	for _, m := range Methods {
		if m == key {
			return true
		}
	}
	return false
}

// Parameter is an operation parameter, identified by name.
type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in,omitempty"`
	Required bool   `json:"required"`
}

// Operation is a single method on a path.
type Operation struct {
	Parameters []Parameter `json:"parameters,omitempty"`
}

// HasParameter reports whether the operation declares a parameter named name.
func (o Operation) HasParameter(name string) bool {
	for _, p := range o.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PathItem maps a lower-case method to its operation.
type PathItem map[string]Operation

// Spec is an API contract keyed by path then method.
type Spec struct {
	Paths map[string]PathItem `json:"paths"`
}

// SortedPaths returns the spec's paths in lexical order.
func (s *Spec) SortedPaths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.Paths))
	for p := range s.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Operation looks up a path+method.
func (s *Spec) Operation(path, method string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	item, ok := s.Paths[path]
	if !ok {
		return Operation{}, false
	}
	op, ok := item[method]
	return op, ok
}

// Change kinds.
const (
	KindRemovedEndpoint      = "removed endpoint"
	KindNewRequiredParameter = "new required parameter"
)

// BreakingChange is a modification that could break an existing client.
type BreakingChange struct {
	Kind       string   `json:"kind"`
	Path       string   `json:"path"`
	Method     string   `json:"method,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
}

func (c BreakingChange) String() string {
	switch c.Kind {
	case KindNewRequiredParameter:
		return fmt.Sprintf("%s in %s %s: %s",
			c.Kind, strings.ToUpper(c.Method), c.Path, strings.Join(c.Parameters, ", "))
	default:
		return fmt.Sprintf("%s: %s", c.Kind, c.Path)
	}
}

// Diff computes the breaking changes from previous to current. Removed
// endpoints are reported first, then new required parameters. Endpoints that
// exist only in current are never breaking.
func Diff(current, previous *Spec) []BreakingChange {
	if current == nil {
		current = &Spec{}
	}
	var changes []BreakingChange

	for _, path := range previous.SortedPaths() {
		if _, ok := current.Paths[path]; !ok {
			changes = append(changes, BreakingChange{Kind: KindRemovedEndpoint, Path: path})
		}
	}

	for _, path := range current.SortedPaths() {
		item := current.Paths[path]
		for _, method := range Methods {
			op, ok := item[method]
			if !ok {
				continue
			}
			prev, ok := previous.Operation(path, method)
			if !ok {
				continue
			}

			var added []string
			for _, p := range op.Parameters {
				if p.Required && !prev.HasParameter(p.Name) {
					added = append(added, p.Name)
				}
			}
			if len(added) > 0 {
				changes = append(changes, BreakingChange{
					Kind:       KindNewRequiredParameter,
					Path:       path,
					Method:     method,
					Parameters: added,
				})
			}
		}
	}

	return changes
}
