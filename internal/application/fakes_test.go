package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/budget"
	"github.com/openkraft/archfit/internal/domain/contract"
	"github.com/openkraft/archfit/internal/domain/coupling"
	"github.com/openkraft/archfit/internal/domain/migration"
)

type fakeConfigLoader struct {
	cfg domain.Config
	err error
}

func (f fakeConfigLoader) Load(string) (domain.Config, error) { return f.cfg, f.err }

type fakeGraphSource struct {
	graph coupling.ModuleGraph
	err   error
}

func (f fakeGraphSource) Graph(context.Context, string, domain.PathsConfig) (coupling.ModuleGraph, error) {
	return f.graph, f.err
}

type fakeSizer map[string]int64

func (f fakeSizer) Measure(_ string, pattern string) (budget.Measurement, error) {
	size, ok := f[pattern]
	if !ok {
		return budget.Measurement{Name: pattern}, nil
	}
	return budget.Measurement{Name: pattern, Found: true, Files: 1, Bytes: size}, nil
}

// brokenSizer fails to measure one pattern and defers the rest to sizes.
type brokenSizer struct {
	sizes fakeSizer
	bad   string
}

func (f brokenSizer) Measure(dist, pattern string) (budget.Measurement, error) {
	if pattern == f.bad {
		return budget.Measurement{}, fmt.Errorf("invalid artifact pattern %q", pattern)
	}
	return f.sizes.Measure(dist, pattern)
}

// fakeSpecs serves specs by path; unknown paths behave like missing files.
type fakeSpecs struct {
	byPath map[string]*contract.Spec
	parsed *contract.Spec
}

func (f fakeSpecs) Load(path string) (*contract.Spec, error) {
	if s, ok := f.byPath[path]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("reading %s: %w", path, os.ErrNotExist)
}

func (f fakeSpecs) Parse([]byte) (*contract.Spec, error) {
	if f.parsed == nil {
		return nil, errors.New("parse error")
	}
	return f.parsed, nil
}

type fakeMigrations struct {
	files []migration.File
	err   error
}

func (f fakeMigrations) List(string) ([]migration.File, error) { return f.files, f.err }

type sample struct {
	value float64
	ok    bool
	err   error
}

type fakeQuerier struct {
	byQuery map[string]sample
	calls   *[]string
}

func (f fakeQuerier) QueryScalar(_ context.Context, query string) (float64, bool, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, query)
	}
	s := f.byQuery[query]
	return s.value, s.ok, s.err
}

type fakeFetcher struct {
	header http.Header
	err    error
	urls   *[]string
}

func (f fakeFetcher) FetchHeaders(_ context.Context, url string) (http.Header, error) {
	if f.urls != nil {
		*f.urls = append(*f.urls, url)
	}
	return f.header, f.err
}

type fakeGit struct {
	hash    string
	files   map[string][]byte
	hashErr error
}

func (f fakeGit) CommitHash(string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return f.hash, nil
}

func (f fakeGit) ReadFileAtRef(_, ref, path string) ([]byte, error) {
	data, ok := f.files[ref+":"+path]
	if !ok {
		return nil, fmt.Errorf("%s not found at %s", path, ref)
	}
	return data, nil
}

// stubCheck records whether it ran and returns a fixed outcome.
type stubCheck struct {
	name      string
	mandatory bool
	outcome   domain.CheckOutcome
	ran       *[]string
}

func (s stubCheck) Name() string    { return s.name }
func (s stubCheck) Mandatory() bool { return s.mandatory }

func (s stubCheck) Run(context.Context, string, domain.Config) domain.CheckOutcome {
	if s.ran != nil {
		*s.ran = append(*s.ran, s.name)
	}
	o := s.outcome
	o.Mandatory = s.mandatory
	return o
}
