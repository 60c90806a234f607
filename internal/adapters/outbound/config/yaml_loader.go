package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openkraft/archfit/internal/domain"
)

const (
	fileName = ".archfit.yaml"
	envFile  = ".env"

	EnvPrometheusURL = "PROMETHEUS_URL"
	EnvAppURL        = "APP_URL"
)

// YAMLLoader implements domain.ConfigLoader by reading .archfit.yaml.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader that reads overrides from the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithEnv creates a YAMLLoader with a custom environment lookup.
func NewWithEnv(getenv func(string) string) *YAMLLoader { return &YAMLLoader{getenv: getenv} }

// Load reads .archfit.yaml from projectPath and applies environment
// overrides. Returns the default configuration if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	// A .env next to the project supplies variables the CI job did not set.
	// godotenv never overrides variables that are already present.
	if err := godotenv.Load(filepath.Join(projectPath, envFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	var raw domain.ProjectConfig
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return domain.Config{}, err
	}

	cfg, err := raw.Resolve()
	if err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	if v := strings.TrimSpace(l.getenv(EnvPrometheusURL)); v != "" {
		cfg.PrometheusURL = v
	}
	if v := strings.TrimSpace(l.getenv(EnvAppURL)); v != "" {
		cfg.AppURL = v
	}

	return cfg, nil
}
