package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/firefly/retirement-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FIREFLY_RETURN_RATE.
const EnvPrefix = "FIREFLY_"

// LoadAssumptions builds the assumption set: built-in defaults, then the
// optional YAML file at path, then FIREFLY_* environment variables.
// Only keys present in the file or environment replace a default.
func LoadAssumptions(path string) (domain.Assumptions, error) {
	a := domain.DefaultAssumptions()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Assumptions{}, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &a); err != nil {
			return domain.Assumptions{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := env.ParseWithOptions(&a, env.Options{Prefix: EnvPrefix}); err != nil {
		return domain.Assumptions{}, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if err := a.Validate(); err != nil {
		return domain.Assumptions{}, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return a, nil
}
