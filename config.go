package gql

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by LoadConfig when the given path does not
// exist.
var ErrConfigNotFound = errors.New("gql: config file not found")

// Config controls which semantic validation passes run and how strict they
// are (spec §6.2). The zero value turns every option off, including the
// shadowing and disconnected-pattern warnings; DefaultConfig returns the
// documented defaults.
type Config struct {
	// StrictMode promotes selected warnings to errors and enables stricter
	// aggregation/type-consistency checks.
	StrictMode bool `yaml:"strict_mode"`

	// SchemaValidation enables pass 9 if a schema collaborator is supplied
	// to Validate.
	SchemaValidation bool `yaml:"schema_validation"`

	// CatalogValidation enables pass 8 if a catalog collaborator is
	// supplied to Validate.
	CatalogValidation bool `yaml:"catalog_validation"`

	// WarnOnShadowing emits VARIABLE_SHADOWING warnings. Defaults to on;
	// set via DefaultConfig or an explicit YAML document.
	WarnOnShadowing bool `yaml:"warn_on_shadowing"`

	// WarnOnDisconnectedPatterns emits DISCONNECTED_PATTERN warnings.
	// Defaults to on.
	WarnOnDisconnectedPatterns bool `yaml:"warn_on_disconnected_patterns"`
}

// DefaultConfig returns the spec's documented defaults (§6.2): shadowing and
// disconnected-pattern warnings on, everything else off.
func DefaultConfig() Config {
	return Config{
		WarnOnShadowing:            true,
		WarnOnDisconnectedPatterns: true,
	}
}

// LoadConfig reads and unmarshals a validator configuration file from path,
// mirroring the teacher's `.scaf.yaml` loading convention (`LoadConfigFile`
// in the teacher's config.go). The document is decoded over DefaultConfig,
// so fields absent from the YAML document keep their documented defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}

		return nil, err
	}

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
