package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Load reads a YAML configuration file. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d)
}

// Parse unmarshals YAML configuration over the defaults.
func Parse(d []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalWithOptions(d, c, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
