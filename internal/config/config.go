package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/mergelists/internal/record"
)

// Config holds settings loaded from mergelists.yml.
type Config struct {
	Workers int    `yaml:"workers,omitempty"`
	Indent  string `yaml:"indent,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{Workers: 1, Indent: record.DefaultIndent}
}

// Load attempts to read mergelists.yml or mergelists.yaml from the given
// directory. Returns the default config (not an error) if no config file
// exists. Fields left unset in the file keep their defaults.
func Load(dir string) (*Config, error) {
	for _, name := range []string{"mergelists.yml", "mergelists.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if cfg.Workers < 1 {
			cfg.Workers = 1
		}
		return cfg, nil
	}
	return Default(), nil
}
