// Package config loads the poolwatch deployments file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Version     string       `yaml:"version"`
	OutputDir   string       `yaml:"output_dir,omitempty"`
	SnapshotDB  string       `yaml:"snapshot_db,omitempty"`
	Deployments []Deployment `yaml:"deployments"`
}

// Deployment is one worker-manager endpoint the report command targets.
type Deployment struct {
	Name    string `yaml:"name"`
	RootURL string `yaml:"root_url"`
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "reports"
	}

	return &cfg, nil
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(c.Deployments) == 0 {
		return fmt.Errorf("at least one deployment is required")
	}
	seen := map[string]bool{}
	for i, d := range c.Deployments {
		if d.Name == "" {
			return fmt.Errorf("deployment %d: name is required", i)
		}
		if d.RootURL == "" {
			return fmt.Errorf("deployment %s: root_url is required", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("deployment %s: duplicate name", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Deployment returns the named deployment, or an error listing what is
// configured.
func (c *Config) Deployment(name string) (Deployment, error) {
	for _, d := range c.Deployments {
		if d.Name == name {
			return d, nil
		}
	}
	names := make([]string, len(c.Deployments))
	for i, d := range c.Deployments {
		names[i] = d.Name
	}
	return Deployment{}, fmt.Errorf("unknown deployment %q (configured: %s)",
		name, strings.Join(names, ", "))
}
