package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	Language  string   `yaml:"language" json:"language"`
	Output    string   `yaml:"output" json:"output"`
	Namespace string   `yaml:"namespace" json:"namespace"`
	Inputs    []string `yaml:"inputs" json:"inputs"`
	Verbose   bool     `yaml:"verbose" json:"verbose"`
	OpenAPI   OpenAPI  `yaml:"openapi" json:"openapi"`
}

// OpenAPI holds options of the openapi backend.
type OpenAPI struct {
	LessInfoTypes []string `yaml:"lessInfoTypes" json:"lessInfoTypes"`
	Title         string   `yaml:"title" json:"title"`
	Version       string   `yaml:"version" json:"version"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Output:  ".",
		OpenAPI: DefaultOpenAPI(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge overrides the current values with every value set in loaded.
func (c *Config) merge(loaded *Config) {
	if loaded.Language != "" {
		c.Language = loaded.Language
	}
	if loaded.Output != "" {
		c.Output = loaded.Output
	}
	if loaded.Namespace != "" {
		c.Namespace = loaded.Namespace
	}
	if len(loaded.Inputs) > 0 {
		c.Inputs = loaded.Inputs
	}
	if loaded.Verbose {
		c.Verbose = true
	}

	if loaded.OpenAPI.LessInfoTypes != nil {
		c.OpenAPI.LessInfoTypes = loaded.OpenAPI.LessInfoTypes
	}
	if loaded.OpenAPI.Title != "" {
		c.OpenAPI.Title = loaded.OpenAPI.Title
	}
	if loaded.OpenAPI.Version != "" {
		c.OpenAPI.Version = loaded.OpenAPI.Version
	}
}

// IsLessInfoType reports whether references to name are rendered as plain
// strings. Names are compared ignoring case.
func (c *Config) IsLessInfoType(name string) bool {
	for _, t := range c.OpenAPI.LessInfoTypes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
