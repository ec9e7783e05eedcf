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
	Options Options `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	Output       string   `yaml:"output" json:"output"`
	RenderImport string   `yaml:"renderImport" json:"renderImport"`
	IncludeTypes []string `yaml:"includeTypes" json:"includeTypes"`
	ExcludeTypes []string `yaml:"excludeTypes" json:"excludeTypes"`
	BuildTags    []string `yaml:"buildTags" json:"buildTags"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Options: DefaultOptions(),
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
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.Options.Output != "" {
		c.Options.Output = loaded.Options.Output
	}
	if loaded.Options.RenderImport != "" {
		c.Options.RenderImport = loaded.Options.RenderImport
	}
	if len(loaded.Options.IncludeTypes) > 0 {
		c.Options.IncludeTypes = loaded.Options.IncludeTypes
	}
	if len(loaded.Options.ExcludeTypes) > 0 {
		c.Options.ExcludeTypes = loaded.Options.ExcludeTypes
	}
	c.Options.BuildTags = append(c.Options.BuildTags, loaded.Options.BuildTags...)
}

// OutputName returns the output file name for a package.
func (c *Config) OutputName(pkg string) string {
	if c.Options.Output != "" {
		return c.Options.Output
	}
	return strings.ToLower(pkg) + "_enumtmpl.go"
}

// SelectTypes filters candidate union names based on config. Without an
// include list every candidate is kept.
func (c *Config) SelectTypes(candidates []string) []string {
	names := candidates
	if len(c.Options.IncludeTypes) > 0 {
		names = c.Options.IncludeTypes
	}

	result := make([]string, 0, len(names))
	for _, name := range names {
		if !c.excluded(name) {
			result = append(result, name)
		}
	}
	return result
}

func (c *Config) excluded(name string) bool {
	for _, t := range c.Options.ExcludeTypes {
		if t == name {
			return true
		}
	}
	return false
}
