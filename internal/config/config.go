// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package config loads settings for the jdom command-line tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command-line tool.
type Config struct {
	// MaxDepth limits the nesting depth of parsed input.
	// Zero means the parser default.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	// Standardize converts JWCC input (comments, trailing commas) to plain
	// JSON before parsing.
	Standardize bool `yaml:"standardize" toml:"standardize"`

	// Format controls pretty-printed output.
	Format FormatConfig `yaml:"format" toml:"format"`
}

// FormatConfig controls pretty-printed output.
type FormatConfig struct {
	Indent       string `yaml:"indent" toml:"indent"`
	MaxLineItems int    `yaml:"max_line_items" toml:"max_line_items"`
	Compact      bool   `yaml:"compact" toml:"compact"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Format: FormatConfig{Indent: "  ", MaxLineItems: 3},
	}
}

// Load reads a configuration file. The format is chosen by the extension of
// path: .yaml and .yml files are YAML, .toml files are TOML. Settings not
// named in the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports an error if c has settings out of range.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative (got %d)", c.MaxDepth)
	}
	return c.Format.Validate()
}

// Validate reports an error if f has settings out of range.
func (f FormatConfig) Validate() error {
	if f.MaxLineItems < 0 {
		return fmt.Errorf("max_line_items must not be negative (got %d)", f.MaxLineItems)
	}
	if strings.Trim(f.Indent, " \t") != "" {
		return fmt.Errorf("indent must be spaces or tabs (got %q)", f.Indent)
	}
	return nil
}
