// Package config loads engine options from a YAML file.
//
//	version: "1"
//	tag: bind             # struct tag holding member names
//	private_prefix: "_"   # names starting with it are not enumerated
//	type_check: warn      # warn | off
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fieldpath/internal/members"
)

const (
	TypeCheckWarn = "warn"
	TypeCheckOff  = "off"
)

// Config holds the engine options.
type Config struct {
	Version       string  `yaml:"version"`
	Tag           string  `yaml:"tag,omitempty"`
	PrivatePrefix *string `yaml:"private_prefix,omitempty"`
	TypeCheck     string  `yaml:"type_check,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config

	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Tag == "" {
		c.Tag = members.DefaultTag
	}

	if c.PrivatePrefix == nil {
		prefix := members.DefaultPrivatePrefix
		c.PrivatePrefix = &prefix
	}

	if c.TypeCheck == "" {
		c.TypeCheck = TypeCheckWarn
	}
}

// Validate checks option values.
func (c *Config) Validate() error {
	if c.Version != "1" {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}

	switch c.TypeCheck {
	case TypeCheckWarn, TypeCheckOff:
	default:
		return fmt.Errorf("invalid type_check %q: want %q or %q", c.TypeCheck, TypeCheckWarn, TypeCheckOff)
	}

	return nil
}

// MemberOptions returns the member naming options.
func (c *Config) MemberOptions() members.Options {
	opts := members.Options{Tag: c.Tag}
	if c.PrivatePrefix != nil {
		opts.PrivatePrefix = *c.PrivatePrefix
	}

	return opts
}

// TypeCheckEnabled reports whether type-mismatch warnings are emitted.
func (c *Config) TypeCheckEnabled() bool {
	return c.TypeCheck != TypeCheckOff
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
