// Package am holds the shapeshare configuration.
//
// Configuration is merged from, lowest precedence first:
//   - built-in defaults (SetDefaults)
//   - the user file ~/.shapeshare/shapeshare.toml
//   - the project file shapeshare.toml, found by walking up from the working directory
//   - SHAPESHARE_* environment variables (SHAPESHARE_KOTLIN_PACKAGE, ...)
package am

import (
	"github.com/teranos/shapeshare/model"
)

const (
	// ConfigFileName is the project and user configuration file name
	ConfigFileName = "shapeshare.toml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "SHAPESHARE"
	// DefaultDirPermissions is used when creating the user config directory
	DefaultDirPermissions = 0750
)

// Config is the complete shapeshare configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Kotlin   KotlinConfig   `mapstructure:"kotlin" toml:"kotlin" json:"kotlin" yaml:"kotlin"`
	Scala    ScalaConfig    `mapstructure:"scala" toml:"scala" json:"scala" yaml:"scala"`
}

// GenerateConfig controls a generate run.
type GenerateConfig struct {
	// Model is the path of the model document
	Model string `mapstructure:"model" toml:"model" json:"model" yaml:"model"`
	// Output is the directory generated files are written to; empty means stdout
	Output string `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	// Languages lists the backends to run
	Languages []string `mapstructure:"languages" toml:"languages" json:"languages" yaml:"languages" validate:"dive,oneof=kotlin scala"`
	// Policy is fail, warn or skip for capabilities a backend lacks
	Policy string `mapstructure:"policy" toml:"policy" json:"policy" yaml:"policy" validate:"omitempty,oneof=fail warn skip"`
	// MinVersion is a semver constraint the running binary must satisfy
	MinVersion string `mapstructure:"min_version" toml:"min_version" json:"min_version" yaml:"min_version"`
}

// KotlinConfig configures the Kotlin backend.
type KotlinConfig struct {
	Package         string            `mapstructure:"package" toml:"package" json:"package" yaml:"package" validate:"omitempty,qualified"`
	ModuleName      string            `mapstructure:"module_name" toml:"module_name" json:"module_name" yaml:"module_name"`
	Prefix          string            `mapstructure:"prefix" toml:"prefix" json:"prefix" yaml:"prefix" validate:"omitempty,identifier"`
	TypeMappings    map[string]string `mapstructure:"type_mappings" toml:"type_mappings" json:"type_mappings" yaml:"type_mappings"`
	NoVersionHeader bool              `mapstructure:"no_version_header" toml:"no_version_header" json:"no_version_header" yaml:"no_version_header"`
}

// ScalaConfig configures the Scala backend. Scala has no type prefix.
type ScalaConfig struct {
	Package         string            `mapstructure:"package" toml:"package" json:"package" yaml:"package" validate:"omitempty,qualified"`
	ModuleName      string            `mapstructure:"module_name" toml:"module_name" json:"module_name" yaml:"module_name"`
	TypeMappings    map[string]string `mapstructure:"type_mappings" toml:"type_mappings" json:"type_mappings" yaml:"type_mappings"`
	NoVersionHeader bool              `mapstructure:"no_version_header" toml:"no_version_header" json:"no_version_header" yaml:"no_version_header"`
}

// Enabled reports whether lang is in the configured language list.
func (c *Config) Enabled(lang model.Lang) bool {
	for _, l := range c.Generate.Languages {
		if model.Lang(l) == lang {
			return true
		}
	}
	return false
}
