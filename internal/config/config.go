// Package config provides configuration loading for loppers.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command-line flags that were explicitly set
//  2. Environment variables (LOPPERS_*)
//  3. Project config (.loppers.yml or .loppers.yaml in the processed root)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: LOPPERS_
//   - Nested fields: Use underscores (LOPPERS_DISCOVERY_MAX_FILE_SIZE_KB)
//   - List values are comma separated (LOPPERS_DISCOVERY_IGNORE="*.gen.go,fixtures/")
package config

import (
	"github.com/mvp-joe/loppers/internal/discovery"
)

// Config represents the complete loppers configuration.
type Config struct {
	Discovery   DiscoveryConfig   `yaml:"discovery" mapstructure:"discovery"`
	Concatenate ConcatenateConfig `yaml:"concatenate" mapstructure:"concatenate"`
	Tree        TreeConfig        `yaml:"tree" mapstructure:"tree"`
	Languages   LanguagesConfig   `yaml:"languages" mapstructure:"languages"`
}

// DiscoveryConfig controls which files are walked.
type DiscoveryConfig struct {
	Recursive        bool     `yaml:"recursive" mapstructure:"recursive"`
	UseDefaultIgnore bool     `yaml:"use_default_ignore" mapstructure:"use_default_ignore"`
	RespectGitignore bool     `yaml:"respect_gitignore" mapstructure:"respect_gitignore"`
	Ignore           []string `yaml:"ignore" mapstructure:"ignore"`                     // gitignore lines
	Include          []string `yaml:"include" mapstructure:"include"`                   // glob patterns, empty means all
	MaxFileSizeKB    int64    `yaml:"max_file_size_kb" mapstructure:"max_file_size_kb"` // 0 means unlimited
}

// ConcatenateConfig controls the concatenate command.
type ConcatenateConfig struct {
	Extract bool   `yaml:"extract" mapstructure:"extract"`
	Workers int    `yaml:"workers" mapstructure:"workers"` // 0 means one per CPU
	Format  string `yaml:"format" mapstructure:"format"`   // "text" or "yaml"
}

// TreeConfig controls the tree command.
type TreeConfig struct {
	CollapseSingleDirs bool `yaml:"collapse_single_dirs" mapstructure:"collapse_single_dirs"`
}

// LanguagesConfig maps extra file extensions onto registered languages.
// Extensions are written without the leading dot (e.g. "gotmpl: go").
type LanguagesConfig struct {
	Overrides map[string]string `yaml:"overrides" mapstructure:"overrides"`
}

// Output formats accepted by concatenate.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Recursive:        true,
			UseDefaultIgnore: true,
			RespectGitignore: true,
			Ignore:           []string{},
			Include:          []string{},
		},
		Concatenate: ConcatenateConfig{
			Extract: true,
			Format:  FormatText,
		},
		Languages: LanguagesConfig{
			Overrides: map[string]string{},
		},
	}
}

// Options converts the discovery section into discovery.Options.
func (d DiscoveryConfig) Options() discovery.Options {
	return discovery.Options{
		Recursive:        d.Recursive,
		UseDefaultIgnore: d.UseDefaultIgnore,
		RespectGitignore: d.RespectGitignore,
		IgnorePatterns:   append([]string(nil), d.Ignore...),
		IncludePatterns:  append([]string(nil), d.Include...),
		MaxFileSize:      d.MaxFileSizeKB * 1024,
	}
}
