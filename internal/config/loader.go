package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that looks for .loppers.yml / .loppers.yaml in rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader for an explicit config file. A missing file is an error.
func NewFileLoader(path string) Loader {
	return &loader{configFile: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (LOPPERS_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".loppers")
		v.AddConfigPath(l.rootDir)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LOPPERS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVars(v)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only a missing searched-for file is acceptable
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// Discovery configuration
	v.BindEnv("discovery.recursive")
	v.BindEnv("discovery.use_default_ignore")
	v.BindEnv("discovery.respect_gitignore")
	v.BindEnv("discovery.ignore")
	v.BindEnv("discovery.include")
	v.BindEnv("discovery.max_file_size_kb")

	// Concatenate configuration
	v.BindEnv("concatenate.extract")
	v.BindEnv("concatenate.workers")
	v.BindEnv("concatenate.format")

	// Tree configuration
	v.BindEnv("tree.collapse_single_dirs")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("discovery.recursive", defaults.Discovery.Recursive)
	v.SetDefault("discovery.use_default_ignore", defaults.Discovery.UseDefaultIgnore)
	v.SetDefault("discovery.respect_gitignore", defaults.Discovery.RespectGitignore)
	v.SetDefault("discovery.ignore", defaults.Discovery.Ignore)
	v.SetDefault("discovery.include", defaults.Discovery.Include)
	v.SetDefault("discovery.max_file_size_kb", defaults.Discovery.MaxFileSizeKB)

	v.SetDefault("concatenate.extract", defaults.Concatenate.Extract)
	v.SetDefault("concatenate.workers", defaults.Concatenate.Workers)
	v.SetDefault("concatenate.format", defaults.Concatenate.Format)

	v.SetDefault("tree.collapse_single_dirs", defaults.Tree.CollapseSingleDirs)

	v.SetDefault("languages.overrides", defaults.Languages.Overrides)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
