package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Loader handles loading and parsing of releasekit configuration.
type Loader struct {
	workDir string
	viper   *viper.Viper
}

// NewLoader creates a configuration loader for the given working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir: workDir,
		viper:   viper.New(),
	}
}

// Load reads releasekit.yaml (when present), applies defaults and
// RELEASEKIT_* environment overrides, and validates the result.
//
// Environment keys map dots to underscores: rmapi.version becomes
// RELEASEKIT_RMAPI_VERSION.
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()
	l.viper.SetDefault("registry", defaults.Registry)
	l.viper.SetDefault("image", defaults.Image)
	l.viper.SetDefault("default_branch", defaults.DefaultBranch)
	l.viper.SetDefault("dockerfile", defaults.Dockerfile)
	l.viper.SetDefault("context", defaults.Context)
	l.viper.SetDefault("platforms", defaults.Platforms)
	l.viper.SetDefault("rmapi.version", defaults.Rmapi.Version)

	l.viper.SetEnvPrefix("RELEASEKIT")
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.viper.AutomaticEnv()

	configPath := filepath.Join(l.workDir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		l.viper.SetConfigFile(configPath)
		l.viper.SetConfigType("yaml")
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", configPath, err)
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
