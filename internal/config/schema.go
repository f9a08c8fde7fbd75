// Package config loads the releasekit configuration.
//
// Configuration comes from releasekit.yaml in the working directory with
// RELEASEKIT_* environment overrides on top; a missing file is not an
// error, CI runs frequently operate on defaults plus environment.
package config

import (
	"fmt"

	"github.com/ephemeris-labs/releasekit/internal/matrix"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "releasekit.yaml"

// Config is the resolved releasekit configuration.
type Config struct {
	// Registry is the registry host images are published to.
	Registry string `mapstructure:"registry" yaml:"registry"`

	// Image is the repository path under the registry.
	Image string `mapstructure:"image" yaml:"image"`

	// DefaultBranch is the branch whose pushes are published (tags always are).
	DefaultBranch string `mapstructure:"default_branch" yaml:"default_branch"`

	// Dockerfile is the build recipe path, relative to Context.
	Dockerfile string `mapstructure:"dockerfile" yaml:"dockerfile"`

	// Context is the build context root.
	Context string `mapstructure:"context" yaml:"context"`

	// Platforms are the target platforms, e.g. "linux/amd64".
	Platforms []string `mapstructure:"platforms" yaml:"platforms"`

	// Rmapi configures the bundled rmapi client.
	Rmapi RmapiConfig `mapstructure:"rmapi" yaml:"rmapi"`

	// Variants optionally overrides per-variant build settings.
	Variants map[string]VariantConfig `mapstructure:"variants" yaml:"variants,omitempty"`
}

// RmapiConfig pins the rmapi release baked into the rmapi variant.
type RmapiConfig struct {
	// Version is the pinned upstream release, reflected in image tags
	// ("1.2.3-rmapi0.0.31") and passed to the build as RMAPI_VERSION.
	Version string `mapstructure:"version" yaml:"version"`
}

// VariantConfig overrides build settings for one variant.
type VariantConfig struct {
	// Target is the multi-stage build target. Defaults to the variant name.
	Target string `mapstructure:"target" yaml:"target,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Registry:      "ghcr.io",
		Image:         "ephemeris-labs/ephemeris",
		DefaultBranch: "main",
		Dockerfile:    "Dockerfile",
		Context:       ".",
		Platforms:     []string{"linux/amd64", "linux/arm64/v8"},
		Rmapi:         RmapiConfig{Version: "0.0.31"},
	}
}

// PinnedVersion returns the pinned rmapi release identifier.
func (c *Config) PinnedVersion() string {
	return c.Rmapi.Version
}

// Repository returns the full repository reference, "registry/image".
func (c *Config) Repository() string {
	return c.Registry + "/" + c.Image
}

// TargetFor returns the build target for a variant: the configured
// override when present, otherwise the variant name itself.
func (c *Config) TargetFor(v matrix.Variant) string {
	if vc, ok := c.Variants[string(v)]; ok && vc.Target != "" {
		return vc.Target
	}
	return string(v)
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Registry == "" {
		return fmt.Errorf("registry must not be empty")
	}
	if c.Image == "" {
		return fmt.Errorf("image must not be empty")
	}
	if c.DefaultBranch == "" {
		return fmt.Errorf("default_branch must not be empty")
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("at least one platform is required")
	}
	for name := range c.Variants {
		if _, err := matrix.ParseVariant(name); err != nil {
			return fmt.Errorf("variants: %w", err)
		}
	}
	return nil
}
