// Package cmdutil provides shared dependencies and helpers for releasekit
// commands.
package cmdutil

import (
	"context"
	"os"
	"sync"

	"github.com/ephemeris-labs/releasekit/internal/config"
	"github.com/ephemeris-labs/releasekit/internal/docker"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/iostreams"
)

// Factory is the dependency injection container for commands. The struct
// defines the contract; New wires the real implementations. Commands
// extract only the fields they need into per-command Options structs.
type Factory struct {
	// Version info, set at build time via ldflags.
	Version string
	Commit  string

	// Flag-backed inputs, populated by the root command before execution.
	WorkDir     string
	RefOverride string
	SHAOverride string
	Debug       bool

	IOStreams *iostreams.IOStreams

	// Dependency providers (lazy, wired by New).
	Config      func() (*config.Config, error)
	Ref         func() (gitref.Ref, error)
	Client      func(context.Context) (*docker.Client, error)
	CloseClient func()
}

// New creates a Factory with the default wiring.
func New(version, commit string) *Factory {
	f := &Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: iostreams.System(),
	}

	var (
		cfgOnce sync.Once
		cfg     *config.Config
		cfgErr  error
	)
	f.Config = func() (*config.Config, error) {
		cfgOnce.Do(func() {
			cfg, cfgErr = config.NewLoader(f.workDir()).Load()
		})
		return cfg, cfgErr
	}

	var (
		refOnce sync.Once
		ref     gitref.Ref
		refErr  error
	)
	f.Ref = func() (gitref.Ref, error) {
		refOnce.Do(func() {
			ref, refErr = resolveRef(f)
		})
		return ref, refErr
	}

	var (
		clientOnce sync.Once
		client     *docker.Client
		clientErr  error
	)
	f.Client = func(ctx context.Context) (*docker.Client, error) {
		clientOnce.Do(func() {
			client, clientErr = docker.NewClient(ctx)
		})
		return client, clientErr
	}
	f.CloseClient = func() {
		if client != nil {
			_ = client.Close()
		}
	}

	return f
}

func (f *Factory) workDir() string {
	if f.WorkDir != "" {
		return f.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// resolveRef determines the triggering reference: explicit flags win, then
// the CI environment, then the local checkout.
func resolveRef(f *Factory) (gitref.Ref, error) {
	if f.RefOverride != "" {
		return gitref.Parse(f.RefOverride, f.SHAOverride), nil
	}

	for _, key := range []string{"RELEASEKIT_REF", "GITHUB_REF"} {
		if raw := os.Getenv(key); raw != "" {
			sha := f.SHAOverride
			if sha == "" {
				sha = os.Getenv("GITHUB_SHA")
			}
			return gitref.Parse(raw, sha), nil
		}
	}

	return gitref.FromRepo(f.workDir())
}
