// Package build provides the build command: it hands the computed plans to
// the Docker collaborator and optionally pushes the results.
package build

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/config"
	"github.com/ephemeris-labs/releasekit/internal/docker"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/iostreams"
	"github.com/ephemeris-labs/releasekit/internal/logger"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/ephemeris-labs/releasekit/internal/plan"
)

// Options contains the options for the build command.
type Options struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)
	Ref       func() (gitref.Ref, error)
	Client    func(context.Context) (*docker.Client, error)

	Variant string // --variant, build only one variant
	Push    bool   // --push, push after building (still gated by the plan)
	DryRun  bool   // --dry-run, print what would run
	NoCache bool   // --no-cache
	Pull    bool   // --pull
}

// NewCmdBuild creates the build command.
func NewCmdBuild(f *cmdutil.Factory, runF func(context.Context, *Options) error) *cobra.Command {
	opts := &Options{
		IOStreams: f.IOStreams,
		Config:    f.Config,
		Ref:       f.Ref,
		Client:    f.Client,
	}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build (and optionally push) the selected variants",
		Long: `Builds every variant selected for the triggering reference, applying the
resolved tag set to each image.

Pushing requires both --push and a reference that publishes (the default
branch or any tag); other references build locally only. Variants fail
independently: an error in one does not stop the others, and all errors
are reported at the end.`,
		Example: `  # Build whatever the current checkout selects
  releasekit build

  # Build and push a release
  releasekit --ref refs/tags/v1.2.3 build --push

  # Only the rmapi variant, from scratch
  releasekit build --variant rmapi --no-cache

  # Show the jobs without running them
  releasekit build --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return buildRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Build only one variant (plain or rmapi)")
	cmd.Flags().BoolVar(&opts.Push, "push", false, "Push images after building")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the build jobs without running them")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Do not use the Docker cache")
	cmd.Flags().BoolVar(&opts.Pull, "pull", false, "Always pull newer base images")

	return cmd
}

func buildRun(ctx context.Context, opts *Options) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	ref, err := opts.Ref()
	if err != nil {
		return err
	}

	plans, err := plan.Compute(cfg, ref)
	if err != nil {
		return err
	}
	if opts.Variant != "" {
		if plans, err = filterVariant(plans, opts.Variant, ref); err != nil {
			return err
		}
	}

	if opts.DryRun {
		return cmdutil.WriteJSON(opts.IOStreams.Out, plans)
	}

	client, err := opts.Client(ctx)
	if err != nil {
		return err
	}

	// Variant jobs are independent: collect failures instead of stopping,
	// so one broken variant never masks or blocks the other.
	var errs []error
	for _, p := range plans {
		if err := runVariant(ctx, client, opts, ref, p); err != nil {
			cmdutil.PrintError(opts.IOStreams, "variant %s: %v", p.Variant, err)
			errs = append(errs, fmt.Errorf("variant %s: %w", p.Variant, err))
		}
	}
	return errors.Join(errs...)
}

func runVariant(ctx context.Context, client *docker.Client, opts *Options, ref gitref.Ref, p plan.BuildPlan) error {
	ios := opts.IOStreams

	if p.Skip {
		logger.Warn().
			Str("variant", string(p.Variant)).
			Str("ref", ref.Raw).
			Msg("no publishable tags, skipping variant")
		return nil
	}

	version := ""
	if primary, ok := p.Tags.Primary(); ok {
		version = primary.Name
	}

	err := client.BuildImage(ctx, docker.BuildOpts{
		ContextDir: p.Context,
		Dockerfile: p.Dockerfile,
		Tags:       p.Refs,
		Target:     p.Target,
		BuildArgs:  p.BuildArgs,
		Labels:     docker.ImageLabels("", ref.SHA, version, time.Now()),
		Platforms:  p.Platforms,
		NoCache:    opts.NoCache,
		Pull:       opts.Pull,
		Output:     ios.ErrOut,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ios.ErrOut, "built %s (%d tags)\n", p.PrimaryRef(), len(p.Refs))

	if !opts.Push {
		return nil
	}
	if !p.Push {
		logger.Info().
			Str("variant", string(p.Variant)).
			Str("ref", ref.Raw).
			Msg("reference does not publish, skipping push")
		return nil
	}

	for _, imageRef := range p.Refs {
		if err := client.PushImage(ctx, imageRef, ios.ErrOut); err != nil {
			return err
		}
	}
	fmt.Fprintf(ios.ErrOut, "pushed %d tags for %s\n", len(p.Refs), p.Variant)
	return nil
}

func filterVariant(plans []plan.BuildPlan, name string, ref gitref.Ref) ([]plan.BuildPlan, error) {
	variant, err := matrix.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.Variant == variant {
			return []plan.BuildPlan{p}, nil
		}
	}
	return nil, fmt.Errorf("variant %s is not selected for reference %s", variant, ref)
}
