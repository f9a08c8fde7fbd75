// Package plan provides the plan command: the full tag-resolution output.
package plan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/config"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/iostreams"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/ephemeris-labs/releasekit/internal/plan"
)

// Options contains the options for the plan command.
type Options struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)
	Ref       func() (gitref.Ref, error)

	Variant string // --variant, restrict to one variant
	Format  string // --format text|json
}

// NewCmdPlan creates the plan command.
func NewCmdPlan(f *cmdutil.Factory, runF func(*Options) error) *cobra.Command {
	opts := &Options{
		IOStreams: f.IOStreams,
		Config:    f.Config,
		Ref:       f.Ref,
	}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the build plans for the triggering reference",
		Long: `Computes the full build plan for every selected variant: build target,
resolved image tags in priority order, platforms, build arguments, and
whether the result will be pushed.

The plan is deterministic for a given reference and configuration; running
it twice yields byte-identical output.`,
		Example: `  # Plans for the current checkout
  releasekit plan

  # Machine-readable plan for a release tag
  releasekit --ref refs/tags/v1.2.3 plan --format json

  # Only the rmapi variant
  releasekit plan --variant rmapi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return planRun(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Restrict the plan to one variant (plain or rmapi)")
	cmdutil.StringEnumFlag(cmd, &opts.Format, "format", "", "json", []string{"text", "json"}, "Output format")

	return cmd
}

func planRun(opts *Options) error {
	plans, err := ComputePlans(opts)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return cmdutil.WriteJSON(opts.IOStreams.Out, plans)
	}

	out := opts.IOStreams.Out
	for _, p := range plans {
		fmt.Fprintf(out, "variant %s (target %s, push %v)\n", p.Variant, p.Target, p.Push)
		if p.Skip {
			fmt.Fprintln(out, "  no publishable tags, skipped")
			continue
		}
		for _, tag := range p.Tags {
			fmt.Fprintf(out, "  %4d  %s\n", tag.Priority, tag.Name)
		}
	}
	return nil
}

// ComputePlans resolves the reference and configuration and assembles the
// plans, applying the --variant restriction. Shared with the build command.
func ComputePlans(opts *Options) ([]plan.BuildPlan, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}
	ref, err := opts.Ref()
	if err != nil {
		return nil, err
	}

	plans, err := plan.Compute(cfg, ref)
	if err != nil {
		return nil, err
	}

	if opts.Variant == "" {
		return plans, nil
	}

	variant, err := matrix.ParseVariant(opts.Variant)
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
