// Package matrix provides the matrix command: the variant fan-out for CI.
package matrix

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/iostreams"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
)

// Options contains the options for the matrix command.
type Options struct {
	IOStreams *iostreams.IOStreams
	Ref       func() (gitref.Ref, error)

	Format string // --format text|json
}

// NewCmdMatrix creates the matrix command.
func NewCmdMatrix(f *cmdutil.Factory, runF func(*Options) error) *cobra.Command {
	opts := &Options{
		IOStreams: f.IOStreams,
		Ref:       f.Ref,
	}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the variants to build for the triggering reference",
		Long: `Prints the build variants selected for the triggering reference.

References containing "rmapi" select only the rmapi variant; everything
else selects both plain and rmapi. CI pipelines consume the JSON form to
fan out one build job per variant.`,
		Example: `  # One variant per line
  releasekit matrix

  # JSON array for a CI job matrix
  releasekit matrix --format json

  # Decide for an explicit reference
  releasekit --ref refs/tags/v1.5.2-rmapi0.30.0-mitchell.1 matrix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return matrixRun(opts)
		},
	}

	cmdutil.StringEnumFlag(cmd, &opts.Format, "format", "", "text", []string{"text", "json"}, "Output format")

	return cmd
}

func matrixRun(opts *Options) error {
	ref, err := opts.Ref()
	if err != nil {
		return err
	}

	variants := matrix.Select(ref)

	if opts.Format == "json" {
		return cmdutil.WriteJSON(opts.IOStreams.Out, variants)
	}
	for _, v := range variants {
		fmt.Fprintln(opts.IOStreams.Out, v)
	}
	return nil
}
