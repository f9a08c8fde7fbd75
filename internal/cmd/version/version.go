// Package version provides the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
)

// Format renders the one-line version string.
func Format(version, commit string) string {
	if commit != "" && commit != "none" {
		return fmt.Sprintf("releasekit version %s (%s)", version, commit)
	}
	return fmt.Sprintf("releasekit version %s", version)
}

// NewCmdVersion creates the version command.
func NewCmdVersion(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:    "version",
		Short:  "Print releasekit version information",
		Args:   cobra.NoArgs,
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(f.IOStreams.Out, Format(f.Version, f.Commit))
		},
	}
}
