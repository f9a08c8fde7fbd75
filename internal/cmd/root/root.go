// Package root assembles the releasekit command tree.
package root

import (
	"github.com/spf13/cobra"

	buildcmd "github.com/ephemeris-labs/releasekit/internal/cmd/build"
	configcmd "github.com/ephemeris-labs/releasekit/internal/cmd/config"
	matrixcmd "github.com/ephemeris-labs/releasekit/internal/cmd/matrix"
	plancmd "github.com/ephemeris-labs/releasekit/internal/cmd/plan"
	versioncmd "github.com/ephemeris-labs/releasekit/internal/cmd/version"
	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/logger"
)

// NewCmdRoot creates the root command for the releasekit CLI.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "releasekit",
		Short: "Decide and drive ephemeris container releases",
		Long: `Releasekit computes which image variants to build for a git reference and
the exact, priority-ranked set of tags each variant publishes, then
optionally drives the Docker build and push itself.

The triggering reference comes from --ref, the RELEASEKIT_REF/GITHUB_REF
environment, or the current checkout, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		Version:       f.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFile != "" {
				logger.InitWithFile(f.Debug, logFile)
			} else {
				logger.Init(f.Debug)
			}

			logger.Debug().
				Str("version", f.Version).
				Str("ref_override", f.RefOverride).
				Msg("releasekit starting")
		},
	}

	cmd.SetVersionTemplate(versioncmd.Format(f.Version, f.Commit) + "\n")

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&f.Debug, "debug", "D", false, "Enable debug logging")
	pf.StringVar(&f.RefOverride, "ref", "", "Triggering reference (e.g. refs/tags/v1.2.3)")
	pf.StringVar(&f.SHAOverride, "sha", "", "Commit sha for the triggering reference")
	pf.StringVarP(&f.WorkDir, "work-dir", "C", "", "Working directory (default: current directory)")
	pf.StringVar(&logFile, "log-file", "", "Also log to a rotating file at this path")

	cmd.AddCommand(matrixcmd.NewCmdMatrix(f, nil))
	cmd.AddCommand(plancmd.NewCmdPlan(f, nil))
	cmd.AddCommand(buildcmd.NewCmdBuild(f, nil))
	cmd.AddCommand(configcmd.NewCmdConfig(f))
	cmd.AddCommand(versioncmd.NewCmdVersion(f))

	return cmd
}
