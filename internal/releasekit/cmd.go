// Package releasekit is the CLI entry point.
package releasekit

import (
	"errors"

	"github.com/ephemeris-labs/releasekit/internal/cmd/root"
	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/logger"
)

// Build-time variables injected via ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// Main runs the releasekit CLI and returns the process exit code.
func Main() int {
	defer logger.CloseFile()

	f := cmdutil.New(Version, Commit)
	defer f.CloseClient()

	rootCmd := root.NewCmdRoot(f)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cmdutil.ErrSilent) {
			return 1
		}
		return 1
	}
	return 0
}
