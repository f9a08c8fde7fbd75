package cmdutil

import (
	"errors"
	"fmt"

	"github.com/ephemeris-labs/releasekit/internal/iostreams"
)

// ErrSilent signals a failure whose message has already been printed;
// the root command exits non-zero without repeating it.
var ErrSilent = errors.New("SilentError")

// PrintError writes a formatted error line to the error stream.
func PrintError(ios *iostreams.IOStreams, format string, args ...any) {
	fmt.Fprintf(ios.ErrOut, "error: "+format+"\n", args...)
}

// PrintWarning writes a formatted warning line to the error stream.
func PrintWarning(ios *iostreams.IOStreams, format string, args ...any) {
	fmt.Fprintf(ios.ErrOut, "warning: "+format+"\n", args...)
}
