package main

import (
	"os"

	"github.com/ephemeris-labs/releasekit/internal/releasekit"
)

func main() {
	os.Exit(releasekit.Main())
}
