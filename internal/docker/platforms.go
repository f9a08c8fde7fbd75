package docker

import (
	"fmt"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// ParsePlatform parses an "os/arch[/variant]" string into an OCI platform.
func ParsePlatform(s string) (ocispec.Platform, error) {
	parts := strings.Split(s, "/")
	for _, part := range parts {
		if part == "" {
			return ocispec.Platform{}, fmt.Errorf("invalid platform %q", s)
		}
	}

	switch len(parts) {
	case 2:
		return ocispec.Platform{OS: parts[0], Architecture: parts[1]}, nil
	case 3:
		return ocispec.Platform{OS: parts[0], Architecture: parts[1], Variant: parts[2]}, nil
	default:
		return ocispec.Platform{}, fmt.Errorf("invalid platform %q (expected os/arch[/variant])", s)
	}
}

// FormatPlatform renders an OCI platform back to its "os/arch[/variant]"
// string form.
func FormatPlatform(p ocispec.Platform) string {
	s := p.OS + "/" + p.Architecture
	if p.Variant != "" {
		s += "/" + p.Variant
	}
	return s
}

// ValidatePlatforms checks a list of platform strings, returning the first
// parse failure.
func ValidatePlatforms(platforms []string) error {
	for _, s := range platforms {
		if _, err := ParsePlatform(s); err != nil {
			return err
		}
	}
	return nil
}
