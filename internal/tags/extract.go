package tags

import (
	"strings"

	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/semver"
)

// Extracted holds the ephemeris version fields recovered from an rmapi
// release tag such as "v1.5.2-rmapi0.30.0-mitchell.1".
//
// It is computed once per run and threaded explicitly into the resolver.
// All fields are empty when the reference is not an rmapi release tag or
// the embedded version does not parse; rules depending on an empty field
// are disabled rather than emitting a malformed tag.
type Extracted struct {
	// Version is the full embedded version, e.g. "1.5.2".
	Version string `json:"version,omitempty"`
	// Major is the major component, e.g. "1".
	Major string `json:"major,omitempty"`
	// Minor is "major.minor", e.g. "1.5". Empty when the embedded version
	// has no minor component; it never falls back to the major value.
	Minor string `json:"minor,omitempty"`
}

// IsZero reports whether no version could be extracted.
func (e Extracted) IsZero() bool {
	return e.Version == ""
}

// Extract recovers the ephemeris version from an rmapi release tag.
//
// The tag name is taken without a single leading "v" and truncated at the
// first occurrence of "-rmapi"; the remainder must parse as a (possibly
// partial) version. Any reference that is not a tag, does not contain
// "rmapi", or carries an unparseable version yields the zero Extracted.
func Extract(ref gitref.Ref) Extracted {
	if !ref.IsTag() || !strings.Contains(ref.Raw, "rmapi") {
		return Extracted{}
	}

	version := strings.TrimPrefix(ref.Name, "v")
	if i := strings.Index(version, "-rmapi"); i >= 0 {
		version = version[:i]
	}

	v, err := semver.Parse(version)
	if err != nil {
		return Extracted{}
	}

	ext := Extracted{
		Version: v.String(),
		Major:   v.MajorString(),
	}
	if v.HasMinor() {
		ext.Minor = v.MajorMinor()
	}
	return ext
}
