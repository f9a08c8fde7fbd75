// Package semver parses the possibly-partial semantic versions that appear
// in release tags: "1", "1.5", "1.5.2", "1.5.2-beta.1", "1.5.2+build.7".
//
// Unlike a strict semver parser, minor and patch components are optional;
// accessors report whether they were present so callers can distinguish
// "1" from "1.0.0" when deriving floating tags.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a parsed, possibly-partial semantic version.
// Minor and Patch are -1 when the component was not present in the input.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

var versionRegex = regexp.MustCompile(
	`^(?P<major>0|[1-9][0-9]*)` +
		`(?:\.(?P<minor>0|[1-9][0-9]*)` +
		`(?:\.(?P<patch>0|[1-9][0-9]*))?)?` +
		`(?:-(?P<prerelease>[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?` +
		`(?:\+(?P<build>[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`,
)

// Parse parses a version string. A single leading "v" is tolerated.
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	match := versionRegex.FindStringSubmatch(s)
	if match == nil {
		return Version{}, fmt.Errorf("invalid version: %q", s)
	}

	v := Version{Minor: -1, Patch: -1}
	for i, name := range versionRegex.SubexpNames() {
		if i == 0 || name == "" || match[i] == "" {
			continue
		}
		switch name {
		case "major":
			v.Major, _ = strconv.Atoi(match[i])
		case "minor":
			v.Minor, _ = strconv.Atoi(match[i])
		case "patch":
			v.Patch, _ = strconv.Atoi(match[i])
		case "prerelease":
			v.Prerelease = match[i]
		case "build":
			v.Build = match[i]
		}
	}
	return v, nil
}

// IsValid reports whether s parses as a (possibly partial) version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// HasMinor reports whether the minor component was present in the input.
func (v Version) HasMinor() bool { return v.Minor >= 0 }

// HasPatch reports whether the patch component was present in the input.
func (v Version) HasPatch() bool { return v.Patch >= 0 }

// HasPrerelease reports whether a prerelease identifier is present.
func (v Version) HasPrerelease() bool { return v.Prerelease != "" }

// MajorString returns the major component as a string, e.g. "1".
func (v Version) MajorString() string {
	return strconv.Itoa(v.Major)
}

// MajorMinor returns "major.minor", e.g. "1.5".
// Returns "" when the minor component was not present.
func (v Version) MajorMinor() string {
	if !v.HasMinor() {
		return ""
	}
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// String returns the canonical form of the version, without any "v" prefix
// and without build metadata padding: exactly the components that were parsed.
func (v Version) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(v.Major))
	if v.HasMinor() {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.Minor))
		if v.HasPatch() {
			sb.WriteByte('.')
			sb.WriteString(strconv.Itoa(v.Patch))
		}
	}
	if v.Prerelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}
