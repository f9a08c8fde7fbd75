// Package matrix selects which image variants a release run builds.
package matrix

import (
	"fmt"
	"strings"

	"github.com/ephemeris-labs/releasekit/internal/gitref"
)

// Variant identifies a build configuration: a multi-stage target plus the
// tag ruleset that applies to its images.
type Variant string

const (
	// VariantPlain is the base ephemeris image.
	VariantPlain Variant = "plain"
	// VariantRmapi is the image with the rmapi client bundled in.
	VariantRmapi Variant = "rmapi"
)

// Variants lists all known variants in build order.
func Variants() []Variant {
	return []Variant{VariantPlain, VariantRmapi}
}

// ParseVariant parses a variant name as given on the command line.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantPlain:
		return VariantPlain, nil
	case VariantRmapi:
		return VariantRmapi, nil
	default:
		return "", fmt.Errorf("unknown variant %q (valid: plain, rmapi)", s)
	}
}

// Select returns the variants to build for the triggering reference.
//
// References containing "rmapi" are release tags dedicated to the bundled
// variant: building plain for them would waste a job and could publish a
// wrongly tagged plain image. Everything else builds both variants.
//
// Select is total over all reference strings and pure; its result is the
// fan-out cardinality of the build stage.
func Select(ref gitref.Ref) []Variant {
	if strings.Contains(ref.Raw, "rmapi") {
		return []Variant{VariantRmapi}
	}
	return []Variant{VariantPlain, VariantRmapi}
}
