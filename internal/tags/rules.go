package tags

import (
	"strings"
)

// Rule kinds, named after where the tag body comes from.
const (
	KindRaw       = "raw"
	KindSemver    = "semver"
	KindRefTag    = "ref-tag"
	KindRefBranch = "ref-branch"
	KindSHA       = "sha"
)

// refShape gates a rule on the reference being a tag or a branch push.
type refShape int

const (
	anyShape refShape = iota
	tagShape
	branchShape
)

// rmapiGate gates a rule on whether the reference contains "rmapi".
type rmapiGate int

const (
	anyRmapi rmapiGate = iota
	withRmapi
	withoutRmapi
)

// renderFn renders a rule's tag body. Returning "" disables the rule,
// which is how rules depending on an absent field degrade gracefully.
type renderFn func(in inputs) string

// rule is one row of a variant's tag table. Rules are declared in priority
// order and evaluated top to bottom; each is independently pure.
type rule struct {
	kind     string
	priority int
	shape    refShape
	rmapi    rmapiGate
	render   renderFn
}

// enabled evaluates the rule's boolean gate against the run inputs.
func (r rule) enabled(in inputs) bool {
	switch r.shape {
	case tagShape:
		if !in.ref.IsTag() {
			return false
		}
	case branchShape:
		if !in.ref.IsBranch() {
			return false
		}
	}
	hasRmapi := strings.Contains(in.ref.Raw, "rmapi")
	switch r.rmapi {
	case withRmapi:
		return hasRmapi
	case withoutRmapi:
		return !hasRmapi
	}
	return true
}

// Render helpers. Each returns "" when its source field is absent so the
// rule disables instead of emitting a malformed tag.

func literal(s string) renderFn {
	return func(inputs) string { return s }
}

func refName(in inputs) string { return in.ref.Name }

func shortSHA(in inputs) string { return in.ref.ShortSHA() }

func semverFull(in inputs) string {
	if in.ver == nil {
		return ""
	}
	return in.ver.String()
}

func semverMajorMinor(in inputs) string {
	if in.ver == nil {
		return ""
	}
	return in.ver.MajorMinor()
}

func semverMajor(in inputs) string {
	if in.ver == nil {
		return ""
	}
	return in.ver.MajorString()
}

func extVersion(in inputs) string { return in.ext.Version }
func extMinor(in inputs) string   { return in.ext.Minor }
func extMajor(in inputs) string   { return in.ext.Major }

// suffixed appends a fixed suffix to the rendered body.
func suffixed(fn renderFn, suffix string) renderFn {
	return func(in inputs) string {
		body := fn(in)
		if body == "" {
			return ""
		}
		return body + suffix
	}
}

// pinnedSuffix appends "-rmapi<pinned>". Disabled when the pinned version
// is unset: "-rmapi" with no following version must never be published as
// a pinned tag.
func pinnedSuffix(fn renderFn) renderFn {
	return func(in inputs) string {
		body := fn(in)
		if body == "" || in.pinned == "" {
			return ""
		}
		return body + rmapiSuffix + in.pinned
	}
}

const rmapiSuffix = "-rmapi"

// plainRules is the tag table for the plain variant.
var plainRules = []rule{
	{kind: KindRaw, priority: 1000, shape: tagShape, rmapi: withoutRmapi, render: literal("latest")},
	{kind: KindSemver, priority: 900, shape: tagShape, rmapi: withoutRmapi, render: semverFull},
	{kind: KindSemver, priority: 800, shape: tagShape, rmapi: withoutRmapi, render: semverMajorMinor},
	{kind: KindSemver, priority: 700, shape: tagShape, rmapi: withoutRmapi, render: semverMajor},
	{kind: KindRefTag, priority: 600, shape: tagShape, rmapi: withoutRmapi, render: refName},
	{kind: KindRefBranch, priority: 500, shape: branchShape, render: refName},
	{kind: KindSHA, priority: 100, shape: branchShape, render: shortSHA},
}

// rmapiRules is the tag table for the rmapi variant.
//
// Three reference shapes interleave here: rmapi release tags (fields from
// the extracted version), plain version tags (fields from the tag itself,
// suffixed), and branch pushes (pinned suffix only). The gates keep the
// groups disjoint, so priorities only need to be distinct within a group.
var rmapiRules = []rule{
	// rmapi release tags, e.g. refs/tags/v1.5.2-rmapi0.30.0-mitchell.1
	{kind: KindRaw, priority: 1000, shape: tagShape, rmapi: withRmapi, render: literal("rmapi")},
	{kind: KindRaw, priority: 900, shape: tagShape, rmapi: withRmapi, render: suffixed(extMajor, rmapiSuffix)},
	{kind: KindRaw, priority: 800, shape: tagShape, rmapi: withRmapi, render: suffixed(extMinor, rmapiSuffix)},
	{kind: KindRaw, priority: 700, shape: tagShape, rmapi: withRmapi, render: suffixed(extVersion, rmapiSuffix)},
	{kind: KindRaw, priority: 650, shape: tagShape, rmapi: withRmapi, render: extVersion},
	{kind: KindRefTag, priority: 600, shape: tagShape, rmapi: withRmapi, render: refName},
	{kind: KindRaw, priority: 550, shape: tagShape, rmapi: withRmapi, render: extMinor},
	{kind: KindRaw, priority: 450, shape: tagShape, rmapi: withRmapi, render: extMajor},

	// plain version tags, e.g. refs/tags/v1.2.3
	{kind: KindSemver, priority: 900, shape: tagShape, rmapi: withoutRmapi, render: suffixed(semverFull, rmapiSuffix)},
	{kind: KindSemver, priority: 800, shape: tagShape, rmapi: withoutRmapi, render: suffixed(semverMajorMinor, rmapiSuffix)},
	{kind: KindSemver, priority: 700, shape: tagShape, rmapi: withoutRmapi, render: suffixed(semverMajor, rmapiSuffix)},
	{kind: KindSemver, priority: 600, shape: tagShape, rmapi: withoutRmapi, render: pinnedSuffix(semverFull)},
	{kind: KindSemver, priority: 500, shape: tagShape, rmapi: withoutRmapi, render: pinnedSuffix(semverMajorMinor)},
	{kind: KindSemver, priority: 400, shape: tagShape, rmapi: withoutRmapi, render: pinnedSuffix(semverMajor)},
	{kind: KindRefTag, priority: 300, shape: tagShape, rmapi: withoutRmapi, render: suffixed(refName, rmapiSuffix)},
	{kind: KindRefTag, priority: 200, shape: tagShape, rmapi: withoutRmapi, render: pinnedSuffix(refName)},

	// branch pushes
	{kind: KindRefBranch, priority: 500, shape: branchShape, render: pinnedSuffix(refName)},
	{kind: KindSHA, priority: 100, shape: branchShape, render: pinnedSuffix(shortSHA)},
}
