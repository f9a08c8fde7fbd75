package tags

import (
	"sort"
	"strings"

	"github.com/distribution/reference"

	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/logger"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/ephemeris-labs/releasekit/internal/semver"
)

// inputs is the full, immutable input record one rule evaluation sees.
type inputs struct {
	ref    gitref.Ref
	ext    Extracted
	pinned string

	// ver is the version parsed from the tag name itself, for plain
	// version tags like "v1.2.3". Nil for branches, rmapi release tags,
	// and tags that do not parse.
	ver *semver.Version
}

// Resolve computes the tag set for one variant.
//
// The result is deterministic over (variant, ref, ext, pinned): ordered by
// descending priority, deduplicated (the higher-priority occurrence wins),
// with every name valid under the OCI distribution tag grammar. Rules whose
// gate fails or whose rendered body is empty are dropped entirely.
func Resolve(variant matrix.Variant, ref gitref.Ref, ext Extracted, pinned string) Set {
	in := inputs{ref: ref, ext: ext, pinned: pinned}

	if ref.IsTag() && !strings.Contains(ref.Raw, "rmapi") {
		if v, err := semver.Parse(ref.Name); err == nil {
			in.ver = &v
		}
	}

	var rules []rule
	switch variant {
	case matrix.VariantPlain:
		rules = plainRules
	case matrix.VariantRmapi:
		rules = rmapiRules
	default:
		return nil
	}

	seen := make(map[string]bool, len(rules))
	var out Set
	for _, r := range rules {
		if !r.enabled(in) {
			continue
		}
		name := sanitizeTag(r.render(in))
		if name == "" || seen[name] {
			continue
		}
		if !validTag(name) {
			logger.Debug().
				Str("tag", name).
				Str("variant", string(variant)).
				Str("ref", ref.Raw).
				Msg("dropping tag that fails registry grammar")
			continue
		}
		seen[name] = true
		out = append(out, Tag{Name: name, Kind: r.kind, Priority: r.priority})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// sanitizeTag maps a rendered tag body onto the registry tag alphabet:
// disallowed characters become "-", dash runs collapse to a single dash,
// and leading separators are trimmed. Empty input stays empty.
func sanitizeTag(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))
	lastDash := false
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_':
			sb.WriteRune(c)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
			}
			lastDash = true
		}
	}
	return strings.TrimLeft(sb.String(), "-.")
}

// tagProbe is a throwaway repository name used to validate tag grammar
// through the reference package's anchored parser.
var tagProbe = func() reference.Named {
	n, err := reference.ParseNormalizedNamed("releasekit/tag-probe")
	if err != nil {
		panic(err)
	}
	return n
}()

// validTag reports whether name is a legal image tag.
func validTag(name string) bool {
	_, err := reference.WithTag(tagProbe, name)
	return err == nil
}
