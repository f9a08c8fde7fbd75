// Package plan assembles per-variant build plans: the selected variants
// fanned out with their resolved tags, build targets, platforms, and push
// decision. A plan is everything the image builder needs for one job.
package plan

import (
	"fmt"

	"github.com/distribution/reference"

	"github.com/ephemeris-labs/releasekit/internal/config"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/ephemeris-labs/releasekit/internal/tags"
)

// RmapiVersionArg is the build argument carrying the pinned rmapi release.
const RmapiVersionArg = "RMAPI_VERSION"

// BuildPlan describes one variant's build-and-publish job.
type BuildPlan struct {
	Variant    matrix.Variant    `json:"variant"`
	Target     string            `json:"target"`
	Dockerfile string            `json:"dockerfile"`
	Context    string            `json:"context"`
	Image      string            `json:"image"`
	Tags       tags.Set          `json:"tags"`
	Refs       []string          `json:"refs"`
	Platforms  []string          `json:"platforms"`
	BuildArgs  map[string]string `json:"build_args,omitempty"`
	Push       bool              `json:"push"`
	Skip       bool              `json:"skip,omitempty"`
}

// PrimaryRef returns the fully qualified image reference for the
// highest-priority tag, or "" for a skipped plan.
func (p BuildPlan) PrimaryRef() string {
	if len(p.Refs) == 0 {
		return ""
	}
	return p.Refs[0]
}

// Compute assembles the build plans for a run: one plan per variant
// selected for the reference, in fan-out order.
//
// The result is deterministic over (cfg, ref). A variant whose tag set
// comes out empty yields a plan marked Skip rather than an error: the
// engine favors publishing fewer tags over aborting the run.
func Compute(cfg *config.Config, ref gitref.Ref) ([]BuildPlan, error) {
	repo, err := reference.ParseNormalizedNamed(cfg.Repository())
	if err != nil {
		return nil, fmt.Errorf("invalid repository %q: %w", cfg.Repository(), err)
	}

	extracted := tags.Extract(ref)
	push := ref.IsTag() || (ref.IsBranch() && ref.Name == cfg.DefaultBranch)

	var plans []BuildPlan
	for _, variant := range matrix.Select(ref) {
		p, err := computeOne(cfg, repo, variant, ref, extracted, push)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func computeOne(cfg *config.Config, repo reference.Named, variant matrix.Variant, ref gitref.Ref, extracted tags.Extracted, push bool) (BuildPlan, error) {
	set := tags.Resolve(variant, ref, extracted, cfg.PinnedVersion())

	refs := make([]string, 0, len(set))
	for _, tag := range set {
		tagged, err := reference.WithTag(repo, tag.Name)
		if err != nil {
			return BuildPlan{}, fmt.Errorf("variant %s: tag %q: %w", variant, tag.Name, err)
		}
		refs = append(refs, tagged.String())
	}

	p := BuildPlan{
		Variant:    variant,
		Target:     cfg.TargetFor(variant),
		Dockerfile: cfg.Dockerfile,
		Context:    cfg.Context,
		Image:      reference.FamiliarName(repo),
		Tags:       set,
		Refs:       refs,
		Platforms:  append([]string(nil), cfg.Platforms...),
		Push:       push && len(set) > 0,
		Skip:       len(set) == 0,
	}

	if variant == matrix.VariantRmapi && cfg.PinnedVersion() != "" {
		p.BuildArgs = map[string]string{RmapiVersionArg: cfg.PinnedVersion()}
	}
	return p, nil
}
