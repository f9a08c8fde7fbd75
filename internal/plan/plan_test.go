package plan

import (
	"encoding/json"
	"testing"

	"github.com/ephemeris-labs/releasekit/internal/config"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSHA = "0123456789abcdef0123456789abcdef01234567"

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Registry = "ghcr.io"
	cfg.Image = "ephemeris-labs/ephemeris"
	return cfg
}

func TestComputeVersionTag(t *testing.T) {
	plans, err := Compute(testConfig(), gitref.Parse("refs/tags/v1.2.3", testSHA))
	require.NoError(t, err)
	require.Len(t, plans, 2, "version tags fan out to both variants")

	plain := plans[0]
	assert.Equal(t, matrix.VariantPlain, plain.Variant)
	assert.Equal(t, "plain", plain.Target)
	assert.True(t, plain.Push, "tags always publish")
	assert.False(t, plain.Skip)
	assert.Empty(t, plain.BuildArgs)
	assert.Equal(t, "ghcr.io/ephemeris-labs/ephemeris:latest", plain.PrimaryRef())
	assert.Contains(t, plain.Refs, "ghcr.io/ephemeris-labs/ephemeris:1.2.3")

	rmapi := plans[1]
	assert.Equal(t, matrix.VariantRmapi, rmapi.Variant)
	assert.Equal(t, "rmapi", rmapi.Target)
	assert.Equal(t, map[string]string{RmapiVersionArg: "0.0.31"}, rmapi.BuildArgs)
	assert.Equal(t, "ghcr.io/ephemeris-labs/ephemeris:1.2.3-rmapi", rmapi.PrimaryRef())
}

func TestComputeRmapiReleaseTag(t *testing.T) {
	plans, err := Compute(testConfig(), gitref.Parse("refs/tags/v1.5.2-rmapi0.30.0-mitchell.1", testSHA))
	require.NoError(t, err)
	require.Len(t, plans, 1, "rmapi release tags build the rmapi variant only")

	p := plans[0]
	assert.Equal(t, matrix.VariantRmapi, p.Variant)
	assert.True(t, p.Push)
	assert.Equal(t, "ghcr.io/ephemeris-labs/ephemeris:rmapi", p.PrimaryRef())
	assert.True(t, p.Tags.Contains("1.5.2-rmapi"))
	assert.False(t, p.Tags.Contains("latest"))
}

func TestComputePushGating(t *testing.T) {
	cfg := testConfig()

	plans, err := Compute(cfg, gitref.Parse("refs/heads/main", testSHA))
	require.NoError(t, err)
	for _, p := range plans {
		assert.True(t, p.Push, "default branch pushes publish")
	}

	plans, err = Compute(cfg, gitref.Parse("refs/heads/feature/foo", testSHA))
	require.NoError(t, err)
	for _, p := range plans {
		assert.False(t, p.Push, "other branches build but do not publish")
		assert.False(t, p.Skip, "they still produce tags for local inspection")
	}
}

func TestComputeSkipInsteadOfMalformed(t *testing.T) {
	cfg := testConfig()
	cfg.Rmapi.Version = ""

	// Branch push with no pinned version: the rmapi variant has no valid
	// tags left, so its plan is skipped rather than erroring the run.
	plans, err := Compute(cfg, gitref.Parse("refs/heads/main", testSHA))
	require.NoError(t, err)
	require.Len(t, plans, 2)

	rmapi := plans[1]
	assert.Equal(t, matrix.VariantRmapi, rmapi.Variant)
	assert.True(t, rmapi.Skip)
	assert.False(t, rmapi.Push)
	assert.Empty(t, rmapi.Refs)
	assert.Equal(t, "", rmapi.PrimaryRef())
}

func TestComputeInvalidRepository(t *testing.T) {
	cfg := testConfig()
	cfg.Image = "UPPER/Case"

	_, err := Compute(cfg, gitref.Parse("refs/heads/main", testSHA))
	require.Error(t, err)
}

func TestComputeDeterministic(t *testing.T) {
	cfg := testConfig()
	ref := gitref.Parse("refs/tags/v1.2.3", testSHA)

	first, err := Compute(cfg, ref)
	require.NoError(t, err)
	second, err := Compute(cfg, ref)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildPlanJSONShape(t *testing.T) {
	plans, err := Compute(testConfig(), gitref.Parse("refs/tags/v1.2.3", testSHA))
	require.NoError(t, err)

	data, err := json.Marshal(plans[0])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"variant", "target", "dockerfile", "context", "image", "tags", "refs", "platforms", "push"} {
		assert.Contains(t, decoded, key)
	}
}
