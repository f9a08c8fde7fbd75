package matrix

import (
	"testing"

	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want []Variant
	}{
		{
			name: "main branch builds both",
			ref:  "refs/heads/main",
			want: []Variant{VariantPlain, VariantRmapi},
		},
		{
			name: "plain release tag builds both",
			ref:  "refs/tags/v2.0.0",
			want: []Variant{VariantPlain, VariantRmapi},
		},
		{
			name: "rmapi release tag builds rmapi only",
			ref:  "refs/tags/v1.5.2-rmapi0.30.0-mitchell.1",
			want: []Variant{VariantRmapi},
		},
		{
			name: "branch containing rmapi builds rmapi only",
			ref:  "refs/heads/rmapi-bump",
			want: []Variant{VariantRmapi},
		},
		{
			name: "empty reference builds both",
			ref:  "",
			want: []Variant{VariantPlain, VariantRmapi},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(gitref.Parse(tt.ref, ""))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	ref := gitref.Parse("refs/heads/main", "")
	assert.Equal(t, Select(ref), Select(ref))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("plain")
	require.NoError(t, err)
	assert.Equal(t, VariantPlain, v)

	v, err = ParseVariant(" RMAPI ")
	require.NoError(t, err)
	assert.Equal(t, VariantRmapi, v)

	_, err = ParseVariant("windows")
	require.Error(t, err)
}
