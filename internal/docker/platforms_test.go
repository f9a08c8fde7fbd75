package docker

import (
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input   string
		want    ocispec.Platform
		wantErr bool
	}{
		{input: "linux/amd64", want: ocispec.Platform{OS: "linux", Architecture: "amd64"}},
		{input: "linux/arm64/v8", want: ocispec.Platform{OS: "linux", Architecture: "arm64", Variant: "v8"}},
		{input: "linux", wantErr: true},
		{input: "linux/amd64/v8/extra", wantErr: true},
		{input: "linux//v8", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlatform(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, FormatPlatform(got))
		})
	}
}

func TestValidatePlatforms(t *testing.T) {
	assert.NoError(t, ValidatePlatforms([]string{"linux/amd64", "linux/arm64/v8"}))
	assert.Error(t, ValidatePlatforms([]string{"linux/amd64", "bogus"}))
	assert.NoError(t, ValidatePlatforms(nil))
}
