package matrix

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/gitref"
	"github.com/ephemeris-labs/releasekit/internal/iostreams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(raw string) (*Options, *bytes.Buffer) {
	ios, out, _ := iostreams.Test()
	return &Options{
		IOStreams: ios,
		Ref: func() (gitref.Ref, error) {
			return gitref.Parse(raw, "0123456789abcdef0123456789abcdef01234567"), nil
		},
	}, out
}

func TestMatrixRunText(t *testing.T) {
	opts, out := testOptions("refs/heads/main")
	opts.Format = "text"

	require.NoError(t, matrixRun(opts))
	assert.Equal(t, "plain\nrmapi\n", out.String())
}

func TestMatrixRunJSON(t *testing.T) {
	opts, out := testOptions("refs/tags/v1.5.2-rmapi0.30.0-mitchell.1")
	opts.Format = "json"

	require.NoError(t, matrixRun(opts))

	var variants []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &variants))
	assert.Equal(t, []string{"rmapi"}, variants)
}

func TestNewCmdMatrix(t *testing.T) {
	ios, _, _ := iostreams.Test()
	f := &cmdutil.Factory{IOStreams: ios}

	var gotOpts *Options
	cmd := NewCmdMatrix(f, func(opts *Options) error {
		gotOpts = opts
		return nil
	})
	cmd.SetArgs([]string{"--format", "json"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, gotOpts)
	assert.Equal(t, "json", gotOpts.Format)
}

func TestNewCmdMatrixRejectsBadFormat(t *testing.T) {
	ios, out, errOut := iostreams.Test()
	f := &cmdutil.Factory{IOStreams: ios}

	cmd := NewCmdMatrix(f, func(*Options) error { return nil })
	cmd.SetArgs([]string{"--format", "xml"})
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	require.Error(t, cmd.Execute())
}
