package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/ephemeris-labs/releasekit/internal/logger"
)

// BuildOpts holds everything one image build needs. The tag list and target
// come straight from a build plan.
type BuildOpts struct {
	ContextDir string
	Dockerfile string
	Tags       []string // fully qualified references, priority order
	Target     string
	BuildArgs  map[string]string
	Labels     map[string]string
	Platforms  []string
	NoCache    bool
	Pull       bool
	Output     io.Writer // build progress destination; nil discards
}

// BuildImage builds the image once per requested platform, applying all
// tags to each build. An error on one platform aborts the remaining ones
// for this variant; the caller decides how variant failures aggregate.
func (c *Client) BuildImage(ctx context.Context, opts BuildOpts) error {
	if len(opts.Tags) == 0 {
		return fmt.Errorf("no tags to build")
	}

	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = []string{""}
	}
	for _, platform := range platforms {
		if platform != "" {
			if _, err := ParsePlatform(platform); err != nil {
				return err
			}
		}
		if err := c.buildOne(ctx, opts, platform); err != nil {
			if platform == "" {
				return err
			}
			return fmt.Errorf("platform %s: %w", platform, err)
		}
	}
	return nil
}

func (c *Client) buildOne(ctx context.Context, opts BuildOpts, platform string) error {
	// TODO: honor .dockerignore when tarring the context.
	buildCtx, err := archive.TarWithOptions(opts.ContextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("creating build context from %s: %w", opts.ContextDir, err)
	}
	defer buildCtx.Close()

	logger.Info().
		Str("image", opts.Tags[0]).
		Str("target", opts.Target).
		Str("platform", platform).
		Int("tags", len(opts.Tags)).
		Msg("building image")

	resp, err := c.api.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       opts.Tags,
		Dockerfile: opts.Dockerfile,
		Target:     opts.Target,
		BuildArgs:  buildArgPointers(opts.BuildArgs),
		Labels:     opts.Labels,
		Platform:   platform,
		NoCache:    opts.NoCache,
		PullParent: opts.Pull,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("starting build: %w", err)
	}
	defer resp.Body.Close()

	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	if err := jsonStream(resp.Body, out); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

// jsonStream decodes a Docker API JSON message stream to out, surfacing any
// embedded error message as a Go error.
func jsonStream(body io.Reader, out io.Writer) error {
	return jsonmessage.DisplayJSONMessagesStream(body, out, 0, false, nil)
}

// buildArgPointers adapts a plain string map to the pointer map the build
// API expects (nil values mean "take from the build environment", which
// releasekit never uses).
func buildArgPointers(args map[string]string) map[string]*string {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]*string, len(args))
	for k := range args {
		v := args[k]
		out[k] = &v
	}
	return out
}
