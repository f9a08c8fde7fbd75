// Package docker drives the image build-and-publish collaborator through
// the Docker Engine API. The tag engine hands it finished build plans; it
// owns nothing of the tag computation itself.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"

	"github.com/ephemeris-labs/releasekit/internal/logger"
)

// Client wraps the Docker API client used for builds and pushes.
type Client struct {
	api *client.Client
}

// NewClient connects to the Docker daemon using the standard environment
// (DOCKER_HOST etc.) and verifies the connection with a ping.
func NewClient(ctx context.Context) (*Client, error) {
	api, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	ping, err := api.Ping(ctx)
	if err != nil {
		_ = api.Close()
		return nil, fmt.Errorf("docker daemon not reachable: %w", err)
	}
	logger.Debug().
		Str("api_version", ping.APIVersion).
		Msg("connected to docker daemon")

	return &Client{api: api}, nil
}

// Close closes the underlying Docker connection.
func (c *Client) Close() error {
	return c.api.Close()
}
