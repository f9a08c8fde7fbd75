package docker

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/distribution/reference"
	cliconfig "github.com/docker/cli/cli/config"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"

	"github.com/ephemeris-labs/releasekit/internal/logger"
)

// Environment variables that override Docker CLI credentials, for CI runs
// where no docker login has happened.
const (
	envRegistryUsername = "RELEASEKIT_REGISTRY_USERNAME"
	envRegistryPassword = "RELEASEKIT_REGISTRY_PASSWORD"
)

// dockerHubAuthKey is the credential-store key Docker Hub uses instead of
// its registry hostname.
const dockerHubAuthKey = "https://index.docker.io/v1/"

// PushImage pushes one fully qualified image reference, resolving registry
// credentials from the environment or the Docker CLI configuration.
func (c *Client) PushImage(ctx context.Context, imageRef string, out io.Writer) error {
	named, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	auth, err := resolveAuth(reference.Domain(named))
	if err != nil {
		return err
	}
	encoded, err := registry.EncodeAuthConfig(auth)
	if err != nil {
		return fmt.Errorf("encoding registry credentials: %w", err)
	}

	logger.Info().Str("image", imageRef).Msg("pushing image")

	body, err := c.api.ImagePush(ctx, imageRef, image.PushOptions{
		RegistryAuth: encoded,
	})
	if err != nil {
		return fmt.Errorf("starting push of %s: %w", imageRef, err)
	}
	defer body.Close()

	if out == nil {
		out = io.Discard
	}
	if err := jsonStream(body, out); err != nil {
		return fmt.Errorf("push of %s failed: %w", imageRef, err)
	}
	return nil
}

// resolveAuth finds credentials for a registry host. Environment variables
// win over the Docker CLI credential store; missing credentials yield an
// anonymous push attempt rather than an error.
func resolveAuth(domain string) (registry.AuthConfig, error) {
	if user := os.Getenv(envRegistryUsername); user != "" {
		return registry.AuthConfig{
			Username:      user,
			Password:      os.Getenv(envRegistryPassword),
			ServerAddress: domain,
		}, nil
	}

	key := domain
	if domain == "docker.io" {
		key = dockerHubAuthKey
	}

	cf, err := cliconfig.Load(cliconfig.Dir())
	if err != nil {
		return registry.AuthConfig{}, fmt.Errorf("loading docker CLI config: %w", err)
	}
	stored, err := cf.GetAuthConfig(key)
	if err != nil {
		return registry.AuthConfig{}, fmt.Errorf("reading credentials for %s: %w", domain, err)
	}

	return registry.AuthConfig{
		Username:      stored.Username,
		Password:      stored.Password,
		Auth:          stored.Auth,
		ServerAddress: stored.ServerAddress,
		IdentityToken: stored.IdentityToken,
		RegistryToken: stored.RegistryToken,
	}, nil
}
