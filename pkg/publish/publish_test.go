package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediaforge/ffbuild/pkg/docker"
	"github.com/mediaforge/ffbuild/pkg/docker/dockertest"
	ffErrors "github.com/mediaforge/ffbuild/pkg/errors"
)

var credentials = docker.Credentials{
	Username:    "user",
	Token:       "secret",
	UsernameEnv: "DOCKERHUB_USER",
	TokenEnv:    "DOCKERHUB_TOKEN",
}

func TestPublishTagsWithoutPush(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	plan := Plan{Repository: "acme/tool", Tags: []string{"4.3.1", "stable"}}

	require.NoError(t, NewPublisher(cmd).Publish(context.Background(), plan))
	require.Equal(t, []string{
		"tag acme/tool acme/tool:4.3.1",
		"tag acme/tool acme/tool:stable",
	}, cmd.Calls)
}

func TestPublishPushesLatestThenEachTag(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	plan := Plan{Repository: "acme/tool", Tags: []string{"4.3.1", "stable"}, Push: true, Credentials: credentials}

	require.NoError(t, NewPublisher(cmd).Publish(context.Background(), plan))
	require.Equal(t, []string{
		"login <default> user",
		"push acme/tool",
		"tag acme/tool acme/tool:4.3.1",
		"push acme/tool:4.3.1",
		"tag acme/tool acme/tool:stable",
		"push acme/tool:stable",
	}, cmd.Calls)
}

func TestPublishLatestOnly(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	plan := Plan{Repository: "acme/tool", Tags: []string{"stable"}, Push: true, LatestOnly: true, Credentials: credentials}

	require.NoError(t, NewPublisher(cmd).Publish(context.Background(), plan))
	require.Equal(t, []string{"login <default> user", "push acme/tool"}, cmd.Calls)
}

func TestPublishOtherRegistry(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	plan := Plan{Repository: "ghcr.io/acme/tool", Tags: []string{"stable"}, Push: true, Credentials: credentials}

	require.NoError(t, NewPublisher(cmd).Publish(context.Background(), plan))
	require.Equal(t, []string{"ghcr.io user"}, cmd.CallsOf("login"))
	require.Equal(t, []string{"ghcr.io/acme/tool", "ghcr.io/acme/tool:stable"}, cmd.CallsOf("push"))
}

func TestPublishWithoutCredentials(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	plan := Plan{Repository: "acme/tool", Tags: []string{"stable"}, Push: true}

	err := NewPublisher(cmd).Publish(context.Background(), plan)
	require.True(t, ffErrors.IsAuthenticationRequired(err))
	require.Empty(t, cmd.Calls)
}

func TestPublishStopsOnPushFailure(t *testing.T) {
	cmd := dockertest.NewMockCommand()
	cmd.Errors["push"] = errors.New("denied")
	plan := Plan{Repository: "acme/tool", Tags: []string{"stable"}, Push: true, Credentials: credentials}

	err := NewPublisher(cmd).Publish(context.Background(), plan)
	require.EqualError(t, err, "denied")
	require.Equal(t, []string{"login <default> user", "push acme/tool"}, cmd.Calls)
}
