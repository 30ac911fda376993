package docker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediaforge/ffbuild/pkg/docker/dockertest"
	"github.com/mediaforge/ffbuild/pkg/errors"
)

func TestLoginForLogsInOncePerRegistry(t *testing.T) {
	mock := dockertest.NewMockCommand()
	auth := NewAuthenticator(mock, Credentials{Username: "someone", Token: "s3cret"})

	require.NoError(t, auth.LoginFor(context.Background(), "acme/tool"))
	require.NoError(t, auth.LoginFor(context.Background(), "acme/tool:4.3.1"))
	require.NoError(t, auth.LoginFor(context.Background(), "ghcr.io/acme/tool:4.3.1"))
	require.NoError(t, auth.LoginFor(context.Background(), "ghcr.io/acme/tool:stable"))

	require.Equal(t, []string{
		"login <default> someone",
		"login ghcr.io someone",
	}, mock.Calls)
}

func TestLoginForWithoutCredentials(t *testing.T) {
	mock := dockertest.NewMockCommand()
	auth := NewAuthenticator(mock, Credentials{Username: "someone", UsernameEnv: "U", TokenEnv: "T"})

	err := auth.LoginFor(context.Background(), "acme/tool")
	require.True(t, errors.IsAuthenticationRequired(err))
	require.Empty(t, mock.Calls)
}

func TestLoginForRetriesAfterFailure(t *testing.T) {
	mock := dockertest.NewMockCommand()
	mock.Errors["login"] = fmt.Errorf("denied")
	auth := NewAuthenticator(mock, Credentials{Username: "someone", Token: "s3cret"})

	require.Error(t, auth.LoginFor(context.Background(), "acme/tool"))
	delete(mock.Errors, "login")
	require.NoError(t, auth.LoginFor(context.Background(), "acme/tool"))
	require.Len(t, mock.Calls, 2)
}
