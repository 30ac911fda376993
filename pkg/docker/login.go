package docker

import (
	"context"
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

// Authenticator logs in to registries on demand, at most once per registry per run.
type Authenticator struct {
	command     command.Command
	credentials Credentials
	loggedIn    map[string]bool
}

func NewAuthenticator(cmd command.Command, credentials Credentials) *Authenticator {
	return &Authenticator{
		command:     cmd,
		credentials: credentials,
		loggedIn:    map[string]bool{},
	}
}

// LoginFor logs in to the registry that imageRef lives in. It is safe to call before every push:
// a registry is logged in to once per Authenticator, and later calls for it return nil without
// running docker login again.
func (a *Authenticator) LoginFor(ctx context.Context, imageRef string) error {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return fmt.Errorf("Failed to parse image reference %q: %w", imageRef, err)
	}
	registryHost := ref.Context().RegistryStr()
	if a.loggedIn[registryHost] {
		return nil
	}
	if !a.credentials.Complete() {
		return errors.AuthenticationRequired(a.credentials.UsernameEnv, a.credentials.TokenEnv)
	}

	// docker login treats an empty server as Docker Hub
	server := registryHost
	if server == name.DefaultRegistry {
		server = ""
	}
	console.Infof("Logging in to %s as %s", registryHost, a.credentials.Username)
	if err := a.command.Login(ctx, server, a.credentials.Username, a.credentials.Token); err != nil {
		return err
	}
	a.loggedIn[registryHost] = true
	return nil
}
