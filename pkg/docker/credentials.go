package docker

import (
	"os"

	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/global"
)

// Credentials for pushing to a registry. UsernameEnv and TokenEnv name the environment
// variables the values fall back to.
type Credentials struct {
	Username    string
	Token       string
	UsernameEnv string
	TokenEnv    string
}

// ResolveCredentials prefers explicit values and otherwise reads the named environment variables.
// Empty variable names fall back to the defaults.
func ResolveCredentials(username, token, usernameEnv, tokenEnv string) Credentials {
	if usernameEnv == "" {
		usernameEnv = global.DefaultUsernameEnv
	}
	if tokenEnv == "" {
		tokenEnv = global.DefaultTokenEnv
	}
	if username == "" {
		username = os.Getenv(usernameEnv)
	}
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	return Credentials{
		Username:    username,
		Token:       token,
		UsernameEnv: usernameEnv,
		TokenEnv:    tokenEnv,
	}
}

func (c Credentials) Complete() bool {
	return c.Username != "" && c.Token != ""
}

// Require fails with AuthenticationRequired if push is requested without complete credentials.
func (c Credentials) Require(push bool) error {
	if push && !c.Complete() {
		return errors.AuthenticationRequired(c.UsernameEnv, c.TokenEnv)
	}
	return nil
}
