package dockertest

import (
	"context"
	"strings"

	"github.com/mediaforge/ffbuild/pkg/docker/command"
)

// MockCommand records every docker invocation instead of running it.
type MockCommand struct {
	// Calls holds one line per invocation, e.g. "tag acme/tool acme/tool:4.3.1"
	Calls  []string
	Builds []command.ImageBuildOptions

	// Errors maps an operation ("build", "tag", "login", "push") to the error it returns
	Errors map[string]error
	// OnBuild, if set, runs during ImageBuild, while the build context still exists
	OnBuild func(options command.ImageBuildOptions)
}

var _ command.Command = (*MockCommand)(nil)

func NewMockCommand() *MockCommand {
	return &MockCommand{Errors: map[string]error{}}
}

func (c *MockCommand) ImageBuild(ctx context.Context, options command.ImageBuildOptions) error {
	c.Builds = append(c.Builds, options)
	if c.OnBuild != nil {
		c.OnBuild(options)
	}
	return c.record("build", options.ImageName)
}

func (c *MockCommand) Tag(ctx context.Context, source string, target string) error {
	return c.record("tag", source, target)
}

func (c *MockCommand) Login(ctx context.Context, registryHost string, username string, token string) error {
	if registryHost == "" {
		registryHost = "<default>"
	}
	return c.record("login", registryHost, username)
}

func (c *MockCommand) Push(ctx context.Context, ref string) error {
	return c.record("push", ref)
}

// CallsOf returns the recorded calls of one operation, without the operation name.
func (c *MockCommand) CallsOf(op string) []string {
	out := []string{}
	for _, call := range c.Calls {
		if rest, ok := strings.CutPrefix(call, op+" "); ok {
			out = append(out, rest)
		}
	}
	return out
}

func (c *MockCommand) record(op string, args ...string) error {
	c.Calls = append(c.Calls, strings.Join(append([]string{op}, args...), " "))
	return c.Errors[op]
}
