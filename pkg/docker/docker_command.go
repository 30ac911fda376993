package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

// DockerCommand drives the docker CLI.
type DockerCommand struct {
	// DryRun prints each invocation instead of running it
	DryRun bool
	// Output receives the commands' stdout and stderr, os.Stderr if nil
	Output io.Writer
}

var _ command.Command = (*DockerCommand)(nil)

func NewDockerCommand(dryRun bool) *DockerCommand {
	return &DockerCommand{DryRun: dryRun}
}

func (c *DockerCommand) ImageBuild(ctx context.Context, options command.ImageBuildOptions) error {
	console.Debugf("=== DockerCommand.ImageBuild %s", options.ImageName)
	args := c.imageBuildArgs(options)
	return c.exec(ctx, strings.NewReader(options.DockerfileContents), args...)
}

func (c *DockerCommand) imageBuildArgs(options command.ImageBuildOptions) []string {
	args := []string{"build"}

	for _, k := range sortedKeys(options.BuildArgs) {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, options.BuildArgs[k]))
	}
	for _, k := range sortedKeys(options.Labels) {
		// Docker splits on the first '=', the rest is the label value and needs no quoting
		args = append(args, "--label", fmt.Sprintf("%s=%s", k, options.Labels[k]))
	}
	if options.NoCache {
		args = append(args, "--no-cache")
	}
	if options.ProgressOutput != "" {
		args = append(args, "--progress", options.ProgressOutput)
	}

	contextDir := options.ContextDir
	if contextDir == "" {
		contextDir = "."
	}
	args = append(args,
		"--file", "-",
		"--tag", options.ImageName,
		contextDir,
	)
	return args
}

func (c *DockerCommand) Tag(ctx context.Context, source string, target string) error {
	console.Debugf("=== DockerCommand.Tag %s %s", source, target)
	args := []string{"tag", source, target}
	return c.exec(ctx, nil, args...)
}

func (c *DockerCommand) Login(ctx context.Context, registryHost string, username string, token string) error {
	console.Debugf("=== DockerCommand.Login %s %s", registryHost, username)
	args := []string{"login", "--username", username, "--password-stdin"}
	if registryHost != "" {
		args = append(args, registryHost)
	}
	// the token goes over stdin so it never shows up in a process listing
	return c.exec(ctx, strings.NewReader(token), args...)
}

func (c *DockerCommand) Push(ctx context.Context, ref string) error {
	console.Debugf("=== DockerCommand.Push %s", ref)
	args := []string{"push", ref}
	err := c.exec(ctx, nil, args...)
	if err != nil && isAuthorizationFailedError(err) {
		return fmt.Errorf("%w: %w", command.ErrAuthorizationFailed, err)
	}
	return err
}

func (c *DockerCommand) exec(ctx context.Context, stdin io.Reader, args ...string) error {
	dockerCmd := DockerCommandFromEnvironment()
	argv := append([]string{dockerCmd}, args...)

	if c.DryRun {
		console.Info("$ " + strings.Join(argv, " "))
		return nil
	}

	out := c.Output
	if out == nil {
		out = os.Stderr
	}
	// build output is all messaging, so stdout goes to stderr along with it
	tail := newOutputTail(out, outputTailSize)

	cmd := exec.CommandContext(ctx, dockerCmd, args...)
	cmd.Env = os.Environ()
	cmd.Stdin = stdin
	cmd.Stdout = tail
	cmd.Stderr = tail

	console.Debug("$ " + strings.Join(argv, " "))
	if err := cmd.Run(); err != nil {
		return errors.BuildToolError(argv, tail.String(), err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
