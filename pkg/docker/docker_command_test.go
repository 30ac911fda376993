package docker

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/errors"
)

func TestDockerPush(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "echo")

	var out bytes.Buffer
	c := &DockerCommand{Output: &out}
	err := c.Push(context.Background(), "acme/tool:4.3.1")
	require.NoError(t, err)
	require.Equal(t, "push acme/tool:4.3.1\n", out.String())
}

func TestDockerTag(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "echo")

	var out bytes.Buffer
	c := &DockerCommand{Output: &out}
	require.NoError(t, c.Tag(context.Background(), "acme/tool", "acme/tool:stable"))
	require.Equal(t, "tag acme/tool acme/tool:stable\n", out.String())
}

func TestDockerLoginPassesTokenOnStdin(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "echo")

	var out bytes.Buffer
	c := &DockerCommand{Output: &out}
	require.NoError(t, c.Login(context.Background(), "", "someone", "s3cret"))
	require.Equal(t, "login --username someone --password-stdin\n", out.String())
	require.NotContains(t, out.String(), "s3cret")

	out.Reset()
	require.NoError(t, c.Login(context.Background(), "ghcr.io", "someone", "s3cret"))
	require.Equal(t, "login --username someone --password-stdin ghcr.io\n", out.String())
}

func TestDockerFailureIsBuildToolError(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "false")

	c := &DockerCommand{Output: &bytes.Buffer{}}
	err := c.Tag(context.Background(), "acme/tool", "acme/tool:stable")
	require.Error(t, err)
	require.True(t, errors.IsBuildToolError(err))
	require.Contains(t, err.Error(), "false tag acme/tool acme/tool:stable")
}

func TestDockerDryRunDoesNotExecute(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "false")

	c := NewDockerCommand(true)
	require.NoError(t, c.Push(context.Background(), "acme/tool"))
	require.NoError(t, c.ImageBuild(context.Background(), command.ImageBuildOptions{ImageName: "acme/tool"}))
}

func TestAuthorizationFailedError(t *testing.T) {
	require.True(t, isAuthorizationFailedError(errors.BuildToolError([]string{"docker", "push"}, "unauthorized: authentication required", nil)))
	require.False(t, isAuthorizationFailedError(errors.BuildToolError([]string{"docker", "push"}, "manifest unknown", nil)))
}

func TestDockerArgs(t *testing.T) {
	tests := []struct {
		name     string
		options  command.ImageBuildOptions
		expected []string
	}{
		{
			name: "basic build",
			options: command.ImageBuildOptions{
				ImageName: "acme/tool",
			},
			expected: []string{
				"build",
				"--file", "-",
				"--tag", "acme/tool",
				".",
			},
		},
		{
			name: "with no cache",
			options: command.ImageBuildOptions{
				ImageName: "acme/tool",
				NoCache:   true,
			},
			expected: []string{
				"build",
				"--no-cache",
				"--file", "-",
				"--tag", "acme/tool",
				".",
			},
		},
		{
			name: "with labels",
			options: command.ImageBuildOptions{
				ImageName: "acme/tool",
				Labels: map[string]string{
					"org.opencontainers.image.version": "4.3.1",
					"org.opencontainers.image.source":  "https://github.com/FFmpeg/FFmpeg.git",
				},
			},
			expected: []string{
				"build",
				"--label", "org.opencontainers.image.source=https://github.com/FFmpeg/FFmpeg.git",
				"--label", "org.opencontainers.image.version=4.3.1",
				"--file", "-",
				"--tag", "acme/tool",
				".",
			},
		},
		{
			name: "with build args",
			options: command.ImageBuildOptions{
				ImageName: "acme/tool",
				BuildArgs: map[string]string{"B": "2", "A": "1"},
			},
			expected: []string{
				"build",
				"--build-arg", "A=1",
				"--build-arg", "B=2",
				"--file", "-",
				"--tag", "acme/tool",
				".",
			},
		},
		{
			name: "with progress output and context dir",
			options: command.ImageBuildOptions{
				ImageName:      "acme/tool",
				ProgressOutput: "plain",
				ContextDir:     "/src/FFmpeg",
			},
			expected: []string{
				"build",
				"--progress", "plain",
				"--file", "-",
				"--tag", "acme/tool",
				"/src/FFmpeg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDockerCommand(false)
			actual := c.imageBuildArgs(tt.options)
			require.Equal(t, tt.expected, actual)
		})
	}
}
