package docker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputTailPassesThrough(t *testing.T) {
	var out bytes.Buffer
	tail := newOutputTail(&out, 8)

	_, err := tail.Write([]byte("hello"))
	require.NoError(t, err)

	require.Equal(t, "hello", out.String())
	require.Equal(t, "hello", tail.String())
}

func TestOutputTailKeepsLastBytes(t *testing.T) {
	tail := newOutputTail(nil, 8)

	for _, chunk := range []string{"configure: error: ", "x2", "64 not found"} {
		_, err := tail.Write([]byte(chunk))
		require.NoError(t, err)
	}
	require.Equal(t, "ot found", tail.String())

	_, err := tail.Write([]byte("!"))
	require.NoError(t, err)
	require.Equal(t, "t found!", tail.String())
}

func TestDockerCommandFromEnvironment(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "")
	require.Equal(t, "docker", DockerCommandFromEnvironment())

	t.Setenv(DockerCommandEnvVarName, "podman")
	require.Equal(t, "podman", DockerCommandFromEnvironment())
}
