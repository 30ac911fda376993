package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: InfoLevel, Err: &stderr}

	c.Debug("hidden")
	c.Info("shown")
	c.Warnf("careful %d", 2)

	require.Equal(t, "shown\ncareful 2\n", stderr.String())
}

func TestMultilineMessagesArePrefixed(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: DebugLevel, Err: &stderr}

	c.Error("first\nsecond")

	require.Equal(t, "first\nsecond\n", stderr.String())
}

func TestOutputGoesToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := &Console{Level: InfoLevel, Out: &stdout, Err: &stderr}

	c.Output("result")

	require.Equal(t, "result\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestRuleWidth(t *testing.T) {
	require.NotEmpty(t, Rule())
}

func TestColorMarkers(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: InfoLevel, Err: &stderr, Color: true}

	c.Warn("careful")
	c.Info("plain")

	require.Contains(t, stderr.String(), "⚠ ")
	require.Contains(t, stderr.String(), "careful")
	require.Contains(t, stderr.String(), "\nplain\n")
}

func TestSetOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	SetOutput(&stdout, &stderr)
	t.Cleanup(func() { SetOutput(nil, nil) })

	Infof("building %s", "acme/tool")
	Output("acme/tool:4.3.1")

	require.Equal(t, "building acme/tool\n", stderr.String())
	require.Equal(t, "acme/tool:4.3.1\n", stdout.String())
}
