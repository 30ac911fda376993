package docker

import (
	"io"
	"os"
	"sync"
)

const (
	// FFBUILD_DOCKER_COMMAND replaces the docker binary, e.g. with "echo" in tests
	DockerCommandEnvVarName = "FFBUILD_DOCKER_COMMAND"

	// how much of a failed command's output is carried in its error
	outputTailSize = 4096
)

func DockerCommandFromEnvironment() string {
	if command := os.Getenv(DockerCommandEnvVarName); command != "" {
		return command
	}
	return "docker"
}

// outputTail passes a command's output through to w and remembers the last max bytes.
type outputTail struct {
	w   io.Writer
	max int

	mu  sync.Mutex
	buf []byte
}

func newOutputTail(w io.Writer, max int) *outputTail {
	if w == nil {
		w = io.Discard
	}
	return &outputTail{w: w, max: max, buf: make([]byte, 0, max)}
}

func (t *outputTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.w.Write(p)
	if len(p) >= t.max {
		t.buf = append(t.buf[:0], p[len(p)-t.max:]...)
	} else {
		if over := len(t.buf) + len(p) - t.max; over > 0 {
			t.buf = append(t.buf[:0], t.buf[over:]...)
		}
		t.buf = append(t.buf, p...)
	}
	return n, err
}

func (t *outputTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
