// Package console prints progress to stderr and results to stdout.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
)

// Console writes levelled messages to Err and command results to Out. Messages below
// Level are dropped. Color enables the warning and error markers and dims debug output.
type Console struct {
	Color bool
	Level Level

	// Out and Err default to os.Stdout and os.Stderr when nil
	Out io.Writer
	Err io.Writer

	mu sync.Mutex
}

func (c *Console) Debug(msg string) { c.log(DebugLevel, msg) }
func (c *Console) Info(msg string)  { c.log(InfoLevel, msg) }
func (c *Console) Warn(msg string)  { c.log(WarnLevel, msg) }
func (c *Console) Error(msg string) { c.log(ErrorLevel, msg) }

func (c *Console) Debugf(msg string, v ...any) { c.log(DebugLevel, fmt.Sprintf(msg, v...)) }
func (c *Console) Infof(msg string, v ...any)  { c.log(InfoLevel, fmt.Sprintf(msg, v...)) }
func (c *Console) Warnf(msg string, v ...any)  { c.log(WarnLevel, fmt.Sprintf(msg, v...)) }
func (c *Console) Errorf(msg string, v ...any) { c.log(ErrorLevel, fmt.Sprintf(msg, v...)) }

// Fatalf prints an error and exits with status 1.
func (c *Console) Fatalf(msg string, v ...any) {
	c.log(FatalLevel, fmt.Sprintf(msg, v...))
	os.Exit(1)
}

// Output prints one line of a command's result to stdout.
func (c *Console) Output(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(orDefault(c.Out, os.Stdout), s)
}

func (c *Console) log(level Level, msg string) {
	if level < c.Level {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := orDefault(c.Err, os.Stderr)
	marker := c.marker(level)
	for _, line := range strings.Split(msg, "\n") {
		if c.Color && level == DebugLevel {
			line = aurora.Faint(line).String()
		}
		fmt.Fprintln(out, marker+line)
	}
}

func (c *Console) marker(level Level) string {
	if !c.Color {
		return ""
	}
	switch level {
	case WarnLevel:
		return aurora.Yellow("⚠ ").String()
	case ErrorLevel, FatalLevel:
		return aurora.Red("ⅹ ").String()
	}
	return ""
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
