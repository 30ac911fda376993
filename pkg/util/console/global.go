package console

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ConsoleInstance is the console the package-level functions write to
var ConsoleInstance = &Console{
	Color: IsTTY(os.Stderr),
	Level: InfoLevel,
}

func SetLevel(level Level) {
	ConsoleInstance.Level = level
}

// SetOutput redirects the package-level console, e.g. to capture it in tests. Nil
// restores the default stream.
func SetOutput(out, err io.Writer) {
	ConsoleInstance.mu.Lock()
	defer ConsoleInstance.mu.Unlock()
	ConsoleInstance.Out = out
	ConsoleInstance.Err = err
}

func Debug(msg string)            { ConsoleInstance.Debug(msg) }
func Info(msg string)             { ConsoleInstance.Info(msg) }
func Debugf(msg string, v ...any) { ConsoleInstance.Debugf(msg, v...) }
func Infof(msg string, v ...any)  { ConsoleInstance.Infof(msg, v...) }
func Warnf(msg string, v ...any)  { ConsoleInstance.Warnf(msg, v...) }
func Errorf(msg string, v ...any) { ConsoleInstance.Errorf(msg, v...) }
func Fatalf(msg string, v ...any) { ConsoleInstance.Fatalf(msg, v...) }
func Output(s string)             { ConsoleInstance.Output(s) }

// IsTTY checks if a file is a TTY or not. E.g. IsTTY(os.Stdin)
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}
