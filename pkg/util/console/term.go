package console

import (
	"os"
	"strings"

	"github.com/moby/term"
)

const defaultRuleWidth = 60

// GetWidth returns the width of the terminal (from stderr -- stdout might be piped)
//
// Returns 0 if we're not in a terminal
func GetWidth() (uint16, error) {
	fd := os.Stderr.Fd()
	if term.IsTerminal(fd) {
		ws, err := term.GetWinsize(fd)
		if err != nil {
			return 0, err
		}
		return ws.Width, nil
	}
	return 0, nil
}

// Rule returns a horizontal separator sized to the terminal, capped at a sensible width
func Rule() string {
	width, err := GetWidth()
	if err != nil || width == 0 || width > defaultRuleWidth {
		width = defaultRuleWidth
	}
	return strings.Repeat("─", int(width))
}
