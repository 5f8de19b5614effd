// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spiffcs/ghlens/internal/constants"
)

// ansiRegex matches ANSI SGR escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of s in terminal columns, ignoring
// ANSI escape sequences and counting wide runes as two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// Truncate shortens plain text to at most width columns, ending in "..."
// when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= constants.TruncationSuffixWidth {
		return strings.Repeat(".", width)
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads s with spaces to the target visible width.
func PadRight(s string, width int) string {
	if w := DisplayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// SingleLine collapses whitespace runs, including newlines, to single spaces.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
