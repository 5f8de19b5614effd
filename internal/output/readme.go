package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/log"
	"golang.org/x/term"
)

// terminalWidth returns the stdout width, or fallback when stdout is not a
// terminal.
func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// RenderMarkdown renders markdown for the terminal. Rendering failures fall
// back to the raw text.
func RenderMarkdown(text string, width int, colored bool) string {
	if width <= 0 {
		width = constants.ReadmeWrapWidth
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if colored {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.Debug("markdown renderer unavailable", "error", err)
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		log.Debug("failed to render markdown", "error", err)
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}
