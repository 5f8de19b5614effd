package tui

import "github.com/charmbracelet/lipgloss"

// Terminal palette (256-color) plus the calendar ramp's brightest green.
const (
	colorDim    = lipgloss.Color("240")
	colorText   = lipgloss.Color("252")
	colorMuted  = lipgloss.Color("244")
	colorOK     = lipgloss.Color("46")
	colorFail   = lipgloss.Color("196")
	colorAccent = lipgloss.Color("86")
	colorTitle  = lipgloss.Color("220")
	colorGreen  = lipgloss.Color("#39d353")
	colorBorder = lipgloss.Color("#30363d")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	taskNameStyle = fg(colorText)
	taskDimStyle  = fg(colorDim)
	messageStyle  = fg(colorMuted)
	errorStyle    = fg(colorFail)
	spinnerStyle  = fg(colorAccent)
	footerStyle   = fg(colorDim).MarginTop(1)
	titleStyle    = fg(colorTitle).Bold(true)

	yearStyle        = fg(colorGreen).Bold(true)
	yearDimStyle     = fg(colorDim)
	calendarBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	statusIcons = map[TaskStatus]string{
		StatusPending:  fg(colorDim).Render("○"),
		StatusComplete: fg(colorOK).Render("✓"),
		StatusError:    fg(colorFail).Render("✗"),
		StatusSkipped:  fg(colorDim).Render("–"),
	}
)

// StatusIcon returns the icon for status. Running tasks show the current
// spinner frame; unknown statuses look pending.
func StatusIcon(status TaskStatus, spinnerFrame string) string {
	if status == StatusRunning {
		return spinnerStyle.Render(spinnerFrame)
	}
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return statusIcons[StatusPending]
}
