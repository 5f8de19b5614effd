package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spiffcs/ghlens/internal/calendar"
)

const (
	heatmapCell      = "■"
	heatmapLabelCols = 4
)

// plainGlyphs stand in for the ramp colors when color is off.
var plainGlyphs = [calendar.NumBuckets]string{"·", "░", "▒", "▓", "█"}

var bucketStyles = func() [calendar.NumBuckets]lipgloss.Style {
	var styles [calendar.NumBuckets]lipgloss.Style
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(calendar.Ramp[i]))
	}
	return styles
}()

func bucketGlyph(b calendar.Bucket, colored bool) string {
	if b < calendar.BucketEmpty || b > calendar.BucketMax {
		b = calendar.BucketEmpty
	}
	if colored {
		return bucketStyles[b].Render(heatmapCell)
	}
	return plainGlyphs[b]
}

// RenderHeatmap draws the year as seven weekday rows by one column per week
// with month labels above, day labels on the left and a legend below.
func RenderHeatmap(d calendar.Derived, year int, colored bool) string {
	var b strings.Builder

	b.WriteString(monthLabelRow(d))
	b.WriteByte('\n')

	grid := d.Grid()
	for row := 0; row < 7; row++ {
		fmt.Fprintf(&b, "%-*s", heatmapLabelCols, calendar.DayLabels[row])
		for _, c := range grid[row] {
			if c == nil {
				b.WriteString("  ")
				continue
			}
			b.WriteString(bucketGlyph(c.Bucket, colored))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", heatmapLabelCols))
	b.WriteString(Legend(colored))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s\n", TotalLine(d.TotalContributions, year))
	return b.String()
}

// monthLabelRow positions each month label over its first week column.
// A label that would overlap the previous one moves right to the next free
// column, and labels near the end extend the row past the grid.
func monthLabelRow(d calendar.Derived) string {
	row := []byte(strings.Repeat(" ", heatmapLabelCols+2*d.Weeks))
	next := 0
	for _, l := range d.MonthLabels {
		col := max(heatmapLabelCols+2*l.WeekIndex, next)
		if need := col + len(l.Month); need > len(row) {
			row = append(row, bytes.Repeat([]byte(" "), need-len(row))...)
		}
		copy(row[col:], l.Month)
		next = col + len(l.Month) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// Legend renders "Less ■■■■■ More" across the color ramp.
func Legend(colored bool) string {
	parts := make([]string, 0, calendar.NumBuckets)
	for b := calendar.BucketEmpty; b <= calendar.BucketMax; b++ {
		parts = append(parts, bucketGlyph(b, colored))
	}
	return "Less " + strings.Join(parts, " ") + " More"
}

// TotalLine is the "N contributions in YEAR" summary.
func TotalLine(total, year int) string {
	return fmt.Sprintf("%d contributions in %d", total, year)
}
