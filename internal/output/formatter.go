package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/ghlens/internal/calendar"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/service"
)

// Shown in place of a section whose fetch failed. The underlying error is
// only logged.
const (
	FailedDetails  = "Failed to load repository details"
	FailedAnalysis = "Failed to load AI analysis"
)

// sectionFailure logs err at debug and returns the generic message for a
// failed section.
func sectionFailure(section service.Section, msg string, err error) string {
	log.Debug("section unavailable", "section", section, "error", err)
	return msg
}

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// AllFormats lists the supported formats.
func AllFormats() []Format {
	return []Format{FormatTable, FormatJSON, FormatMarkdown}
}

// ParseFormat validates a format name. The empty string selects the table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or markdown)", s)
	}
}

// CalendarReport is one rendered year of a user's contribution calendar.
type CalendarReport struct {
	Username string           `json:"username"`
	Year     int              `json:"year"`
	Years    []int            `json:"availableYears,omitempty"`
	Derived  calendar.Derived `json:"calendar"`
}

// Formatter defines the interface for output formatters
type Formatter interface {
	Dashboard(d *service.Dashboard, w io.Writer) error
	Repository(v *service.RepositoryView, w io.Writer) error
	Calendar(r CalendarReport, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return NewTableFormatter()
	}
}
