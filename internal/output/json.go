package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/ghlens/internal/model"
	"github.com/spiffcs/ghlens/internal/service"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// DashboardJSON is the JSON shape of a dashboard.
type DashboardJSON struct {
	Profile      *model.Profile     `json:"profile"`
	Repositories []model.Repository `json:"repositories"`
	Timeline     []TimelineYearJSON `json:"timeline"`
}

// TimelineYearJSON lists repository names created in one year.
type TimelineYearJSON struct {
	Year         int      `json:"year"`
	Repositories []string `json:"repositories"`
}

// RepositoryJSON is the JSON shape of a repository view. Section errors
// are reported as strings.
type RepositoryJSON struct {
	Repository    model.Repository            `json:"repository"`
	Details       *model.RepositoryDetail     `json:"details,omitempty"`
	Analysis      *model.Analysis             `json:"analysis,omitempty"`
	Contributions *model.ContributionAnalysis `json:"contributions,omitempty"`
	Errors        map[string]string           `json:"errors,omitempty"`
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// Dashboard outputs the profile, repositories and timeline grouping.
func (f *JSONFormatter) Dashboard(d *service.Dashboard, w io.Writer) error {
	out := DashboardJSON{
		Profile:      d.Profile,
		Repositories: d.Repositories,
		Timeline:     []TimelineYearJSON{},
	}
	if out.Repositories == nil {
		out.Repositories = []model.Repository{}
	}
	for _, e := range d.Timeline() {
		if e.ShowYear {
			out.Timeline = append(out.Timeline, TimelineYearJSON{Year: e.Year})
		}
		last := &out.Timeline[len(out.Timeline)-1]
		last.Repositories = append(last.Repositories, e.Repository.NameWithOwner)
	}
	return f.encode(out, w)
}

// Repository outputs every section with per-section errors.
func (f *JSONFormatter) Repository(v *service.RepositoryView, w io.Writer) error {
	out := RepositoryJSON{
		Repository:    v.Repository,
		Details:       v.Detail,
		Analysis:      v.Analysis,
		Contributions: v.Contributions,
	}
	if errs := v.Errors(); len(errs) > 0 {
		out.Errors = make(map[string]string, len(errs))
		for section, err := range errs {
			out.Errors[string(section)] = err.Error()
		}
	}
	return f.encode(out, w)
}

// Calendar outputs the derived cells, labels and totals.
func (f *JSONFormatter) Calendar(r CalendarReport, w io.Writer) error {
	return f.encode(r, w)
}
