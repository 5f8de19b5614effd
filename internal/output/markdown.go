package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/ghlens/internal/format"
	"github.com/spiffcs/ghlens/internal/service"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

// escapeCell makes text safe inside a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(format.SingleLine(s), "|", `\|`)
}

// Dashboard outputs the profile and a timeline table per year.
func (f *MarkdownFormatter) Dashboard(d *service.Dashboard, w io.Writer) error {
	p := d.Profile
	fmt.Fprintf(w, "# %s (@%s)\n\n", p.DisplayName(), p.Login)
	fmt.Fprintf(w, "%s\n\n", p.DisplayBio())
	if p.Location != "" {
		fmt.Fprintf(w, "📍 %s\n\n", p.Location)
	}
	fmt.Fprintf(w, "**%d** followers · **%d** following\n\n", p.FollowerCount(), p.FollowingCount())

	if len(d.Repositories) == 0 {
		fmt.Fprintln(w, NoRepositories)
		return nil
	}

	for i, e := range d.Timeline() {
		if e.ShowYear {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "## %d\n\n", e.Year)
			fmt.Fprintln(w, "| Repository | Language | Stars | Forks | Description |")
			fmt.Fprintln(w, "|------------|----------|-------|-------|-------------|")
		}
		r := e.Repository
		language := "-"
		if r.PrimaryLanguage != nil {
			language = r.PrimaryLanguage.Name
		}
		fmt.Fprintf(w, "| [%s](%s) | %s | %d | %d | %s |\n",
			r.NameWithOwner, r.URL, language, r.StargazerCount, r.ForkCount, escapeCell(r.DisplayDescription()))
	}
	return nil
}

// Repository outputs a repository view as a markdown document. The README
// is embedded verbatim.
func (f *MarkdownFormatter) Repository(v *service.RepositoryView, w io.Writer) error {
	r := v.Repository
	fmt.Fprintf(w, "# %s\n\n", r.NameWithOwner)
	fmt.Fprintf(w, "%s\n\n", r.DisplayDescription())
	fmt.Fprintf(w, "⭐ %d · 🍴 %d · created %s\n\n", r.StargazerCount, r.ForkCount, format.Date(r.CreatedAt))

	fmt.Fprint(w, "## Tech Stack\n\n")
	switch {
	case v.AnalysisErr != nil:
		fmt.Fprintf(w, "> %s\n\n", sectionFailure(service.SectionAnalysis, FailedAnalysis, v.AnalysisErr))
	case v.Analysis != nil && len(v.Analysis.Technologies) > 0:
		for _, t := range v.Analysis.Technologies {
			fmt.Fprintf(w, "- %s\n", t)
		}
		fmt.Fprintln(w)
	default:
		fmt.Fprintf(w, "_%s_\n\n", NoTechnologies)
	}

	fmt.Fprint(w, "## AI Summary\n\n")
	switch {
	case v.AnalysisErr != nil:
		fmt.Fprintf(w, "> %s\n\n", sectionFailure(service.SectionAnalysis, FailedAnalysis, v.AnalysisErr))
	case v.Analysis != nil && v.Analysis.Description != "":
		fmt.Fprintf(w, "%s\n\n", v.Analysis.Description)
	default:
		fmt.Fprintf(w, "_%s_\n\n", NoSummary)
	}

	if v.ContributionsRequested {
		fmt.Fprintf(w, "## %s's Contribution\n\n", v.Username)
		if v.ContributionsErr != nil || v.Contributions == nil {
			fmt.Fprintf(w, "_%s_\n\n", NoContributions)
		} else {
			s := v.Contributions.ContributionStats
			ai := v.Contributions.AIAnalysis
			fmt.Fprintf(w, "| Commits | PRs | Issues |\n|---|---|---|\n| %d | %d | %d |\n\n", s.Commits, s.PullRequests, s.Issues)
			if ai.ImpactLevel != "" {
				fmt.Fprintf(w, "**Impact Level:** %s\n\n", ai.ImpactLevel)
			}
			if ai.RoleSummary != "" {
				fmt.Fprintf(w, "%s\n\n", ai.RoleSummary)
			}
			for _, c := range ai.KeyContributions {
				fmt.Fprintf(w, "- %s\n", c)
			}
			if len(ai.KeyContributions) > 0 {
				fmt.Fprintln(w)
			}
			if len(ai.SkillsDemonstrated) > 0 {
				fmt.Fprintf(w, "**Skills:** %s\n\n", strings.Join(ai.SkillsDemonstrated, ", "))
			}
		}
	}

	fmt.Fprint(w, "## README\n\n")
	switch {
	case v.DetailErr != nil:
		fmt.Fprintf(w, "> %s\n", sectionFailure(service.SectionDetails, FailedDetails, v.DetailErr))
	case v.Detail.ReadmeText() != "":
		fmt.Fprintln(w, strings.TrimRight(v.Detail.ReadmeText(), "\n"))
	default:
		fmt.Fprintf(w, "_%s_\n", NoReadme)
	}
	return nil
}

// Calendar outputs the year summary and a per-month table.
func (f *MarkdownFormatter) Calendar(r CalendarReport, w io.Writer) error {
	fmt.Fprintf(w, "# %s · %d\n\n", r.Username, r.Year)
	fmt.Fprintf(w, "**%s**\n\n", TotalLine(r.Derived.TotalContributions, r.Year))

	if c, ok := r.Derived.Busiest(); ok {
		fmt.Fprintf(w, "Busiest day: %s with %d contributions.\n\n", c.FormatDate(), c.Count)
	}

	months := monthTotals(r)
	if len(months) == 0 {
		return nil
	}
	fmt.Fprintln(w, "| Month | Contributions |")
	fmt.Fprintln(w, "|-------|---------------|")
	for _, m := range months {
		fmt.Fprintf(w, "| %s | %d |\n", m.month, m.total)
	}
	return nil
}

type monthTotal struct {
	month string
	total int
}

// monthTotals sums cell counts per calendar month in date order.
func monthTotals(r CalendarReport) []monthTotal {
	var out []monthTotal
	for _, c := range r.Derived.Cells {
		if len(c.Date) < len("2006-01") {
			continue
		}
		m := c.Date[:len("2006-01")]
		if len(out) == 0 || out[len(out)-1].month != m {
			out = append(out, monthTotal{month: m})
		}
		out[len(out)-1].total += c.Count
	}
	return out
}
