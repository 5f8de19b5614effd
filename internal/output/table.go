package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/format"
	"github.com/spiffcs/ghlens/internal/model"
	"github.com/spiffcs/ghlens/internal/service"
)

// Placeholders shown when a section has nothing to display.
const (
	NoTechnologies   = "No technologies detected"
	NoSummary        = "No AI summary available"
	NoReadme         = "No README file found"
	NoRepositories   = "No repositories found."
	NoContributions  = "Unable to analyze contributions for this repository."
	timelineYearHead = "Year"
)

// TableFormatter formats output for a terminal.
type TableFormatter struct {
	// Color enables ANSI colors. It defaults to fatih/color's terminal detection.
	Color bool
	// ReadmeWidth is the README wrap width; zero uses the terminal width.
	ReadmeWidth int
	// Now is used for relative ages; zero means time.Now.
	Now time.Time
}

// NewTableFormatter creates a TableFormatter with color following the terminal.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{Color: !color.NoColor}
}

func (f *TableFormatter) paint(attrs ...color.Attribute) func(a ...any) string {
	if !f.Color {
		return fmt.Sprint
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

func (f *TableFormatter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

// Dashboard prints the profile card and the repository timeline.
func (f *TableFormatter) Dashboard(d *service.Dashboard, w io.Writer) error {
	bold := f.paint(color.Bold)
	faint := f.paint(color.Faint)

	p := d.Profile
	fmt.Fprintf(w, "%s %s\n", bold(p.DisplayName()), faint("@"+p.Login))
	fmt.Fprintln(w, p.DisplayBio())
	if p.Location != "" {
		fmt.Fprintf(w, "%s\n", faint(p.Location))
	}
	fmt.Fprintf(w, "%s followers · %s following · %s\n\n",
		bold(format.Count(p.FollowerCount())),
		bold(format.Count(p.FollowingCount())),
		format.Plural(len(d.Repositories), "repository", "repositories"))

	if len(d.Repositories) == 0 {
		fmt.Fprintln(w, NoRepositories)
		return nil
	}
	return f.timeline(d.Timeline(), w)
}

func (f *TableFormatter) timeline(entries []model.TimelineEntry, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{timelineYearHead, "Repository", "Language", "Stars", "Forks", "Created", "Description"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{
			tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft, tw.AlignLeft,
		}
	})

	yearColor := f.paint(color.FgCyan, color.Bold)
	teamColor := f.paint(color.FgMagenta)
	now := f.now()

	var data [][]string
	for _, e := range entries {
		r := e.Repository
		year := ""
		if e.ShowYear {
			year = yearColor(strconv.Itoa(e.Year))
		}
		name := r.NameWithOwner
		if r.IsMultiContributor() {
			name += " " + teamColor("[team]")
		}
		language := "-"
		if r.PrimaryLanguage != nil && r.PrimaryLanguage.Name != "" {
			language = r.PrimaryLanguage.Name
		}
		data = append(data, []string{
			year,
			name,
			language,
			format.Count(r.StargazerCount),
			format.Count(r.ForkCount),
			format.Age(r.CreatedAt, now),
			format.Truncate(format.SingleLine(r.DisplayDescription()), constants.TimelineDescriptionWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Repository prints every section of a repository view.
func (f *TableFormatter) Repository(v *service.RepositoryView, w io.Writer) error {
	bold := f.paint(color.Bold)
	faint := f.paint(color.Faint)
	red := f.paint(color.FgRed)
	heading := f.paint(color.FgCyan, color.Bold)

	r := v.Repository
	title := bold(r.NameWithOwner)
	if r.IsOwnedBy(v.Username) {
		title += " " + f.paint(color.FgGreen)("[owner]")
	}
	if r.IsMultiContributor() {
		title += " " + f.paint(color.FgMagenta)("[team]")
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, r.DisplayDescription())

	stats := []string{
		"★ " + format.Count(r.StargazerCount),
		"⑂ " + format.Count(r.ForkCount),
	}
	if r.PrimaryLanguage != nil {
		stats = append(stats, r.PrimaryLanguage.Name)
	}
	stats = append(stats, "created "+format.Date(r.CreatedAt))
	fmt.Fprintln(w, faint(strings.Join(stats, " · ")))
	if r.URL != "" {
		fmt.Fprintln(w, faint(r.URL))
	}

	fmt.Fprintf(w, "\n%s\n", heading("Tech Stack"))
	switch {
	case v.AnalysisErr != nil:
		fmt.Fprintln(w, red(sectionFailure(service.SectionAnalysis, FailedAnalysis, v.AnalysisErr)))
	case v.Analysis != nil && len(v.Analysis.Technologies) > 0:
		fmt.Fprintln(w, strings.Join(v.Analysis.Technologies, ", "))
	default:
		fmt.Fprintln(w, faint(NoTechnologies))
	}

	fmt.Fprintf(w, "\n%s\n", heading("AI Summary"))
	switch {
	case v.AnalysisErr != nil:
		fmt.Fprintln(w, red(sectionFailure(service.SectionAnalysis, FailedAnalysis, v.AnalysisErr)))
	case v.Analysis != nil && v.Analysis.Description != "":
		fmt.Fprintln(w, v.Analysis.Description)
	default:
		fmt.Fprintln(w, faint(NoSummary))
	}

	if v.ContributionsRequested {
		fmt.Fprintf(w, "\n%s\n", heading(v.Username+"'s Contribution"))
		f.contributions(v, w)
	}

	if v.DetailErr == nil && v.Detail != nil {
		f.details(v.Detail, w)
	}

	fmt.Fprintf(w, "\n%s\n", heading("README.md"))
	switch {
	case v.DetailErr != nil:
		fmt.Fprintln(w, red(sectionFailure(service.SectionDetails, FailedDetails, v.DetailErr)))
	case v.Detail.ReadmeText() != "":
		width := f.ReadmeWidth
		if width == 0 {
			width = min(terminalWidth(constants.ReadmeWrapWidth), constants.ReadmeWrapWidth)
		}
		fmt.Fprint(w, RenderMarkdown(v.Detail.ReadmeText(), width, f.Color))
	default:
		fmt.Fprintln(w, faint(NoReadme))
	}
	return nil
}

func (f *TableFormatter) contributions(v *service.RepositoryView, w io.Writer) {
	faint := f.paint(color.Faint)
	if v.ContributionsErr != nil || v.Contributions == nil {
		fmt.Fprintln(w, faint(NoContributions))
		return
	}

	s := v.Contributions.ContributionStats
	fmt.Fprintf(w, "%d commits · %d PRs · %d issues\n", s.Commits, s.PullRequests, s.Issues)

	ai := v.Contributions.AIAnalysis
	if ai.ImpactLevel != "" {
		fmt.Fprintf(w, "Impact Level: %s\n", f.impact(ai))
	}
	if ai.RoleSummary != "" {
		fmt.Fprintf(w, "Role Summary: %s\n", ai.RoleSummary)
	}
	if len(ai.KeyContributions) > 0 {
		fmt.Fprintln(w, "Key Contributions:")
		for _, c := range ai.KeyContributions {
			fmt.Fprintf(w, "  ✓ %s\n", c)
		}
	}
	if len(ai.SkillsDemonstrated) > 0 {
		fmt.Fprintf(w, "Skills Demonstrated: %s\n", strings.Join(ai.SkillsDemonstrated, ", "))
	}
}

func (f *TableFormatter) impact(ai model.AIAnalysis) string {
	switch ai.Impact() {
	case model.ImpactHigh:
		return f.paint(color.FgGreen, color.Bold)(ai.ImpactLevel)
	case model.ImpactMedium:
		return f.paint(color.FgYellow, color.Bold)(ai.ImpactLevel)
	default:
		return f.paint(color.Faint)(ai.ImpactLevel)
	}
}

func (f *TableFormatter) details(d *model.RepositoryDetail, w io.Writer) {
	heading := f.paint(color.FgCyan, color.Bold)

	var lines []string
	if langs := d.LanguageNames(); len(langs) > 0 {
		lines = append(lines, "Languages: "+strings.Join(langs, ", "))
	}
	if topics := d.TopicNames(); len(topics) > 0 {
		lines = append(lines, "Topics: "+strings.Join(topics, ", "))
	}
	if d.Watchers != nil {
		lines = append(lines, "Watchers: "+format.Count(d.Watchers.Count()))
	}
	if b := d.DefaultBranch(); b != "" {
		lines = append(lines, "Default branch: "+b)
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", heading("Details"))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// Calendar prints the heatmap with its busiest day.
func (f *TableFormatter) Calendar(r CalendarReport, w io.Writer) error {
	fmt.Fprintf(w, "%s\n\n", f.paint(color.Bold)(fmt.Sprintf("%s · %d", r.Username, r.Year)))
	fmt.Fprint(w, RenderHeatmap(r.Derived, r.Year, f.Color))

	if c, ok := r.Derived.Busiest(); ok {
		fmt.Fprintf(w, "Busiest day: %s (%s) · %s\n",
			c.FormatDate(),
			format.Plural(c.Count, "contribution", "contributions"),
			format.Plural(r.Derived.ActiveDays(), "active day", "active days"))
	}
	if len(r.Years) > 1 {
		fmt.Fprintf(w, "Available years: %d-%d\n", r.Years[len(r.Years)-1], r.Years[0])
	}
	return nil
}
