package output

import (
	"strings"
	"testing"

	"github.com/spiffcs/ghlens/internal/calendar"
	"github.com/spiffcs/ghlens/internal/format"
	"github.com/spiffcs/ghlens/internal/model"
)

func testCalendar() *model.ContributionCalendar {
	return &model.ContributionCalendar{
		TotalContributions: 13,
		AccountCreatedYear: 2020,
		Weeks: []model.Week{
			{ContributionDays: []model.Day{
				{Date: "2023-01-01", ContributionCount: 0},
				{Date: "2023-01-02", ContributionCount: 4},
			}},
			{ContributionDays: []model.Day{
				{Date: "2023-01-08", ContributionCount: 8},
			}},
			{ContributionDays: []model.Day{
				{Date: "2023-02-05", ContributionCount: 1},
			}},
		},
	}
}

func TestRenderHeatmapPlain(t *testing.T) {
	out := RenderHeatmap(calendar.Derive(testCalendar()), 2023, false)
	lines := strings.Split(out, "\n")

	want := []string{
		"    Jan Feb",
		"Sun · █ ▒ ",
		"    █     ",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(out, "Less · ░ ▒ ▓ █ More") {
		t.Errorf("missing legend in\n%s", out)
	}
	if !strings.Contains(out, "13 contributions in 2023") {
		t.Errorf("missing total line in\n%s", out)
	}
	if len(lines) != 11 {
		t.Errorf("expected month row, 7 day rows, legend, total and trailing newline; got %d lines", len(lines))
	}
}

func TestRenderHeatmapColoredKeepsLayout(t *testing.T) {
	out := RenderHeatmap(calendar.Derive(testCalendar()), 2023, true)
	lines := strings.Split(out, "\n")
	if got := format.StripAnsi(lines[1]); got != "Sun ■ ■ ■ " {
		t.Errorf("colored row = %q", got)
	}
}

func TestMonthLabelRowShiftsOverlaps(t *testing.T) {
	d := calendar.Derived{
		Weeks: 6,
		MonthLabels: []calendar.MonthLabel{
			{Month: "Jan", WeekIndex: 0},
			{Month: "Feb", WeekIndex: 1},
			{Month: "Mar", WeekIndex: 3},
		},
	}
	if got := monthLabelRow(d); got != "    Jan Feb Mar" {
		t.Errorf("monthLabelRow() = %q", got)
	}
}

func TestMonthLabelInLastWeek(t *testing.T) {
	cal := &model.ContributionCalendar{
		Weeks: []model.Week{
			{ContributionDays: []model.Day{{Date: "2026-10-25", ContributionCount: 1}}},
			{ContributionDays: []model.Day{{Date: "2026-11-01", ContributionCount: 2}}},
		},
	}
	d := calendar.Derive(cal)
	if got := monthLabelRow(d); got != "    Oct Nov" {
		t.Errorf("monthLabelRow() = %q, want %q", got, "    Oct Nov")
	}
}

func TestRenderHeatmapEmpty(t *testing.T) {
	out := RenderHeatmap(calendar.Derive(nil), 2024, false)
	if !strings.Contains(out, "0 contributions in 2024") {
		t.Errorf("unexpected output\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
