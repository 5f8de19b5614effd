package calendar

import (
	"time"

	"github.com/spiffcs/ghlens/internal/model"
)

// MonthLabel marks the first week column of a month.
type MonthLabel struct {
	Month     string `json:"month"`
	WeekIndex int    `json:"weekIndex"`
}

// DayLabels are the weekday row labels, Sunday first. Alternate rows are blank.
var DayLabels = [7]string{"Sun", "", "Tue", "", "Thu", "", "Sat"}

// MonthLabels emits a label for each week whose first day falls in a different
// month than the last emitted label. Empty weeks and unparsable dates are
// skipped without changing the last seen month.
func MonthLabels(weeks []model.Week) []MonthLabel {
	var labels []MonthLabel
	last := time.Month(0)
	for i, w := range weeks {
		if len(w.ContributionDays) == 0 {
			continue
		}
		t := w.ContributionDays[0].Time()
		if t.IsZero() {
			continue
		}
		if m := t.Month(); m != last {
			labels = append(labels, MonthLabel{Month: m.String()[:3], WeekIndex: i})
			last = m
		}
	}
	return labels
}
