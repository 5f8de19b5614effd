package calendar

import (
	"testing"

	"github.com/spiffcs/ghlens/internal/model"
)

func TestDeriverMemoizes(t *testing.T) {
	d := NewDeriver()
	cal := sampleCalendar()

	first := d.Derive(cal)
	second := d.Derive(cal)
	if d.Computations() != 1 {
		t.Errorf("Computations() = %d, want 1 for unchanged input", d.Computations())
	}
	if first.MaxCount != second.MaxCount || len(first.Cells) != len(second.Cells) {
		t.Error("memoized result differs from first computation")
	}

	// An equal but distinct dataset hashes the same.
	copyCal := sampleCalendar()
	d.Derive(copyCal)
	if d.Computations() != 1 {
		t.Errorf("Computations() = %d, want 1 for equal input", d.Computations())
	}

	changed := sampleCalendar()
	changed.Weeks[0].ContributionDays[0].ContributionCount = 7
	got := d.Derive(changed)
	if d.Computations() != 2 {
		t.Errorf("Computations() = %d, want 2 after change", d.Computations())
	}
	if got.Cells[0].Count != 7 {
		t.Errorf("recomputed cell count = %d, want 7", got.Cells[0].Count)
	}
}

func TestFingerprintWeekBoundaries(t *testing.T) {
	a := &model.ContributionCalendar{Weeks: []model.Week{
		{ContributionDays: []model.Day{{Date: "2023-01-01"}, {Date: "2023-01-02"}}},
	}}
	b := &model.ContributionCalendar{Weeks: []model.Week{
		{ContributionDays: []model.Day{{Date: "2023-01-01"}}},
		{ContributionDays: []model.Day{{Date: "2023-01-02"}}},
	}}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different week layouts should not share a fingerprint")
	}
	if Fingerprint(nil) != Fingerprint(nil) {
		t.Error("nil fingerprint should be stable")
	}
}
