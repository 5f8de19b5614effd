package calendar

import (
	"time"

	"github.com/spiffcs/ghlens/internal/model"
)

// Bucket is one of five color-intensity tiers.
type Bucket int

const (
	BucketEmpty Bucket = iota
	BucketLow
	BucketMedium
	BucketHigh
	BucketMax
)

// NumBuckets is the number of color tiers.
const NumBuckets = 5

// Ramp maps each bucket to its color, from empty to brightest green.
var Ramp = [NumBuckets]string{
	"#161b22",
	"#0e4429",
	"#006d32",
	"#26a641",
	"#39d353",
}

// Color returns the ramp color for the bucket.
func (b Bucket) Color() string {
	if b < BucketEmpty || b > BucketMax {
		return Ramp[BucketEmpty]
	}
	return Ramp[b]
}

const (
	emptyBarHeight = 0.1
	minBarHeight   = 0.2
	barScale       = 0.3
)

// BarHeight scales a day's count linearly, with a floor that keeps non-zero
// days visibly taller than empty ones.
func BarHeight(count int) float64 {
	if count <= 0 {
		return emptyBarHeight
	}
	return max(float64(count)*barScale, minBarHeight)
}

// Intensity is count relative to half of maxCount, capped at 1. The
// denominator never drops below 1.
func Intensity(count, maxCount int) float64 {
	denom := max(float64(maxCount)*0.5, 1)
	return min(float64(count)/denom, 1)
}

// BucketFor assigns a count to a color tier relative to maxCount.
func BucketFor(count, maxCount int) Bucket {
	if count <= 0 {
		return BucketEmpty
	}
	switch i := Intensity(count, maxCount); {
	case i < 0.25:
		return BucketLow
	case i < 0.5:
		return BucketMedium
	case i < 0.75:
		return BucketHigh
	default:
		return BucketMax
	}
}

// MaxCount returns the largest daily count across all weeks, 0 when there
// are no contributions.
func MaxCount(weeks []model.Week) int {
	m := 0
	for _, w := range weeks {
		for _, d := range w.ContributionDays {
			if d.ContributionCount > m {
				m = d.ContributionCount
			}
		}
	}
	return m
}

// Cell is the renderable form of one day.
type Cell struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Week    int     `json:"week"`
	Weekday int     `json:"weekday"`
	Height  float64 `json:"height"`
	Bucket  Bucket  `json:"bucket"`
	Color   string  `json:"color"`
}

// Derived is everything needed to draw a calendar.
type Derived struct {
	TotalContributions int             `json:"totalContributions"`
	MaxCount           int             `json:"maxCount"`
	Weeks              int             `json:"weeks"`
	Cells              []Cell          `json:"cells"`
	MonthLabels        []MonthLabel    `json:"monthLabels"`
	BucketCounts       [NumBuckets]int `json:"bucketCounts"`
}

// Derive computes render parameters for every day. It is pure: the same
// weeks always produce the same output. Weeks with no days contribute no
// cells.
func Derive(cal *model.ContributionCalendar) Derived {
	if cal == nil {
		return Derived{}
	}
	maxCount := MaxCount(cal.Weeks)
	d := Derived{
		TotalContributions: cal.TotalContributions,
		MaxCount:           maxCount,
		Weeks:              len(cal.Weeks),
		Cells:              make([]Cell, 0, cal.DayCount()),
		MonthLabels:        MonthLabels(cal.Weeks),
	}

	for wi, w := range cal.Weeks {
		for di, day := range w.ContributionDays {
			b := BucketFor(day.ContributionCount, maxCount)
			d.BucketCounts[b]++
			d.Cells = append(d.Cells, Cell{
				Date:    day.Date,
				Count:   day.ContributionCount,
				Week:    wi,
				Weekday: weekdayOf(day, di),
				Height:  BarHeight(day.ContributionCount),
				Bucket:  b,
				Color:   b.Color(),
			})
		}
	}
	return d
}

// weekdayOf returns the row for a day. Partial first weeks start mid-week,
// so the date decides the row; the position is used only when the date
// cannot be parsed.
func weekdayOf(day model.Day, position int) int {
	t := day.Time()
	if t.IsZero() {
		return position % 7
	}
	return int(t.Weekday())
}

// Grid arranges cells into 7 weekday rows by week columns. Missing days are nil.
func (d Derived) Grid() [7][]*Cell {
	var grid [7][]*Cell
	for r := range grid {
		grid[r] = make([]*Cell, d.Weeks)
	}
	for i := range d.Cells {
		c := &d.Cells[i]
		if c.Weekday >= 0 && c.Weekday < 7 && c.Week < d.Weeks {
			grid[c.Weekday][c.Week] = c
		}
	}
	return grid
}

// Busiest returns the cell with the highest count, the earliest on ties.
func (d Derived) Busiest() (Cell, bool) {
	var best Cell
	found := false
	for _, c := range d.Cells {
		if !found || c.Count > best.Count {
			best = c
			found = true
		}
	}
	return best, found && best.Count > 0
}

// ActiveDays counts days with at least one contribution.
func (d Derived) ActiveDays() int {
	return len(d.Cells) - d.BucketCounts[BucketEmpty]
}

// FormatDate renders a cell date like "Tue, Feb 14, 2023".
func (c Cell) FormatDate() string {
	t, err := time.Parse(model.DateLayout, c.Date)
	if err != nil {
		return c.Date
	}
	return t.Format("Mon, Jan 2, 2006")
}
