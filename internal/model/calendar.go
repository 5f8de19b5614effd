package model

import "time"

// DateLayout is the layout of Day.Date as served by the analysis backend.
const DateLayout = "2006-01-02"

// ContributionCalendar is one year of daily contribution counts for a user,
// organized into week columns.
type ContributionCalendar struct {
	TotalContributions int    `json:"totalContributions"`
	AccountCreatedYear int    `json:"accountCreatedYear"`
	Weeks              []Week `json:"weeks"`
}

// Week is a single calendar week column. The first and last weeks of a year
// may hold fewer than seven days.
type Week struct {
	ContributionDays []Day `json:"contributionDays"`
}

// Day is the contribution count for a single calendar date.
type Day struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

// Time parses the day's date. The zero time is returned for malformed dates.
func (d Day) Time() time.Time {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DayCount returns the number of days across all weeks.
func (c *ContributionCalendar) DayCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, w := range c.Weeks {
		n += len(w.ContributionDays)
	}
	return n
}

// AvailableYears lists the selectable years from currentYear back to the
// account creation year, newest first. A missing or future creation year
// yields just the current year.
func AvailableYears(accountCreatedYear, currentYear int) []int {
	if accountCreatedYear <= 0 || accountCreatedYear > currentYear {
		return []int{currentYear}
	}
	years := make([]int, 0, currentYear-accountCreatedYear+1)
	for y := currentYear; y >= accountCreatedYear; y-- {
		years = append(years, y)
	}
	return years
}
