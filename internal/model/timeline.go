package model

// TimelineEntry is a repository positioned in the creation timeline.
// ShowYear is set on the first repository of each creation year.
type TimelineEntry struct {
	Repository Repository `json:"repository"`
	Year       int        `json:"year"`
	ShowYear   bool       `json:"showYear"`
	Last       bool       `json:"last"`
}

// Timeline builds timeline entries from repositories already sorted newest
// first. A year heading is emitted whenever a repository's creation year
// differs from the previous repository's.
func Timeline(repos []Repository) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(repos))
	for i, r := range repos {
		year := r.CreatedAt.Year()
		entries = append(entries, TimelineEntry{
			Repository: r,
			Year:       year,
			ShowYear:   i == 0 || repos[i-1].CreatedAt.Year() != year,
			Last:       i == len(repos)-1,
		})
	}
	return entries
}
