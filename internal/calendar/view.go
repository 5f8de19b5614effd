package calendar

import (
	"github.com/spiffcs/ghlens/internal/model"
)

// Request identifies a fetch started by View.Select.
type Request struct {
	Key Key
	Seq uint64
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Data *model.ContributionCalendar
	Err  error
}

// View is the selection state of an interactive calendar. The latest
// selection decides what is displayed; every successful response is cached
// regardless of whether it is still wanted.
type View struct {
	username    string
	cache       *YearCache
	currentYear int

	selected int
	loading  bool
	err      error
	data     *model.ContributionCalendar
	years    []int

	seq      uint64
	inFlight map[Key]bool
}

// NewView creates a view for username that starts on currentYear. The cache
// is shared with whatever performs the fetches.
func NewView(username string, cache *YearCache, currentYear int) *View {
	if cache == nil {
		cache = NewYearCache()
	}
	return &View{
		username:    username,
		cache:       cache,
		currentYear: currentYear,
		selected:    currentYear,
		inFlight:    make(map[Key]bool),
	}
}

// Select makes year the current selection. When the year is cached it is
// displayed immediately and no request is returned. When a request for the
// year is already outstanding the view waits for it instead of issuing a
// second one.
func (v *View) Select(year int) (Request, bool) {
	v.selected = year
	v.err = nil

	if data, ok := v.cache.Get(v.username, year); ok {
		v.show(data)
		return Request{}, false
	}

	key := v.key()
	v.loading = true
	if v.inFlight[key] {
		return Request{}, false
	}
	v.inFlight[key] = true
	v.seq++
	return Request{Key: key, Seq: v.seq}, true
}

// Resolve applies a finished request. It reports whether the result changed
// what is displayed; stale results are cached but not shown.
func (v *View) Resolve(res Result) bool {
	delete(v.inFlight, res.Key)

	if res.Err == nil && res.Data != nil {
		v.cache.Put(res.Key.Username, res.Key.Year, res.Data)
	}
	if res.Key != v.key() {
		return false
	}

	if res.Err != nil {
		v.loading = false
		v.err = res.Err
		return true
	}
	if data, ok := v.cache.Get(res.Key.Username, res.Key.Year); ok {
		v.show(data)
	}
	return true
}

func (v *View) show(data *model.ContributionCalendar) {
	v.data = data
	v.loading = false
	if len(v.years) == 0 && data.AccountCreatedYear > 0 {
		v.years = model.AvailableYears(data.AccountCreatedYear, v.currentYear)
	}
}

func (v *View) key() Key {
	return Key{Username: v.username, Year: v.selected}
}

// Username returns the profile being viewed.
func (v *View) Username() string { return v.username }

// Year returns the selected year.
func (v *View) Year() int { return v.selected }

// Loading reports whether the selected year is being fetched.
func (v *View) Loading() bool { return v.loading }

// Err returns the error of the last request for the selected year.
func (v *View) Err() error { return v.err }

// Data returns the displayed calendar. While a new year loads, the previous
// calendar stays available.
func (v *View) Data() *model.ContributionCalendar { return v.data }

// Years returns the selectable years, newest first. It is empty until a
// calendar reporting the account creation year has been displayed.
func (v *View) Years() []int { return v.years }

// Older returns the year before the selection among the selectable years.
func (v *View) Older() (int, bool) {
	return v.step(1)
}

// Newer returns the year after the selection among the selectable years.
func (v *View) Newer() (int, bool) {
	return v.step(-1)
}

func (v *View) step(delta int) (int, bool) {
	for i, y := range v.years {
		if y != v.selected {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(v.years) {
			return 0, false
		}
		return v.years[j], true
	}
	return 0, false
}
