package calendar

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spiffcs/ghlens/internal/model"
)

// Deriver memoizes Derive for the most recent dataset. Redrawing an unchanged
// calendar reuses the previous result.
type Deriver struct {
	mu       sync.Mutex
	last     uint64
	hasLast  bool
	result   Derived
	computed int
}

// NewDeriver creates an empty Deriver.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive returns the derived data for cal, recomputing only when its
// fingerprint differs from the previous call.
func (d *Deriver) Derive(cal *model.ContributionCalendar) Derived {
	fp := Fingerprint(cal)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasLast && d.last == fp {
		return d.result
	}
	d.result = Derive(cal)
	d.last = fp
	d.hasLast = true
	d.computed++
	return d.result
}

// Computations returns how many times Derive actually ran.
func (d *Deriver) Computations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.computed
}

// Fingerprint hashes the fields that affect derived output.
func Fingerprint(cal *model.ContributionCalendar) uint64 {
	h := xxhash.New()
	if cal == nil {
		return h.Sum64()
	}
	var buf []byte
	buf = strconv.AppendInt(buf, int64(cal.TotalContributions), 10)
	_, _ = h.Write(buf)
	for _, w := range cal.Weeks {
		// week separator keeps [a][b] distinct from [a b]
		_, _ = h.Write([]byte{'|'})
		for _, day := range w.ContributionDays {
			buf = buf[:0]
			buf = append(buf, day.Date...)
			buf = append(buf, '=')
			buf = strconv.AppendInt(buf, int64(day.ContributionCount), 10)
			buf = append(buf, ';')
			_, _ = h.Write(buf)
		}
	}
	return h.Sum64()
}
