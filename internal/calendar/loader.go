package calendar

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/model"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves one year of contribution data from the backend.
type Fetcher interface {
	ContributionCalendar(ctx context.Context, username string, year int) (*model.ContributionCalendar, error)
}

// Loader serves calendars from a YearCache and fetches on a miss. At most one
// request per key is in flight; concurrent loads of the same key share it.
type Loader struct {
	fetcher Fetcher
	cache   *YearCache
	group   singleflight.Group

	hits    atomic.Int64
	misses  atomic.Int64
	fetches atomic.Int64
}

// LoaderStats counts loader activity.
type LoaderStats struct {
	Hits    int64
	Misses  int64
	Fetches int64
}

// NewLoader creates a Loader. A nil cache gets a fresh one.
func NewLoader(fetcher Fetcher, cache *YearCache) *Loader {
	if cache == nil {
		cache = NewYearCache()
	}
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
	}
}

// Cache returns the loader's cache.
func (l *Loader) Cache() *YearCache {
	return l.cache
}

// Cached returns the calendar if it is already cached, without any I/O.
func (l *Loader) Cached(username string, year int) (*model.ContributionCalendar, bool) {
	return l.cache.Get(username, year)
}

// Load returns the calendar for username and year. The returned bool is true
// when the data came from the cache. Successful fetches are cached even if
// the caller has since lost interest; failures are not cached or retried.
func (l *Loader) Load(ctx context.Context, username string, year int) (*model.ContributionCalendar, bool, error) {
	if data, ok := l.cache.Get(username, year); ok {
		l.hits.Add(1)
		log.Debug("calendar cache hit", "username", username, "year", year)
		return data, true, nil
	}
	l.misses.Add(1)

	key := Key{Username: username, Year: year}
	ch := l.group.DoChan(key.String(), func() (any, error) {
		// Another caller may have filled the cache between our miss and
		// joining the flight.
		if data, ok := l.cache.Get(username, year); ok {
			return data, nil
		}
		l.fetches.Add(1)
		log.Debug("fetching calendar", "username", username, "year", year)

		// The shared fetch outlives any single caller so a late response
		// still lands in the cache.
		data, err := l.fetcher.ContributionCalendar(context.WithoutCancel(ctx), username, year)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("empty calendar response for %s", key)
		}
		l.cache.Put(username, year, data)
		log.Info("cached calendar", "username", username, "year", year, "total", data.TotalContributions)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Shared {
			log.Trace("joined in-flight calendar request", "key", key.String())
		}
		if res.Err != nil {
			return nil, false, fmt.Errorf("failed to load contribution calendar for %s: %w", key, res.Err)
		}
		// Prefer the cached value so every caller sees the first-stored dataset.
		if data, ok := l.cache.Get(username, year); ok {
			return data, false, nil
		}
		return res.Val.(*model.ContributionCalendar), false, nil
	}
}

// Stats returns a snapshot of loader counters.
func (l *Loader) Stats() LoaderStats {
	return LoaderStats{
		Hits:    l.hits.Load(),
		Misses:  l.misses.Load(),
		Fetches: l.fetches.Load(),
	}
}
