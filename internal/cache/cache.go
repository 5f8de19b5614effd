// Package cache persists slow AI analysis responses on disk so repeated
// repository views do not wait on the backend again.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/log"
	"github.com/spiffcs/ghlens/internal/model"
)

// Version should be incremented when an entry's format changes so old files
// are ignored.
const Version = 1

// Kind distinguishes the analysis endpoints sharing the cache directory.
type Kind string

const (
	KindAnalysis      Kind = "analysis"
	KindContributions Kind = "contributions"
)

// AllKinds returns every cached kind.
func AllKinds() []Kind {
	return []Kind{KindAnalysis, KindContributions}
}

// Key identifies one analysis of a repository for a user.
type Key struct {
	Owner    string
	Name     string
	Username string
}

// Cacher defines the interface for caching operations.
// This interface enables mocking the cache in unit tests.
type Cacher interface {
	GetAnalysis(key Key) (*model.Analysis, bool)
	SetAnalysis(key Key, a *model.Analysis) error
	GetContributions(key Key) (*model.ContributionAnalysis, bool)
	SetContributions(key Key, a *model.ContributionAnalysis) error
}

// Ensure Cache implements Cacher interface.
var _ Cacher = (*Cache)(nil)

// entry is the on-disk envelope of a cached response.
type entry[T any] struct {
	Data     T         `json:"data"`
	CachedAt time.Time `json:"cachedAt"`
	Version  int       `json:"version"`
}

// Cache stores analysis responses as JSON files in a directory.
type Cache struct {
	dir string
	ttl time.Duration
}

// DefaultDir returns the analysis cache directory under os.UserCacheDir.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CacheDirName, "analysis"), nil
}

// NewCache creates a cache in DefaultDir. A non-positive ttl selects
// constants.AnalysisCacheTTL.
func NewCache(ttl time.Duration) (*Cache, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewCacheAt(dir, ttl)
}

// NewCacheAt creates a cache rooted at dir.
func NewCacheAt(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = constants.AnalysisCacheTTL
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the directory holding the cache files.
func (c *Cache) Dir() string {
	return c.dir
}

// fileName generates a file name for a key.
func fileName(kind Kind, key Key) string {
	// Logins never contain underscores, so the "__" separators stay unambiguous.
	safe := func(s string) string {
		return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.ToLower(s))
	}
	return fmt.Sprintf("%s__%s__%s__%s.json", kind, safe(key.Owner), safe(key.Name), safe(key.Username))
}

func kindOf(name string) (Kind, bool) {
	for _, k := range AllKinds() {
		if strings.HasPrefix(name, string(k)+"__") {
			return k, true
		}
	}
	return "", false
}

func get[T any](c *Cache, kind Kind, key Key) (*T, bool) {
	name := fileName(kind, key)
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		return nil, false
	}

	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		log.Debug("unreadable cache entry", "file", name, "error", err)
		return nil, false
	}

	// Invalidate if cache version doesn't match (format/schema changed)
	if e.Version != Version {
		log.Debug("cache version mismatch", "cached", e.Version, "current", Version, "file", name)
		return nil, false
	}

	if time.Since(e.CachedAt) > c.ttl {
		return nil, false
	}

	log.Debug("analysis cache hit", "kind", kind, "repo", key.Owner+"/"+key.Name)
	return &e.Data, true
}

func set[T any](c *Cache, kind Kind, key Key, v *T) error {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(entry[T]{
		Data:     *v,
		CachedAt: time.Now(),
		Version:  Version,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(c.dir, fileName(kind, key)), data, 0600)
}

// GetAnalysis returns a fresh cached AI analysis.
func (c *Cache) GetAnalysis(key Key) (*model.Analysis, bool) {
	return get[model.Analysis](c, KindAnalysis, key)
}

// SetAnalysis stores an AI analysis.
func (c *Cache) SetAnalysis(key Key, a *model.Analysis) error {
	return set(c, KindAnalysis, key, a)
}

// GetContributions returns a fresh cached contribution analysis.
func (c *Cache) GetContributions(key Key) (*model.ContributionAnalysis, bool) {
	return get[model.ContributionAnalysis](c, KindContributions, key)
}

// SetContributions stores a contribution analysis.
func (c *Cache) SetContributions(key Key, a *model.ContributionAnalysis) error {
	return set(c, KindContributions, key, a)
}

// Clear removes all cached entries
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Prune removes entries cached before cutoff, plus unreadable files and
// entries from an older cache version. It returns the number removed.
func (c *Cache) Prune(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, de := range entries {
		path := filepath.Join(c.dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var e entry[json.RawMessage]
		stale := json.Unmarshal(data, &e) != nil || e.Version != Version || e.CachedAt.Before(cutoff)
		if !stale {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, err
		}
		removed++
	}

	log.Debug("pruned analysis cache", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	return removed, nil
}

// KindStat counts the entries of one kind.
type KindStat struct {
	Total int
	Valid int
}

// Stats contains detailed cache statistics.
type Stats struct {
	Dir   string
	Kinds map[Kind]KindStat
	Bytes int64
}

// Total sums entries over all kinds.
func (s *Stats) Total() (total, valid int) {
	for _, ks := range s.Kinds {
		total += ks.Total
		valid += ks.Valid
	}
	return total, valid
}

// DetailedStats returns cache statistics broken down by kind.
func (c *Cache) DetailedStats() (*Stats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Dir: c.dir, Kinds: make(map[Kind]KindStat)}
	for _, k := range AllKinds() {
		stats.Kinds[k] = KindStat{}
	}

	now := time.Now()
	for _, de := range entries {
		kind, ok := kindOf(de.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, de.Name()))
		if err != nil {
			continue
		}
		stats.Bytes += int64(len(data))

		ks := stats.Kinds[kind]
		ks.Total++
		var e entry[json.RawMessage]
		if err := json.Unmarshal(data, &e); err == nil && e.Version == Version && now.Sub(e.CachedAt) <= c.ttl {
			ks.Valid++
		}
		stats.Kinds[kind] = ks
	}

	return stats, nil
}
