// Package cache stores GitHub profiles and contribution calendars on disk
// so repeated runs stay within the API rate limit.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
)

// Ensure Cache implements the contribution source's cache.
var _ contrib.Cache = (*Cache)(nil)

// Cache is a directory of JSON entries, one file per kind and user.
type Cache struct {
	dir        string
	ttl        time.Duration
	profileTTL time.Duration
	now        func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithDir overrides the cache directory.
func WithDir(dir string) Option {
	return func(c *Cache) {
		c.dir = dir
	}
}

// WithTTL sets how long calendars stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// DefaultDir returns the user cache directory for folio.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folio"), nil
}

// NewCache creates a new cache instance
func NewCache(opts ...Option) (*Cache, error) {
	c := &Cache{
		ttl:        constants.DefaultCacheTTL,
		profileTTL: constants.ProfileCacheTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		c.dir = dir
	}
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(kind Kind, login string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.json", kind, strings.ToLower(login)))
}

func (c *Cache) ttlFor(kind Kind) time.Duration {
	if kind == KindProfile {
		return c.profileTTL
	}
	return c.ttl
}

func (c *Cache) fresh(kind Kind, version int, cachedAt time.Time) bool {
	if version != Version {
		log.Debug("cache version mismatch", "kind", kind, "cached", version, "current", Version)
		return false
	}
	return c.now().Sub(cachedAt) <= c.ttlFor(kind)
}

func (c *Cache) read(kind Kind, login string, v any) bool {
	if login == "" {
		return false
	}
	data, err := os.ReadFile(c.path(kind, login))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *Cache) write(kind Kind, login string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(kind, login), data, 0600)
}

// GetCalendar returns a cached calendar that is still within its TTL.
func (c *Cache) GetCalendar(login string) (model.ContributionCalendar, bool) {
	var entry CalendarEntry
	if !c.read(KindCalendar, login, &entry) || !c.fresh(KindCalendar, entry.Version, entry.CachedAt) {
		return model.ContributionCalendar{}, false
	}
	return entry.Calendar, true
}

// SetCalendar caches a calendar fetched from GitHub.
func (c *Cache) SetCalendar(login string, cal model.ContributionCalendar) error {
	if login == "" {
		return nil
	}
	return c.write(KindCalendar, login, CalendarEntry{
		Login:    login,
		Calendar: cal,
		CachedAt: c.now(),
		Version:  Version,
	})
}

// GetProfile returns a cached profile that is still within its TTL.
func (c *Cache) GetProfile(login string) (model.Profile, bool) {
	var entry ProfileEntry
	if !c.read(KindProfile, login, &entry) || !c.fresh(KindProfile, entry.Version, entry.CachedAt) {
		return model.Profile{}, false
	}
	return entry.Profile, true
}

// SetProfile caches a validated profile.
func (c *Cache) SetProfile(login string, p model.Profile) error {
	if login == "" {
		return nil
	}
	return c.write(KindProfile, login, ProfileEntry{
		Profile:  p,
		CachedAt: c.now(),
		Version:  Version,
	})
}

// Clear removes all cached entries
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Totals sums the entries of every kind.
func (s *CacheStats) Totals() (total, valid int) {
	for _, ks := range s.Kinds {
		total += ks.Total
		valid += ks.Valid
	}
	return total, valid
}

// DetailedStats returns cache statistics broken down by kind
func (c *Cache) DetailedStats() (*CacheStats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	stats := &CacheStats{Kinds: make(map[Kind]KindStat)}
	for _, k := range AllKinds() {
		stats.Kinds[k] = KindStat{}
	}

	for _, entry := range entries {
		name := entry.Name()
		var kind Kind
		for _, k := range AllKinds() {
			if strings.HasPrefix(name, string(k)+"_") {
				kind = k
				break
			}
		}
		if kind == "" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			continue
		}
		var header struct {
			CachedAt time.Time `json:"cachedAt"`
			Version  int       `json:"version"`
		}
		if err := json.Unmarshal(data, &header); err != nil {
			continue
		}

		ks := stats.Kinds[kind]
		ks.Total++
		if c.fresh(kind, header.Version, header.CachedAt) {
			ks.Valid++
		}
		stats.Kinds[kind] = ks
	}

	return stats, nil
}
