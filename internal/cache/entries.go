package cache

import (
	"time"

	"github.com/spiffcs/folio/internal/model"
)

// Version should be incremented when the cache format changes to invalidate
// old entries.
const Version = 1

// Kind identifies what a cache entry holds.
type Kind string

const (
	KindCalendar Kind = "calendar"
	KindProfile  Kind = "profile"
)

// AllKinds returns every entry kind.
func AllKinds() []Kind {
	return []Kind{KindCalendar, KindProfile}
}

// CalendarEntry is a cached contribution calendar.
type CalendarEntry struct {
	Login    string                     `json:"login"`
	Calendar model.ContributionCalendar `json:"calendar"`
	CachedAt time.Time                  `json:"cachedAt"`
	Version  int                        `json:"version"`
}

// ProfileEntry is a cached public profile.
type ProfileEntry struct {
	Profile  model.Profile `json:"profile"`
	CachedAt time.Time     `json:"cachedAt"`
	Version  int           `json:"version"`
}

// KindStat counts the entries of one kind.
type KindStat struct {
	Total int
	Valid int
}

// CacheStats contains cache statistics by kind.
type CacheStats struct {
	Kinds map[Kind]KindStat
}
