// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout the folio application.
package constants

import "time"

// Calendar layout constants
const (
	// CalendarWeeks is the number of week columns kept for display.
	CalendarWeeks = 52

	// GenerationWeeks is the size of the generation window before trimming.
	GenerationWeeks = 53

	// WeekWidth is the horizontal pitch of one week column in pixels.
	WeekWidth = 12

	// MinLabelDistance is the minimum gap, in weeks, between month labels.
	MinLabelDistance = 2
)

// Reveal animation constants
const (
	// RevealChunk is the number of weeks revealed per tick.
	RevealChunk = 4

	// RevealInterval is the delay between reveal ticks.
	RevealInterval = 60 * time.Millisecond
)

// Fallback generator constants
const (
	// ActivityThreshold is the random draw a day must exceed to have activity.
	ActivityThreshold = 0.7

	// WeekdayMultiplier scales activity probability Monday through Friday.
	WeekdayMultiplier = 1.2

	// WeekendMultiplier scales activity probability on Saturday and Sunday.
	WeekendMultiplier = 0.8

	// MaxDailyCount is the upper bound of a generated nonzero day count.
	MaxDailyCount = 10

	// MaxActivityProbability caps the per-day activity probability.
	MaxActivityProbability = 0.95
)

// Timeline constants
const (
	// ActivityPageSize is the number of entries per synthetic page.
	ActivityPageSize = 8

	// EventsPerPage is the page size requested from the GitHub events API.
	EventsPerPage = 50

	// MaxActivityPages is the pagination ceiling of the timeline.
	MaxActivityPages = 10

	// ScrollThreshold is the distance from the bottom, in lines or pixels,
	// at which the next page is requested.
	ScrollThreshold = 50

	// CommitProbability is the share of synthetic entries that are commits.
	CommitProbability = 0.7
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 10
)

// Network constants
const (
	// RequestTimeout bounds each GitHub API call.
	RequestTimeout = 30 * time.Second
)

// Cache TTL constants
const (
	// DefaultCacheTTL is the maximum age of cached GitHub responses.
	DefaultCacheTTL = 1 * time.Hour

	// ProfileCacheTTL is the maximum age of a cached public profile.
	// Profiles change rarely so they outlive calendar entries.
	ProfileCacheTTL = 24 * time.Hour
)

// Server constants
const (
	// DefaultServerAddress is the listen address of `folio serve`.
	DefaultServerAddress = ":8080"

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout = 10 * time.Second
)
