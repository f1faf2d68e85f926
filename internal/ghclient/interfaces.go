// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	gh "github.com/google/go-github/v57/github"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/model"
)

// ProfileFetcher reads public user profiles.
type ProfileFetcher interface {
	Profile(ctx context.Context, login string) (model.RawProfile, error)
}

// ContributionsFetcher reads contribution calendars.
type ContributionsFetcher interface {
	Authenticated() bool
	Contributions(ctx context.Context, login string) (model.RawCalendar, error)
}

// EventsFetcher reads public event pages.
type EventsFetcher interface {
	Events(ctx context.Context, login string, page, perPage int) ([]model.RawEvent, error)
}

// GitHub is everything folio reads from GitHub.
type GitHub interface {
	ProfileFetcher
	ContributionsFetcher
	EventsFetcher
	RateLimits(ctx context.Context) (*gh.RateLimits, error)
}

// Ensure Client implements GitHub.
var _ GitHub = (*Client)(nil)

// Ensure Client satisfies the consumers' views of it.
var (
	_ contrib.GitHub         = (*Client)(nil)
	_ activity.EventsFetcher = (*Client)(nil)
)
