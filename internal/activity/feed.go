package activity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/observability"
)

// EventsFetcher lists a user's public events, one page at a time.
type EventsFetcher interface {
	Events(ctx context.Context, username string, page, perPage int) ([]model.RawEvent, error)
}

// Page is one loaded page of the timeline.
type Page struct {
	Number int                   `json:"page"`
	Events []model.ActivityEvent `json:"activities"`
	Origin model.Origin          `json:"source"`
}

// Feed creates per-view activity streams.
type Feed struct {
	client  EventsFetcher
	synth   *Synthetic
	perPage int
}

// NewFeed returns a feed backed by client. A nil client serves synthetic
// pages only; a nil synth uses the default generator.
func NewFeed(client EventsFetcher, synth *Synthetic) *Feed {
	if synth == nil {
		synth = NewSynthetic()
	}
	return &Feed{client: client, synth: synth, perPage: constants.EventsPerPage}
}

// Stream is the page source for one timeline. Once it falls back to
// synthetic data it stays there, so a timeline never mixes real and
// generated events.
type Stream struct {
	feed     *Feed
	username string

	mu        sync.Mutex
	synthetic bool
}

// Stream starts a page source for username.
func (f *Feed) Stream(username string) *Stream {
	username = strings.TrimSpace(username)
	return &Stream{
		feed:      f,
		username:  username,
		synthetic: f.client == nil || username == "",
	}
}

// Origin reports where the stream currently gets its data.
func (s *Stream) Origin() model.Origin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synthetic {
		return model.OriginSynthetic
	}
	return model.OriginGitHub
}

// Load fetches page. GitHub failures are absorbed by switching to
// synthetic data; only context cancellation is returned as an error.
func (s *Stream) Load(ctx context.Context, page int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if s.Origin() == model.OriginGitHub {
		raw, err := s.feed.client.Events(ctx, s.username, page, s.feed.perPage)
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return Page{}, err
		case err != nil:
			s.fallback("error", err)
		default:
			events := Normalize(raw)
			if len(events) > 0 || page > 1 {
				observability.RecordActivityPage(string(model.OriginGitHub))
				return Page{Number: page, Events: events, Origin: model.OriginGitHub}, nil
			}
			s.fallback("reason", "no public push or pull request events")
		}
	}
	observability.RecordActivityPage(string(model.OriginSynthetic))
	return Page{Number: page, Events: s.feed.synth.Page(s.username, page), Origin: model.OriginSynthetic}, nil
}

func (s *Stream) fallback(key string, value any) {
	s.mu.Lock()
	s.synthetic = true
	s.mu.Unlock()
	log.Warn("activity unavailable, using simulated timeline", "user", s.username, key, value)
}
