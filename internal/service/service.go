// Package service assembles the portfolio views from the contribution source
// and the activity feed.
package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
)

// CalendarSource resolves contribution calendars.
type CalendarSource interface {
	Calendar(ctx context.Context, login string) contrib.Result
}

// Portfolio loads the calendar and timeline of a profile.
type Portfolio struct {
	source CalendarSource
	feed   *activity.Feed

	onCalendar func(contrib.Result)
	onPage     func(activity.Page)
}

// Option configures a Portfolio.
type Option func(*Portfolio)

// WithCalendarHook is called once the calendar is resolved.
func WithCalendarHook(fn func(contrib.Result)) Option {
	return func(p *Portfolio) {
		p.onCalendar = fn
	}
}

// WithPageHook is called after every activity page loads.
func WithPageHook(fn func(activity.Page)) Option {
	return func(p *Portfolio) {
		p.onPage = fn
	}
}

// New creates a Portfolio.
func New(source CalendarSource, feed *activity.Feed, opts ...Option) *Portfolio {
	if feed == nil {
		feed = activity.NewFeed(nil, nil)
	}
	p := &Portfolio{source: source, feed: feed}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Calendar resolves the calendar of login.
func (p *Portfolio) Calendar(ctx context.Context, login string) contrib.Result {
	res := p.source.Calendar(ctx, login)
	if p.onCalendar != nil {
		p.onCalendar(res)
	}
	return res
}

// Stream starts a timeline page source for login.
func (p *Portfolio) Stream(login string) *activity.Stream {
	return p.feed.Stream(login)
}

// Timeline is a loaded run of activity pages.
type Timeline struct {
	Username   string                      `json:"username"`
	Events     []model.ActivityEvent       `json:"activities"`
	Origin     model.Origin                `json:"source"`
	Pagination model.ScrollPaginationState `json:"pagination"`
}

// Overview is everything shown on a profile page.
type Overview struct {
	Username string
	Calendar contrib.Result
	Timeline Timeline
}

// Overview loads the calendar and the first activity pages concurrently.
// Data source failures are absorbed by the fallbacks; only context errors
// are returned.
func (p *Portfolio) Overview(ctx context.Context, login string, pages int) (*Overview, error) {
	login = strings.TrimSpace(login)
	out := &Overview{Username: login}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Calendar = p.Calendar(gctx, login)
		return gctx.Err()
	})

	g.Go(func() error {
		tl, err := p.Timeline(gctx, login, pages)
		if err != nil {
			return err
		}
		out.Timeline = tl
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("loaded portfolio", "user", login,
		"calendar", out.Calendar.Origin, "activity", out.Timeline.Origin,
		"events", len(out.Timeline.Events))
	return out, nil
}

// Timeline loads up to pages pages of activity through a scroll controller,
// so the pagination ceiling and exhaustion rules of the interactive view
// apply here too.
func (p *Portfolio) Timeline(ctx context.Context, login string, pages int) (Timeline, error) {
	login = strings.TrimSpace(login)
	pages = max(pages, 1)

	stream := p.feed.Stream(login)
	scroll := activity.NewScroll()

	first, err := stream.Load(ctx, 1)
	if err != nil {
		return Timeline{}, err
	}
	p.pageLoaded(first)
	events := first.Events
	if len(events) == 0 {
		scroll.Exhaust()
	}

	for loaded := 1; loaded < pages; loaded++ {
		n, ok := scroll.Begin()
		if !ok {
			break
		}
		page, err := stream.Load(ctx, n)
		if err != nil {
			scroll.Finish(n, nil, err)
			return Timeline{}, err
		}
		p.pageLoaded(page)
		events = append(events, scroll.Finish(n, page.Events, nil)...)
	}

	return Timeline{
		Username:   login,
		Events:     events,
		Origin:     stream.Origin(),
		Pagination: scroll.State(),
	}, nil
}

// Page loads page n on a fresh stream, the way a stateless client asks for
// it. Pages past the ceiling come back empty with no more data.
func (p *Portfolio) Page(ctx context.Context, login string, n int) (Timeline, error) {
	login = strings.TrimSpace(login)
	stream := p.feed.Stream(login)
	tl := Timeline{
		Username:   login,
		Events:     []model.ActivityEvent{},
		Origin:     stream.Origin(),
		Pagination: model.ScrollPaginationState{CurrentPage: n},
	}
	if n > constants.MaxActivityPages {
		return tl, nil
	}

	page, err := stream.Load(ctx, n)
	if err != nil {
		return Timeline{}, err
	}
	p.pageLoaded(page)
	if len(page.Events) > 0 {
		tl.Events = page.Events
	}
	tl.Origin = page.Origin
	tl.Pagination.HasMoreData = len(page.Events) > 0 && n < constants.MaxActivityPages
	return tl, nil
}

func (p *Portfolio) pageLoaded(page activity.Page) {
	if p.onPage != nil {
		p.onPage(page)
	}
}
