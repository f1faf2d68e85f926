package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/model"
)

type fakeSource struct {
	origin model.Origin
}

func (f fakeSource) Calendar(_ context.Context, _ string) contrib.Result {
	return contrib.Result{
		Calendar: model.ContributionCalendar{TotalContributions: 42},
		Origin:   f.origin,
	}
}

// emptyEvents has no public activity.
type emptyEvents struct{}

func (emptyEvents) Events(context.Context, string, int, int) ([]model.RawEvent, error) {
	return nil, nil
}

func TestOverview(t *testing.T) {
	var mu sync.Mutex
	var calendars, pages int
	p := New(fakeSource{origin: model.OriginGitHub}, activity.NewFeed(nil, nil),
		WithCalendarHook(func(contrib.Result) {
			mu.Lock()
			calendars++
			mu.Unlock()
		}),
		WithPageHook(func(activity.Page) {
			mu.Lock()
			pages++
			mu.Unlock()
		}),
	)

	ov, err := p.Overview(context.Background(), " octocat ", 2)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if ov.Username != "octocat" {
		t.Errorf("Username = %q", ov.Username)
	}
	if ov.Calendar.Origin != model.OriginGitHub || ov.Calendar.Calendar.TotalContributions != 42 {
		t.Errorf("Calendar = %+v", ov.Calendar)
	}
	if ov.Timeline.Origin != model.OriginSynthetic {
		t.Errorf("timeline origin = %s, want synthetic without a client", ov.Timeline.Origin)
	}
	if len(ov.Timeline.Events) != 16 {
		t.Errorf("events = %d, want two pages of 8", len(ov.Timeline.Events))
	}
	if st := ov.Timeline.Pagination; st.CurrentPage != 2 || !st.HasMoreData {
		t.Errorf("pagination = %+v", st)
	}
	if calendars != 1 || pages != 2 {
		t.Errorf("hooks called %d/%d times, want 1/2", calendars, pages)
	}
}

func TestTimelineCeiling(t *testing.T) {
	p := New(fakeSource{}, nil)
	tl, err := p.Timeline(context.Background(), "octocat", 50)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(tl.Events) != 80 {
		t.Errorf("events = %d, want 10 pages of 8", len(tl.Events))
	}
	if st := tl.Pagination; st.CurrentPage != 10 || st.HasMoreData {
		t.Errorf("pagination = %+v, want page 10 exhausted", st)
	}
}

func TestTimelineEmptyRealActivityFallsBack(t *testing.T) {
	p := New(fakeSource{}, activity.NewFeed(emptyEvents{}, nil))
	tl, err := p.Timeline(context.Background(), "octocat", 1)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if tl.Origin != model.OriginSynthetic || len(tl.Events) == 0 {
		t.Errorf("timeline = %s with %d events, want synthetic fallback", tl.Origin, len(tl.Events))
	}
}

func TestOverviewCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(fakeSource{origin: model.OriginSynthetic}, nil)
	if _, err := p.Overview(ctx, "octocat", 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Overview() error = %v, want context.Canceled", err)
	}
}

func TestPage(t *testing.T) {
	p := New(fakeSource{}, nil)
	tests := []struct {
		name    string
		page    int
		events  int
		hasMore bool
	}{
		{name: "first page", page: 1, events: 8, hasMore: true},
		{name: "last page", page: 10, events: 8, hasMore: false},
		{name: "past the ceiling", page: 11, events: 0, hasMore: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := p.Page(context.Background(), "octocat", tt.page)
			if err != nil {
				t.Fatalf("Page() error = %v", err)
			}
			if len(tl.Events) != tt.events {
				t.Errorf("events = %d, want %d", len(tl.Events), tt.events)
			}
			if tl.Pagination.CurrentPage != tt.page || tl.Pagination.HasMoreData != tt.hasMore {
				t.Errorf("pagination = %+v", tl.Pagination)
			}
			if tl.Origin != model.OriginSynthetic {
				t.Errorf("origin = %s", tl.Origin)
			}
		})
	}
}
