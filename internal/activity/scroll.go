package activity

import (
	"sync"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
)

// ScrollState is the pagination state of a timeline.
type ScrollState int

const (
	ScrollIdle ScrollState = iota
	ScrollLoading
	ScrollExhausted
)

func (s ScrollState) String() string {
	switch s {
	case ScrollLoading:
		return "loading"
	case ScrollExhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// ScrollMetrics describes a scroll container, in pixels or lines.
type ScrollMetrics struct {
	Top          int
	ClientHeight int
	ScrollHeight int
}

// NearBottom reports whether the visible area is within threshold of the end.
func (m ScrollMetrics) NearBottom(threshold int) bool {
	return m.Top+m.ClientHeight >= m.ScrollHeight-threshold
}

// Scroll decides when a timeline should load its next page. At most one
// load is in flight; the page counter only advances on success.
type Scroll struct {
	Threshold int
	MaxPages  int

	mu       sync.Mutex
	page     int
	inflight int
	state    ScrollState
}

// NewScroll returns a controller positioned on page 1.
func NewScroll() *Scroll {
	return &Scroll{
		Threshold: constants.ScrollThreshold,
		MaxPages:  constants.MaxActivityPages,
		page:      1,
	}
}

// ShouldLoad reports whether a scroll to m warrants a new page.
func (s *Scroll) ShouldLoad(m ScrollMetrics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == ScrollIdle && m.NearBottom(s.Threshold)
}

// Begin claims the next page. It returns false while a load is running or
// once the timeline is exhausted. Claiming a page beyond MaxPages exhausts
// the timeline without loading anything.
func (s *Scroll) Begin() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ScrollIdle {
		return 0, false
	}
	next := s.page + 1
	if next > s.MaxPages {
		s.state = ScrollExhausted
		log.Debug("activity pagination exhausted", "page", next, "max", s.MaxPages)
		return 0, false
	}
	s.state = ScrollLoading
	s.inflight = next
	return next, true
}

// Trigger is ShouldLoad followed by Begin.
func (s *Scroll) Trigger(m ScrollMetrics) (int, bool) {
	if !s.ShouldLoad(m) {
		return 0, false
	}
	return s.Begin()
}

// Finish records the outcome of the load for page and returns the events to
// append. A failed load returns to idle so a later scroll can retry; an
// empty page exhausts the timeline. Results for a page that is not in
// flight are discarded.
func (s *Scroll) Finish(page int, events []model.ActivityEvent, err error) []model.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ScrollLoading || page != s.inflight {
		return nil
	}
	s.inflight = 0
	switch {
	case err != nil:
		log.Warn("failed to load activity page", "page", page, "error", err)
		s.state = ScrollIdle
		return nil
	case len(events) == 0 || page > s.MaxPages:
		s.state = ScrollExhausted
		return nil
	}
	s.page = page
	s.state = ScrollIdle
	return events
}

// Status returns the current state.
func (s *Scroll) Status() ScrollState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// State returns the pagination snapshot exposed to views and the API.
func (s *Scroll) State() model.ScrollPaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ScrollPaginationState{
		CurrentPage:   s.page,
		IsLoadingMore: s.state == ScrollLoading,
		HasMoreData:   s.state != ScrollExhausted,
	}
}

// Exhaust marks the timeline as complete, as when the first page is empty.
func (s *Scroll) Exhaust() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = 0
	s.state = ScrollExhausted
}

// Reset rewinds to page 1, dropping any in-flight load.
func (s *Scroll) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = 1
	s.inflight = 0
	s.state = ScrollIdle
}
