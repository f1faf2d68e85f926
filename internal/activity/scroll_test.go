package activity

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/spiffcs/folio/internal/model"
)

var bottom = ScrollMetrics{Top: 460, ClientHeight: 500, ScrollHeight: 1000}

func onePage() []model.ActivityEvent {
	return []model.ActivityEvent{{ID: "x"}}
}

func TestScrollTriggersOnceWhileLoading(t *testing.T) {
	s := NewScroll()
	st := s.State()
	if !st.HasMoreData || st.IsLoadingMore || st.CurrentPage != 1 {
		t.Fatalf("initial state = %+v", st)
	}

	page, ok := s.Trigger(bottom)
	if !ok || page != 2 {
		t.Fatalf("Trigger() = %d, %v; want 2, true", page, ok)
	}
	if !s.State().IsLoadingMore {
		t.Error("expected IsLoadingMore after trigger")
	}
	for i := 0; i < 5; i++ {
		if _, ok := s.Trigger(bottom); ok {
			t.Fatal("scroll while loading should not start another load")
		}
	}
}

func TestScrollThreshold(t *testing.T) {
	tests := []struct {
		name string
		m    ScrollMetrics
		want bool
	}{
		{"exactly at threshold", ScrollMetrics{Top: 450, ClientHeight: 500, ScrollHeight: 1000}, true},
		{"one short of threshold", ScrollMetrics{Top: 449, ClientHeight: 500, ScrollHeight: 1000}, false},
		{"at top", ScrollMetrics{Top: 0, ClientHeight: 500, ScrollHeight: 1000}, false},
		{"content shorter than view", ScrollMetrics{Top: 0, ClientHeight: 500, ScrollHeight: 200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewScroll().ShouldLoad(tt.m); got != tt.want {
				t.Errorf("ShouldLoad(%+v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestScrollFailureRetries(t *testing.T) {
	s := NewScroll()
	page, _ := s.Begin()
	if got := s.Finish(page, nil, errors.New("boom")); got != nil {
		t.Errorf("failed load returned %v", got)
	}
	st := s.State()
	if st.IsLoadingMore || !st.HasMoreData || st.CurrentPage != 1 {
		t.Errorf("state after failure = %+v", st)
	}
	if retry, ok := s.Begin(); !ok || retry != page {
		t.Errorf("retry Begin() = %d, %v; want %d, true", retry, ok, page)
	}
}

func TestScrollEmptyPageExhausts(t *testing.T) {
	s := NewScroll()
	page, _ := s.Begin()
	s.Finish(page, nil, nil)
	if s.Status() != ScrollExhausted || s.State().HasMoreData {
		t.Errorf("status = %s, want exhausted", s.Status())
	}
	if _, ok := s.Trigger(bottom); ok {
		t.Error("exhausted controller should not trigger")
	}
}

func TestScrollExhaust(t *testing.T) {
	s := NewScroll()
	page, _ := s.Begin()
	s.Exhaust()
	if st := s.State(); st.HasMoreData || st.IsLoadingMore {
		t.Errorf("state after Exhaust = %+v", st)
	}
	if got := s.Finish(page, onePage(), nil); got != nil {
		t.Error("finish after Exhaust should be ignored")
	}
}

func TestScrollCeiling(t *testing.T) {
	s := NewScroll()
	loads := 0
	for i := 0; i < 100; i++ {
		page, ok := s.Trigger(bottom)
		if !ok {
			continue
		}
		loads++
		s.Finish(page, onePage(), nil)
	}
	if loads != 9 {
		t.Errorf("loaded %d pages after page 1, want 9", loads)
	}
	st := s.State()
	if st.HasMoreData {
		t.Error("page 11 should exhaust the timeline even though data remains")
	}
	if st.CurrentPage != 10 {
		t.Errorf("CurrentPage = %d, want 10", st.CurrentPage)
	}
}

func TestScrollStaleFinishIgnored(t *testing.T) {
	s := NewScroll()
	page, _ := s.Begin()
	if got := s.Finish(page+1, onePage(), nil); got != nil {
		t.Error("finish for a page not in flight should be ignored")
	}
	s.Reset()
	if got := s.Finish(page, onePage(), nil); got != nil {
		t.Error("finish after reset should be ignored")
	}
	if st := s.State(); st.CurrentPage != 1 || st.IsLoadingMore {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestScrollConcurrentTriggers(t *testing.T) {
	s := NewScroll()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inflight int
		maxSeen  int
		loads    int
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				page, ok := s.Trigger(bottom)
				if !ok {
					continue
				}
				mu.Lock()
				inflight++
				loads++
				if inflight > maxSeen {
					maxSeen = inflight
				}
				mu.Unlock()
				runtime.Gosched()
				mu.Lock()
				inflight--
				mu.Unlock()
				s.Finish(page, onePage(), nil)
			}
		}()
	}
	wg.Wait()

	if maxSeen > 1 {
		t.Errorf("saw %d concurrent loads", maxSeen)
	}
	if loads != 9 {
		t.Errorf("loads = %d, want 9", loads)
	}
	if s.Status() != ScrollExhausted {
		t.Errorf("status = %s, want exhausted", s.Status())
	}
}
