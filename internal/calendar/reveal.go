package calendar

import (
	"context"
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/log"
)

// RevealState is the lifecycle of a reveal animation.
type RevealState int

const (
	RevealIdle RevealState = iota
	RevealRevealing
	RevealComplete
)

func (s RevealState) String() string {
	switch s {
	case RevealRevealing:
		return "revealing"
	case RevealComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Reveal schedules the staggered appearance of calendar weeks. Each tick
// exposes the next chunk of weeks until all are loaded.
//
// A Reveal has a single writer; it is not safe for concurrent use. Ticks
// carry the generation they were scheduled for so that ticks outliving a
// Cancel or a restart are ignored.
type Reveal struct {
	chunk  int
	total  int
	loaded int
	gen    int
	state  RevealState
}

// NewReveal creates an idle scheduler advancing chunk weeks per tick.
func NewReveal(chunk int) *Reveal {
	if chunk <= 0 {
		chunk = constants.RevealChunk
	}
	return &Reveal{chunk: chunk}
}

// Start begins revealing total weeks from zero and returns the new generation.
// An empty calendar completes immediately.
func (r *Reveal) Start(total int) int {
	r.gen++
	r.loaded = 0
	r.total = max(total, 0)
	r.state = RevealRevealing
	if r.total == 0 {
		r.state = RevealComplete
	}
	return r.gen
}

// Tick advances the reveal by one chunk. It reports whether anything changed;
// stale generations and non-revealing states are no-ops.
func (r *Reveal) Tick(gen int) bool {
	if gen != r.gen || r.state != RevealRevealing {
		return false
	}
	r.loaded = min(r.loaded+r.chunk, r.total)
	if r.loaded >= r.total {
		r.state = RevealComplete
	}
	log.Trace("reveal tick", "loaded", r.loaded, "total", r.total)
	return true
}

// Cancel stops the animation and invalidates outstanding ticks.
func (r *Reveal) Cancel() {
	r.gen++
	r.state = RevealIdle
}

// IsLoaded reports whether the week at index should render with final styling.
func (r *Reveal) IsLoaded(week int) bool {
	switch r.state {
	case RevealComplete:
		return true
	case RevealRevealing:
		return r.loaded >= week
	default:
		return false
	}
}

func (r *Reveal) State() RevealState { return r.state }
func (r *Reveal) Loaded() int        { return r.loaded }
func (r *Reveal) Total() int         { return r.total }
func (r *Reveal) Generation() int    { return r.gen }

// Animate drives a started Reveal from a ticker, calling frame after every
// advance (and once up front). It returns when the reveal completes, is
// cancelled or restarted, or ctx is done; the ticker is always stopped.
func Animate(ctx context.Context, r *Reveal, interval time.Duration, frame func(*Reveal)) error {
	if interval <= 0 {
		interval = constants.RevealInterval
	}
	gen := r.Generation()
	frame(r)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for r.State() == RevealRevealing {
		select {
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		case <-ticker.C:
			if !r.Tick(gen) {
				return nil
			}
			frame(r)
		}
	}
	return nil
}
