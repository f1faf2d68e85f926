package activity

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/urlutil"
)

var (
	syntheticRepos = []string{"portfolio", "portfolio-web", "react-projects", "node-backend", "python-tools"}

	syntheticMessages = []string{
		"Add hover preview for work cards",
		"Implement theme switching functionality",
		"Fix responsive layout issues",
		"Update dependencies and security patches",
		"Optimize build performance",
		"Add internationalization support",
		"Improve CSS animations and transitions",
		"Refactor component architecture",
		"Add TypeScript type definitions",
		"Update README with new features",
		"Fix mobile responsive design",
		"Add unit tests for components",
		"Improve accessibility features",
		"Update CI/CD pipeline",
		"Refactor API endpoints",
		"Add error handling",
		"Optimize database queries",
		"Update documentation",
		"Fix security vulnerabilities",
		"Add logging functionality",
	}
)

// Rand is the random source used for synthetic pages.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Synthetic produces plausible activity pages when GitHub cannot be reached.
// Page n covers days (n-1)*PageSize through n*PageSize-1 before now.
type Synthetic struct {
	PageSize int

	now func() time.Time
	mu  sync.Mutex
	rnd Rand
}

// SyntheticOption configures a Synthetic generator.
type SyntheticOption func(*Synthetic)

// WithSyntheticRand injects the random source.
func WithSyntheticRand(r Rand) SyntheticOption {
	return func(s *Synthetic) {
		s.rnd = r
	}
}

// WithSyntheticClock injects the clock.
func WithSyntheticClock(now func() time.Time) SyntheticOption {
	return func(s *Synthetic) {
		s.now = now
	}
}

// NewSynthetic creates a generator with the default page size.
func NewSynthetic(opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{PageSize: constants.ActivityPageSize, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		seed := uint64(s.now().UnixNano())
		s.rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return s
}

// Page returns one page of generated events for username, newest first.
func (s *Synthetic) Page(username string, page int) []model.ActivityEvent {
	if page < 1 || s.PageSize <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	start := (page - 1) * s.PageSize
	events := make([]model.ActivityEvent, 0, s.PageSize)
	for i := 0; i < s.PageSize; i++ {
		offset := time.Duration(start+i)*24*time.Hour + time.Duration(s.rnd.Float64()*float64(24*time.Hour))
		commit := s.rnd.Float64() < constants.CommitProbability

		ev := model.ActivityEvent{
			ID:         fmt.Sprintf("activity_%d_%d", page, i),
			Kind:       model.KindPullRequest,
			Message:    syntheticMessages[s.rnd.IntN(len(syntheticMessages))],
			Repository: syntheticRepos[s.rnd.IntN(len(syntheticRepos))],
			Timestamp:  now.Add(-offset),
			URL:        urlutil.RepoURL(username, syntheticRepos[s.rnd.IntN(len(syntheticRepos))]),
			Branch:     fmt.Sprintf("feature/branch-%d", i),
		}
		if commit {
			additions := s.rnd.IntN(50) + 1
			deletions := s.rnd.IntN(20)
			ev.Kind = model.KindCommit
			ev.Additions = &additions
			ev.Deletions = &deletions
			ev.Branch = "main"
		}
		events = append(events, ev)
	}
	sortNewestFirst(events)
	return events
}
