package contrib

import (
	"context"
	"errors"
	"strings"

	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/observability"
)

// GitHub is the subset of the GitHub client the source needs.
type GitHub interface {
	Authenticated() bool
	Profile(ctx context.Context, login string) (model.RawProfile, error)
	Contributions(ctx context.Context, login string) (model.RawCalendar, error)
}

// Cache stores validated GitHub results between runs.
type Cache interface {
	GetCalendar(login string) (model.ContributionCalendar, bool)
	SetCalendar(login string, cal model.ContributionCalendar) error
	GetProfile(login string) (model.Profile, bool)
	SetProfile(login string, p model.Profile) error
}

// Result is a calendar tagged with where it came from.
type Result struct {
	Calendar model.ContributionCalendar
	Origin   model.Origin
}

// Simulated reports whether the calendar was generated.
func (r Result) Simulated() bool {
	return r.Origin.Simulated()
}

// Source resolves a user's contribution calendar. It prefers the GraphQL
// calendar, falls back to a generator seeded by the public profile when no
// token is configured, and to an unseeded generator on any failure.
type Source struct {
	client GitHub
	gen    *Generator
	cache  Cache
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithCache enables the result cache.
func WithCache(c Cache) SourceOption {
	return func(s *Source) {
		s.cache = c
	}
}

// NewSource creates a source. client may be nil, in which case every
// calendar is generated.
func NewSource(client GitHub, gen *Generator, opts ...SourceOption) *Source {
	if gen == nil {
		gen = NewGenerator()
	}
	s := &Source{client: client, gen: gen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calendar always returns a usable calendar; failures are logged and
// converted into generated data.
func (s *Source) Calendar(ctx context.Context, login string) Result {
	res := s.resolve(ctx, login)
	observability.RecordCalendar(string(res.Origin))
	return res
}

func (s *Source) resolve(ctx context.Context, login string) Result {
	login = strings.TrimSpace(login)
	if s.client == nil || login == "" {
		return s.synthetic(login, errors.New("no GitHub client or username"))
	}

	if s.client.Authenticated() {
		cal, err := s.fetchCalendar(ctx, login)
		if err != nil {
			return s.synthetic(login, err)
		}
		log.Info("contribution calendar loaded", "user", login, "origin", model.OriginGitHub, "total", cal.TotalContributions)
		return Result{Calendar: cal, Origin: model.OriginGitHub}
	}

	profile, err := s.fetchProfile(ctx, login)
	if err != nil {
		return s.synthetic(login, err)
	}
	log.Info("generating calendar from public profile", "user", login, "public_repos", profile.PublicRepos)
	return Result{Calendar: s.gen.Generate(&profile), Origin: model.OriginSeeded}
}

func (s *Source) fetchCalendar(ctx context.Context, login string) (model.ContributionCalendar, error) {
	if s.cache != nil {
		if cal, ok := s.cache.GetCalendar(login); ok {
			log.Debug("calendar cache hit", "user", login)
			return cal, nil
		}
	}
	raw, err := s.client.Contributions(ctx, login)
	if err != nil {
		return model.ContributionCalendar{}, err
	}
	cal, err := NormalizeCalendar(raw)
	if err != nil {
		return model.ContributionCalendar{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetCalendar(login, cal); err != nil {
			log.Debug("failed to cache calendar", "user", login, "error", err)
		}
	}
	return cal, nil
}

func (s *Source) fetchProfile(ctx context.Context, login string) (model.Profile, error) {
	if s.cache != nil {
		if p, ok := s.cache.GetProfile(login); ok {
			log.Debug("profile cache hit", "user", login)
			return p, nil
		}
	}
	raw, err := s.client.Profile(ctx, login)
	if err != nil {
		return model.Profile{}, err
	}
	p, err := NormalizeProfile(raw)
	if err != nil {
		return model.Profile{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetProfile(login, p); err != nil {
			log.Debug("failed to cache profile", "user", login, "error", err)
		}
	}
	return p, nil
}

func (s *Source) synthetic(login string, cause error) Result {
	log.Warn("contribution data unavailable, using simulated calendar", "user", login, "error", cause)
	return Result{Calendar: s.gen.Generate(nil), Origin: model.OriginSynthetic}
}
