package contrib

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spiffcs/folio/internal/model"
)

type fakeGitHub struct {
	authenticated bool
	profile       model.RawProfile
	profileErr    error
	calendar      model.RawCalendar
	calendarErr   error

	profileCalls  int
	calendarCalls int
}

func (f *fakeGitHub) Authenticated() bool { return f.authenticated }

func (f *fakeGitHub) Profile(_ context.Context, _ string) (model.RawProfile, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func (f *fakeGitHub) Contributions(_ context.Context, _ string) (model.RawCalendar, error) {
	f.calendarCalls++
	return f.calendar, f.calendarErr
}

type memCache struct {
	calendars map[string]model.ContributionCalendar
	profiles  map[string]model.Profile
}

func newMemCache() *memCache {
	return &memCache{calendars: map[string]model.ContributionCalendar{}, profiles: map[string]model.Profile{}}
}

func (m *memCache) GetCalendar(login string) (model.ContributionCalendar, bool) {
	c, ok := m.calendars[login]
	return c, ok
}

func (m *memCache) SetCalendar(login string, cal model.ContributionCalendar) error {
	m.calendars[login] = cal
	return nil
}

func (m *memCache) GetProfile(login string) (model.Profile, bool) {
	p, ok := m.profiles[login]
	return p, ok
}

func (m *memCache) SetProfile(login string, p model.Profile) error {
	m.profiles[login] = p
	return nil
}

func intp(n int) *int { return &n }

// rawYear builds a GraphQL-shaped calendar of 53 weeks ending on the given
// day, with a partial first and last week like the real API.
func rawYear(last time.Time) model.RawCalendar {
	first := last.AddDate(-1, 0, 1)
	var raw model.RawCalendar
	var week *model.RawWeek
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if week == nil || d.Weekday() == time.Sunday {
			raw.Weeks = append(raw.Weeks, model.RawWeek{FirstDay: d.Format(model.DateLayout)})
			week = &raw.Weeks[len(raw.Weeks)-1]
		}
		week.Days = append(week.Days, model.RawDay{
			Date:    d.Format(model.DateLayout),
			Count:   intp(d.Day() % 3),
			Weekday: intp(int(d.Weekday())),
		})
	}
	return raw
}

func newTestGenerator() *Generator {
	return NewGenerator(WithClock(clock), WithRand(fixedRand{f: 0.5}))
}

func TestSourceAuthenticated(t *testing.T) {
	gh := &fakeGitHub{authenticated: true, calendar: rawYear(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))}
	cache := newMemCache()
	src := NewSource(gh, newTestGenerator(), WithCache(cache))

	res := src.Calendar(context.Background(), "octocat")
	if res.Origin != model.OriginGitHub || res.Simulated() {
		t.Fatalf("origin = %s, want github", res.Origin)
	}
	if len(res.Calendar.Weeks) != 52 {
		t.Errorf("got %d weeks, want 52", len(res.Calendar.Weeks))
	}
	if gh.profileCalls != 0 {
		t.Error("authenticated path should not look up the profile")
	}

	src.Calendar(context.Background(), "octocat")
	if gh.calendarCalls != 1 {
		t.Errorf("calendar fetched %d times, want 1 with cache", gh.calendarCalls)
	}
}

func TestSourceSeededWithoutToken(t *testing.T) {
	created := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	gh := &fakeGitHub{profile: model.RawProfile{Login: "octocat", PublicRepos: intp(20), CreatedAt: &created}}
	src := NewSource(gh, newTestGenerator())

	res := src.Calendar(context.Background(), "octocat")
	if res.Origin != model.OriginSeeded || !res.Simulated() {
		t.Errorf("origin = %s, want seeded", res.Origin)
	}
	if gh.calendarCalls != 0 {
		t.Error("unauthenticated path should not query GraphQL")
	}
	if len(res.Calendar.Weeks) != 52 {
		t.Errorf("got %d weeks, want 52", len(res.Calendar.Weeks))
	}
}

func TestSourceFallsBackToSynthetic(t *testing.T) {
	created := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		gh   GitHub
	}{
		{"nil client", nil},
		{"graphql failure", &fakeGitHub{authenticated: true, calendarErr: errors.New("502 bad gateway")}},
		{"malformed calendar", &fakeGitHub{authenticated: true, calendar: model.RawCalendar{}}},
		{"profile failure", &fakeGitHub{profileErr: errors.New("connection reset")}},
		{"profile missing repos", &fakeGitHub{profile: model.RawProfile{CreatedAt: &created}}},
		{"profile missing created_at", &fakeGitHub{profile: model.RawProfile{PublicRepos: intp(3)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewSource(tt.gh, newTestGenerator()).Calendar(context.Background(), "octocat")
			if res.Origin != model.OriginSynthetic {
				t.Errorf("origin = %s, want synthetic", res.Origin)
			}
			if len(res.Calendar.Weeks) != 52 {
				t.Errorf("got %d weeks, want 52", len(res.Calendar.Weeks))
			}
		})
	}
}

func TestNormalizeCalendar(t *testing.T) {
	last := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC) // Wednesday
	cal, err := NormalizeCalendar(rawYear(last))
	if err != nil {
		t.Fatalf("NormalizeCalendar() error = %v", err)
	}

	if len(cal.Weeks) != 52 {
		t.Fatalf("got %d weeks, want 52", len(cal.Weeks))
	}
	lastWeek := cal.Weeks[51]
	if got := lastWeek.FirstDay.Format(model.DateLayout); got != "2024-06-09" {
		t.Errorf("last week starts %s, want 2024-06-09", got)
	}
	if lastWeek.Days[4].Count != 0 || lastWeek.Days[6].Count != 0 {
		t.Error("days after the last reported day should be padded with zero")
	}
	if cal.TotalContributions != cal.Sum() {
		t.Errorf("total %d does not match sum %d", cal.TotalContributions, cal.Sum())
	}
}

func TestNormalizeCalendarRejectsBadInput(t *testing.T) {
	good := func() model.RawCalendar {
		return rawYear(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))
	}
	tests := []struct {
		name   string
		mutate func(*model.RawCalendar)
	}{
		{"bad date", func(r *model.RawCalendar) { r.Weeks[3].Days[2].Date = "June 3rd" }},
		{"negative count", func(r *model.RawCalendar) { r.Weeks[3].Days[2].Count = intp(-1) }},
		{"missing count", func(r *model.RawCalendar) { r.Weeks[3].Days[2].Count = nil }},
		{"wrong weekday", func(r *model.RawCalendar) { r.Weeks[3].Days[2].Weekday = intp(5) }},
		{"duplicate day", func(r *model.RawCalendar) { r.Weeks[4].Days[0] = r.Weeks[3].Days[0] }},
		{"no days", func(r *model.RawCalendar) {
			for i := range r.Weeks {
				r.Weeks[i].Days = nil
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := good()
			tt.mutate(&raw)
			if _, err := NormalizeCalendar(raw); !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}
