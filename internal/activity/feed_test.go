package activity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spiffcs/folio/internal/model"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// seqRand cycles through fixed draws.
type seqRand struct {
	floats []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	f := r.floats[r.i%len(r.floats)]
	r.i++
	return f
}

func (r *seqRand) IntN(n int) int { return n / 2 }

func newTestSynthetic(floats ...float64) *Synthetic {
	return NewSynthetic(
		WithSyntheticClock(func() time.Time { return fixedNow }),
		WithSyntheticRand(&seqRand{floats: floats}),
	)
}

func TestNormalize(t *testing.T) {
	t1 := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	raw := []model.RawEvent{
		{
			ID: "1", Type: "PushEvent", CreatedAt: t1, RepoName: "octocat/portfolio", Ref: "refs/heads/main",
			Commits: []model.RawCommit{
				{SHA: "aaa", Message: "Fix layout\n\nlonger body", URL: "https://api.github.com/repos/octocat/portfolio/commits/aaa"},
				{SHA: "bbb", Message: "Add tests", URL: "https://api.github.com/repos/octocat/portfolio/commits/bbb"},
			},
		},
		{
			ID: "2", Type: "PullRequestEvent", CreatedAt: t2, RepoName: "octocat/node-backend",
			PullRequest: &model.RawPullRequest{Number: 7, Title: "Add caching", HTMLURL: "https://github.com/octocat/node-backend/pull/7", HeadRef: "feature/cache", Additions: 30, Deletions: 4},
		},
		{ID: "3", Type: "WatchEvent", CreatedAt: t2, RepoName: "octocat/other"},
		{ID: "4", Type: "PullRequestEvent", CreatedAt: t2, RepoName: "octocat/broken"},
	}

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}

	pr := got[0]
	if pr.ID != "pr_7_octocat/node-backend" || pr.Kind != model.KindPullRequest {
		t.Errorf("first event = %s (%s), want the newer pull request", pr.ID, pr.Kind)
	}
	if pr.Repository != "node-backend" || pr.Branch != "feature/cache" {
		t.Errorf("pr repo/branch = %s/%s", pr.Repository, pr.Branch)
	}
	if pr.Additions == nil || *pr.Additions != 30 || pr.Deletions == nil || *pr.Deletions != 4 {
		t.Errorf("pr additions/deletions not carried over")
	}

	c := got[1]
	if c.ID != "commit_aaa" || c.Message != "Fix layout" {
		t.Errorf("commit = %s %q", c.ID, c.Message)
	}
	if c.URL != "https://github.com/octocat/portfolio/commit/aaa" {
		t.Errorf("commit URL = %s", c.URL)
	}
	if c.Branch != "main" || c.Repository != "portfolio" {
		t.Errorf("commit branch/repo = %s/%s", c.Branch, c.Repository)
	}
	if got[2].ID != "commit_bbb" {
		t.Errorf("commits from one push should keep their order, got %s", got[2].ID)
	}
}

func TestSyntheticPage(t *testing.T) {
	s := newTestSynthetic(0.5, 0.2)
	page := s.Page("octocat", 2)

	if len(page) != 8 {
		t.Fatalf("got %d events, want 8", len(page))
	}
	for i, ev := range page {
		if !strings.HasPrefix(ev.ID, "activity_2_") {
			t.Errorf("id %q lacks page prefix", ev.ID)
		}
		if !strings.HasPrefix(ev.URL, "https://github.com/octocat/") {
			t.Errorf("url %q is not a repo of the user", ev.URL)
		}
		if i > 0 && ev.Timestamp.After(page[i-1].Timestamp) {
			t.Errorf("event %d is newer than event %d", i, i-1)
		}
		age := fixedNow.Sub(ev.Timestamp)
		if age < 8*24*time.Hour || age >= 16*24*time.Hour {
			t.Errorf("page 2 event is %v old, want within days 8..15", age)
		}
		// Draw 0.2 is below the commit probability.
		if ev.Kind != model.KindCommit || ev.Branch != "main" || ev.Additions == nil {
			t.Errorf("event %s should be a commit on main with stats", ev.ID)
		}
	}
}

func TestSyntheticPullRequests(t *testing.T) {
	s := newTestSynthetic(0.9)
	for _, ev := range s.Page("octocat", 1) {
		if ev.Kind != model.KindPullRequest {
			t.Fatalf("event %s kind = %s, want pull_request", ev.ID, ev.Kind)
		}
		if !strings.HasPrefix(ev.Branch, "feature/branch-") || ev.Additions != nil {
			t.Errorf("pull request %s branch=%s additions=%v", ev.ID, ev.Branch, ev.Additions)
		}
	}
}

func TestSyntheticInvalidPage(t *testing.T) {
	if got := newTestSynthetic(0.5).Page("octocat", 0); got != nil {
		t.Errorf("Page(0) = %v, want nil", got)
	}
}

type fakeEvents struct {
	pages map[int][]model.RawEvent
	err   error
	calls int
}

func (f *fakeEvents) Events(_ context.Context, _ string, page, _ int) ([]model.RawEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[page], nil
}

func pushEvent(sha string) model.RawEvent {
	return model.RawEvent{
		Type: "PushEvent", CreatedAt: fixedNow, RepoName: "octocat/portfolio", Ref: "refs/heads/main",
		Commits: []model.RawCommit{{SHA: sha, Message: "m", URL: "https://api.github.com/repos/octocat/portfolio/commits/" + sha}},
	}
}

func TestStreamRealPages(t *testing.T) {
	client := &fakeEvents{pages: map[int][]model.RawEvent{1: {pushEvent("a")}}}
	stream := NewFeed(client, newTestSynthetic(0.5)).Stream("octocat")

	p1, err := stream.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load(1) error = %v", err)
	}
	if p1.Origin != model.OriginGitHub || len(p1.Events) != 1 {
		t.Errorf("page 1 = %s with %d events", p1.Origin, len(p1.Events))
	}

	p2, _ := stream.Load(context.Background(), 2)
	if p2.Origin != model.OriginGitHub || len(p2.Events) != 0 {
		t.Errorf("page 2 = %s with %d events, want an empty real page", p2.Origin, len(p2.Events))
	}
}

func TestStreamFallsBackAndSticks(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeEvents
	}{
		{"error", &fakeEvents{err: errors.New("403 rate limited")}},
		{"empty first page", &fakeEvents{pages: map[int][]model.RawEvent{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := NewFeed(tt.client, newTestSynthetic(0.5)).Stream("octocat")
			p1, err := stream.Load(context.Background(), 1)
			if err != nil {
				t.Fatalf("Load(1) error = %v", err)
			}
			if p1.Origin != model.OriginSynthetic || len(p1.Events) != 8 {
				t.Errorf("page 1 = %s with %d events, want 8 synthetic", p1.Origin, len(p1.Events))
			}

			tt.client.err = nil
			tt.client.pages = map[int][]model.RawEvent{2: {pushEvent("z")}}
			p2, _ := stream.Load(context.Background(), 2)
			if p2.Origin != model.OriginSynthetic {
				t.Error("stream should stay synthetic once it falls back")
			}
			if tt.client.calls != 1 {
				t.Errorf("client called %d times, want 1", tt.client.calls)
			}
		})
	}
}

func TestStreamWithoutClient(t *testing.T) {
	stream := NewFeed(nil, newTestSynthetic(0.5)).Stream("octocat")
	if stream.Origin() != model.OriginSynthetic {
		t.Errorf("Origin() = %s, want synthetic", stream.Origin())
	}
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stream := NewFeed(&fakeEvents{}, newTestSynthetic(0.5)).Stream("octocat")
	if _, err := stream.Load(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
