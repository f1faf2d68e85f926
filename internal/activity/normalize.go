// Package activity turns GitHub events into the grouped, paginated timeline
// shown under the contribution calendar.
package activity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/urlutil"
)

const (
	eventPush        = "PushEvent"
	eventPullRequest = "PullRequestEvent"
)

// Normalize converts raw repository events into activity events, newest
// first. Push events expand into one event per commit; event types other
// than pushes and pull requests are ignored.
func Normalize(raw []model.RawEvent) []model.ActivityEvent {
	var out []model.ActivityEvent
	for _, ev := range raw {
		repo := urlutil.RepoShortName(ev.RepoName)
		switch ev.Type {
		case eventPush:
			branch := strings.TrimPrefix(ev.Ref, "refs/heads/")
			for _, c := range ev.Commits {
				if c.SHA == "" {
					continue
				}
				out = append(out, model.ActivityEvent{
					ID:         "commit_" + c.SHA,
					Kind:       model.KindCommit,
					Message:    firstLine(c.Message),
					Repository: repo,
					Timestamp:  ev.CreatedAt,
					URL:        urlutil.CommitHTMLURL(c.URL),
					Branch:     branch,
				})
			}
		case eventPullRequest:
			pr := ev.PullRequest
			if pr == nil {
				continue
			}
			additions, deletions := pr.Additions, pr.Deletions
			out = append(out, model.ActivityEvent{
				ID:         fmt.Sprintf("pr_%d_%s", pr.Number, ev.RepoName),
				Kind:       model.KindPullRequest,
				Message:    pr.Title,
				Repository: repo,
				Timestamp:  ev.CreatedAt,
				URL:        pr.HTMLURL,
				Additions:  &additions,
				Deletions:  &deletions,
				Branch:     pr.HeadRef,
			})
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(events []model.ActivityEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
