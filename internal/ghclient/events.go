package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"

	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
)

// Events lists one page of a user's public events.
func (c *Client) Events(ctx context.Context, login string, page, perPage int) ([]model.RawEvent, error) {
	opts := &gh.ListOptions{Page: page, PerPage: perPage}
	events, _, err := c.client.Activity.ListEventsPerformedByUser(ctx, login, true, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", login, err)
	}

	out := make([]model.RawEvent, 0, len(events))
	for _, ev := range events {
		raw, ok := toRawEvent(ev)
		if ok {
			out = append(out, raw)
		}
	}
	log.Debug("fetched events", "user", login, "page", page, "events", len(events), "kept", len(out))
	return out, nil
}

// toRawEvent keeps push and pull request events; everything else is dropped.
func toRawEvent(ev *gh.Event) (model.RawEvent, bool) {
	raw := model.RawEvent{
		ID:        ev.GetID(),
		Type:      ev.GetType(),
		CreatedAt: ev.GetCreatedAt().Time,
		RepoName:  ev.GetRepo().GetName(),
	}

	switch ev.GetType() {
	case "PushEvent", "PullRequestEvent":
	default:
		return raw, false
	}

	payload, err := ev.ParsePayload()
	if err != nil {
		log.Debug("failed to parse event payload", "id", ev.GetID(), "type", ev.GetType(), "error", err)
		return raw, false
	}

	switch p := payload.(type) {
	case *gh.PushEvent:
		raw.Ref = p.GetRef()
		for _, commit := range p.Commits {
			sha := commit.GetSHA()
			if sha == "" {
				sha = commit.GetID()
			}
			raw.Commits = append(raw.Commits, model.RawCommit{
				SHA:     sha,
				Message: commit.GetMessage(),
				URL:     commit.GetURL(),
			})
		}
	case *gh.PullRequestEvent:
		pr := p.GetPullRequest()
		if pr == nil {
			return raw, false
		}
		raw.PullRequest = &model.RawPullRequest{
			Number:    pr.GetNumber(),
			Title:     pr.GetTitle(),
			HTMLURL:   pr.GetHTMLURL(),
			HeadRef:   pr.GetHead().GetRef(),
			Additions: pr.GetAdditions(),
			Deletions: pr.GetDeletions(),
		}
	default:
		return raw, false
	}
	return raw, true
}
