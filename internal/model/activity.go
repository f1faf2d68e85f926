package model

import "time"

// EventKind distinguishes the activity entries shown on the timeline.
type EventKind string

const (
	KindCommit      EventKind = "commit"
	KindPullRequest EventKind = "pull_request"
)

// ActivityEvent is one normalized timeline entry.
type ActivityEvent struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"type"`
	Message    string    `json:"message"`
	Repository string    `json:"repository"`
	Timestamp  time.Time `json:"date"`
	URL        string    `json:"url"`
	Additions  *int      `json:"additions,omitempty"`
	Deletions  *int      `json:"deletions,omitempty"`
	Branch     string    `json:"branch,omitempty"`
}

// ScrollPaginationState is the externally visible pagination state of a timeline.
type ScrollPaginationState struct {
	CurrentPage   int  `json:"currentPage"`
	IsLoadingMore bool `json:"isLoadingMore"`
	HasMoreData   bool `json:"hasMoreData"`
}
