package model

import "time"

// The Raw types mirror upstream payloads before validation. Pointer fields
// distinguish a missing value from a zero one.

// RawCalendar is the contributionCalendar object of the GraphQL API.
type RawCalendar struct {
	TotalContributions int       `json:"totalContributions"`
	Weeks              []RawWeek `json:"weeks"`
}

// RawWeek is one week of a RawCalendar.
type RawWeek struct {
	FirstDay string   `json:"firstDay"`
	Days     []RawDay `json:"contributionDays"`
}

// RawDay is one day of a RawWeek.
type RawDay struct {
	Date    string `json:"date"`
	Count   *int   `json:"contributionCount"`
	Weekday *int   `json:"weekday"`
}

// RawProfile is the subset of GET /users/{login} used as a generator seed.
type RawProfile struct {
	Login       string
	PublicRepos *int
	CreatedAt   *time.Time
}

// RawEvent is the subset of a GitHub event payload the timeline consumes.
type RawEvent struct {
	ID          string
	Type        string
	CreatedAt   time.Time
	RepoName    string // owner/repo
	Ref         string
	Commits     []RawCommit
	PullRequest *RawPullRequest
}

// RawCommit is a commit inside a push event payload.
type RawCommit struct {
	SHA     string
	Message string
	URL     string // API URL
}

// RawPullRequest is the pull request inside a pull request event payload.
type RawPullRequest struct {
	Number    int
	Title     string
	HTMLURL   string
	HeadRef   string
	Additions int
	Deletions int
}
