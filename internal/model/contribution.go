// Package model contains domain types for the folio application.
// These types are independent of any external GitHub library.
package model

import "time"

// DateLayout is the canonical day format used in API payloads, cache keys and URLs.
const DateLayout = "2006-01-02"

// DaysPerWeek is the number of days in a calendar column.
const DaysPerWeek = 7

// Origin records where a piece of data came from.
type Origin string

const (
	// OriginGitHub is data returned by the GitHub API.
	OriginGitHub Origin = "github"
	// OriginSeeded is generated data shaped by a real public profile.
	OriginSeeded Origin = "seeded"
	// OriginSynthetic is generated data with no real input.
	OriginSynthetic Origin = "synthetic"
)

// Simulated reports whether the data was generated rather than fetched.
func (o Origin) Simulated() bool {
	return o != OriginGitHub
}

// ContributionDay is a single cell of the contribution calendar.
type ContributionDay struct {
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
	Weekday int       `json:"weekday"` // 0 = Sunday
}

// Key returns the day formatted as YYYY-MM-DD.
func (d ContributionDay) Key() string {
	return d.Date.Format(DateLayout)
}

// ContributionWeek is one Sunday-first column of seven days.
type ContributionWeek struct {
	FirstDay time.Time         `json:"firstDay"`
	Days     []ContributionDay `json:"days"`
}

// ContributionCalendar is a year of contribution weeks in ascending order.
type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// Empty reports whether the calendar has no weeks to lay out.
func (c ContributionCalendar) Empty() bool {
	return len(c.Weeks) == 0
}

// Sum adds up the day counts of every week.
func (c ContributionCalendar) Sum() int {
	total := 0
	for _, w := range c.Weeks {
		for _, d := range w.Days {
			total += d.Count
		}
	}
	return total
}

// DayCount returns the number of days across all weeks.
func (c ContributionCalendar) DayCount() int {
	n := 0
	for _, w := range c.Weeks {
		n += len(w.Days)
	}
	return n
}

// DateOf truncates t to its calendar date, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SundayOnOrBefore returns the Sunday at or before the date of t.
func SundayOnOrBefore(t time.Time) time.Time {
	d := DateOf(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// Profile is the public subset of a GitHub user used to seed generated data.
type Profile struct {
	Login       string    `json:"login"`
	PublicRepos int       `json:"publicRepos"`
	CreatedAt   time.Time `json:"createdAt"`
}
