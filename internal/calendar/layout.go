package calendar

import (
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/urlutil"
)

// Options tunes the month label layout.
type Options struct {
	WeekWidth        int // horizontal pitch of one week column
	MinLabelDistance int // minimum gap between labels, in weeks
}

// DefaultOptions returns the GitHub-accurate layout settings.
func DefaultOptions() Options {
	return Options{
		WeekWidth:        constants.WeekWidth,
		MinLabelDistance: constants.MinLabelDistance,
	}
}

// MonthLabel marks the week column where a month begins.
type MonthLabel struct {
	Month     time.Month `json:"month"`
	WeekIndex int        `json:"week"`
	X         int        `json:"x"`
}

// Cell is a laid out calendar day.
type Cell struct {
	Date    time.Time
	Count   int
	Weekday int
	Tier    Tier
	Color   string
}

// Grid is a render-ready calendar: week-major cells plus month labels.
type Grid struct {
	Weeks  [][]Cell
	Labels []MonthLabel
	Total  int
}

// Layout converts a calendar into a grid for the given theme.
func Layout(cal model.ContributionCalendar, theme Theme, opts Options) Grid {
	g := Grid{
		Weeks:  make([][]Cell, len(cal.Weeks)),
		Labels: MonthLabels(cal, opts),
		Total:  cal.TotalContributions,
	}
	for i, w := range cal.Weeks {
		cells := make([]Cell, len(w.Days))
		for j, d := range w.Days {
			tier := TierFor(d.Count)
			cells[j] = Cell{
				Date:    d.Date,
				Count:   d.Count,
				Weekday: d.Weekday,
				Tier:    tier,
				Color:   tier.Color(theme),
			}
		}
		g.Weeks[i] = cells
	}
	return g
}

// MonthLabels places one label per month transition, keyed on the first day
// of each week, then drops labels that would collide with their successor.
func MonthLabels(cal model.ContributionCalendar, opts Options) []MonthLabel {
	if opts.WeekWidth <= 0 {
		opts.WeekWidth = constants.WeekWidth
	}
	if opts.MinLabelDistance < 0 {
		opts.MinLabelDistance = 0
	}

	var candidates []MonthLabel
	for i, w := range cal.Weeks {
		if len(w.Days) == 0 {
			continue
		}
		month := w.Days[0].Date.Month()
		if len(candidates) > 0 && candidates[len(candidates)-1].Month == month {
			continue
		}
		candidates = append(candidates, MonthLabel{
			Month:     month,
			WeekIndex: i,
			X:         i * opts.WeekWidth,
		})
	}
	return spaceLabels(candidates, opts.MinLabelDistance)
}

// spaceLabels applies the collision filter. The first label needs strictly
// more than minGap weeks to the next one; later labels need at least minGap.
// A lone label is kept.
func spaceLabels(labels []MonthLabel, minGap int) []MonthLabel {
	if len(labels) < 2 {
		return labels
	}
	kept := make([]MonthLabel, 0, len(labels))
	last := len(labels) - 1
	for i, l := range labels {
		if i < last {
			gap := labels[i+1].WeekIndex - l.WeekIndex
			if i == 0 && gap <= minGap {
				continue
			}
			if gap < minGap {
				continue
			}
		}
		kept = append(kept, l)
	}
	return kept
}

// DayURL links a calendar day to the user's GitHub contribution view.
func DayURL(username string, day time.Time) string {
	return urlutil.ContributionsURL(username, day.Format(model.DateLayout))
}
