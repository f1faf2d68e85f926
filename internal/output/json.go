package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// JSONDay mirrors a GraphQL contributionDay, with its rendered color.
type JSONDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
	Color             string `json:"color"`
	Weekday           int    `json:"weekday"`
}

// JSONWeek mirrors a GraphQL contribution week.
type JSONWeek struct {
	FirstDay         string    `json:"firstDay"`
	ContributionDays []JSONDay `json:"contributionDays"`
}

// JSONContributionCalendar is the contributionCalendar object.
type JSONContributionCalendar struct {
	TotalContributions int        `json:"totalContributions"`
	Weeks              []JSONWeek `json:"weeks"`
	Colors             []string   `json:"colors"`
}

// JSONMonthLabel is a month label with its localized short name.
type JSONMonthLabel struct {
	Month string `json:"month"`
	Week  int    `json:"week"`
	X     int    `json:"x"`
}

// CalendarJSON is the calendar document served by the API.
type CalendarJSON struct {
	Username             string                   `json:"username"`
	ContributionCalendar JSONContributionCalendar `json:"contributionCalendar"`
	MonthLabels          []JSONMonthLabel         `json:"monthLabels"`
	Simulated            bool                     `json:"simulated"`
	Source               model.Origin             `json:"source"`
}

// TimelineJSON is one page of the activity timeline.
type TimelineJSON struct {
	Username   string                `json:"username"`
	Activities []model.ActivityEvent `json:"activities"`
	Groups     []activity.DateGroup  `json:"groups"`
	Source     model.Origin          `json:"source"`
	Page       int                   `json:"page"`
	HasMore    bool                  `json:"hasMore"`
}

// NewCalendarJSON converts calendar data into its JSON document.
func NewCalendarJSON(d CalendarData) CalendarJSON {
	grid := d.Grid()
	palette := calendar.Palette(d.Theme)

	out := CalendarJSON{
		Username: d.Username,
		ContributionCalendar: JSONContributionCalendar{
			TotalContributions: grid.Total,
			Weeks:              make([]JSONWeek, 0, len(grid.Weeks)),
			Colors:             palette[:],
		},
		MonthLabels: make([]JSONMonthLabel, 0, len(grid.Labels)),
		Simulated:   d.Origin.Simulated(),
		Source:      d.Origin,
	}
	for i, cells := range grid.Weeks {
		week := JSONWeek{
			FirstDay:         d.Calendar.Weeks[i].FirstDay.Format(model.DateLayout),
			ContributionDays: make([]JSONDay, 0, len(cells)),
		}
		for _, c := range cells {
			week.ContributionDays = append(week.ContributionDays, JSONDay{
				Date:              c.Date.Format(model.DateLayout),
				ContributionCount: c.Count,
				Color:             c.Color,
				Weekday:           c.Weekday,
			})
		}
		out.ContributionCalendar.Weeks = append(out.ContributionCalendar.Weeks, week)
	}
	for _, l := range grid.Labels {
		out.MonthLabels = append(out.MonthLabels, JSONMonthLabel{
			Month: d.Lang.MonthShort(l.Month),
			Week:  l.WeekIndex,
			X:     l.X,
		})
	}
	return out
}

// NewTimelineJSON converts timeline data into its JSON document.
func NewTimelineJSON(d TimelineData) TimelineJSON {
	events := d.Events
	if events == nil {
		events = []model.ActivityEvent{}
	}
	groups := activity.Aggregate(events, d.Lang, d.Location)
	if groups == nil {
		groups = []activity.DateGroup{}
	}
	return TimelineJSON{
		Username:   d.Username,
		Activities: events,
		Groups:     groups,
		Source:     d.Origin,
		Page:       d.Pagination.CurrentPage,
		HasMore:    d.Pagination.HasMoreData,
	}
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// FormatCalendar outputs the calendar as JSON
func (f *JSONFormatter) FormatCalendar(d CalendarData, w io.Writer) error {
	return f.encode(w, NewCalendarJSON(d))
}

// FormatTimeline outputs the timeline as JSON
func (f *JSONFormatter) FormatTimeline(d TimelineData, w io.Writer) error {
	return f.encode(w, NewTimelineJSON(d))
}
