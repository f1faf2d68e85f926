// Package output renders calendars and timelines as text, JSON or HTML.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q: use text, json or html", s)
	}
}

// CalendarData is everything needed to render a contribution calendar.
type CalendarData struct {
	Username string
	Calendar model.ContributionCalendar
	Origin   model.Origin
	Lang     locale.Language
	Theme    calendar.Theme
	Layout   calendar.Options
}

// Grid lays out the calendar.
func (d CalendarData) Grid() calendar.Grid {
	return calendar.Layout(d.Calendar, d.Theme, d.Layout)
}

// TimelineData is one rendered view of the activity timeline.
type TimelineData struct {
	Username   string
	Events     []model.ActivityEvent
	Origin     model.Origin
	Pagination model.ScrollPaginationState
	Lang       locale.Language
	Now        time.Time
	Location   *time.Location
}

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatCalendar(d CalendarData, w io.Writer) error
	FormatTimeline(d TimelineData, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatHTML:
		return &HTMLFormatter{}
	default:
		return &TextFormatter{}
	}
}
