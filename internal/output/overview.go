package output

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"
)

// OverviewJSON is the calendar and timeline of one profile.
type OverviewJSON struct {
	Calendar CalendarJSON `json:"calendar"`
	Timeline TimelineJSON `json:"timeline"`
}

// FormatOverview renders a calendar followed by a timeline as one document.
func FormatOverview(format Format, cal CalendarData, tl TimelineData, w io.Writer) error {
	switch format {
	case FormatJSON:
		f := &JSONFormatter{Pretty: true}
		return f.encode(w, OverviewJSON{
			Calendar: NewCalendarJSON(cal),
			Timeline: NewTimelineJSON(tl),
		})
	case FormatHTML:
		page := components.NewPage()
		page.PageTitle = fmt.Sprintf("%s · folio", cal.Username)
		page.AddCharts(CalendarChart(cal), TimelineChart(tl))
		return page.Render(w)
	default:
		f := &TextFormatter{}
		if err := f.FormatCalendar(cal, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return f.FormatTimeline(tl, w)
	}
}
