package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/format"
	"github.com/spiffcs/folio/internal/locale"
)

const (
	cellGlyph      = "■"
	cursorGlyph    = "▣"
	cellWidth      = 2 // glyph plus gap
	rowLabelWidth  = 4
	defaultMsgCols = 56
)

// TextFormatter renders for a terminal.
type TextFormatter struct {
	// Visible reports whether a week column has been revealed. Nil shows
	// every week.
	Visible func(week int) bool
	// Highlight marks a single cell, such as a cursor.
	Highlight func(week, day int) bool
	// MessageWidth caps timeline messages, in columns.
	MessageWidth int
	// Hyperlinks emits OSC 8 links for timeline entries.
	Hyperlinks bool
}

var (
	titleColor = color.New(color.Bold)
	dimColor   = color.New(color.Faint)
	repoColor  = color.New(color.FgCyan)
	addColor   = color.New(color.FgGreen)
)

// hexColor converts "#rrggbb" into a truecolor foreground.
func hexColor(hex string) *color.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}

// Cell renders one calendar square in the color of its tier.
func Cell(tier calendar.Tier, theme calendar.Theme) string {
	return hexColor(tier.Color(theme)).Sprint(cellGlyph)
}

// MonthRow places month labels over their week columns.
func MonthRow(grid calendar.Grid, lang locale.Language) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	col := rowLabelWidth
	for i, l := range grid.Labels {
		pos := rowLabelWidth + l.WeekIndex*cellWidth
		if i > 0 && pos <= col {
			pos = col + 1
		}
		b.WriteString(strings.Repeat(" ", pos-col))
		name := lang.MonthShort(l.Month)
		b.WriteString(name)
		col = pos + format.DisplayWidth(name)
	}
	return strings.TrimRight(b.String(), " ")
}

// Legend renders "Less ■■■■■ More".
func Legend(theme calendar.Theme, lang locale.Language) string {
	var b strings.Builder
	b.WriteString(lang.T(locale.CalendarLess))
	b.WriteString(" ")
	for _, n := range calendar.LegendCounts {
		b.WriteString(Cell(calendar.TierFor(n), theme))
		b.WriteString(" ")
	}
	b.WriteString(lang.T(locale.CalendarMore))
	return b.String()
}

// FormatCalendar outputs the calendar grid with month and weekday labels
func (f *TextFormatter) FormatCalendar(d CalendarData, w io.Writer) error {
	grid := d.Grid()

	_, _ = titleColor.Fprintln(w, d.Lang.T(locale.CalendarTitle))
	fmt.Fprintln(w, d.Lang.ContributionsInYear(grid.Total))
	if d.Origin.Simulated() {
		_, _ = dimColor.Fprintln(w, d.Lang.T(locale.CalendarSimulated))
	}
	fmt.Fprintln(w)

	if len(grid.Weeks) == 0 {
		return nil
	}

	fmt.Fprintln(w, MonthRow(grid, d.Lang))
	labels := d.Lang.WeekdayLabels()
	for day := 0; day < 7; day++ {
		var row strings.Builder
		row.WriteString(format.PadRight(labels[day], format.DisplayWidth(labels[day]), rowLabelWidth))
		for wi, cells := range grid.Weeks {
			if day >= len(cells) || (f.Visible != nil && !f.Visible(wi)) {
				row.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			if f.Highlight != nil && f.Highlight(wi, day) {
				row.WriteString(hexColor(cells[day].Color).Add(color.Bold).Sprint(cursorGlyph))
			} else {
				row.WriteString(Cell(cells[day].Tier, d.Theme))
			}
			row.WriteString(" ")
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat(" ", rowLabelWidth)+Legend(d.Theme, d.Lang))
	return nil
}

// TimelineLines renders grouped activity as lines, without header or footer.
// urls runs parallel to lines and holds the link of the event on each line,
// or "" for headings.
func (f *TextFormatter) TimelineLines(d TimelineData) (lines, urls []string) {
	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}
	width := f.MessageWidth
	if width <= 0 {
		width = defaultMsgCols
	}

	add := func(line, url string) {
		lines = append(lines, line)
		urls = append(urls, url)
	}
	for gi, g := range activity.Aggregate(d.Events, d.Lang, d.Location) {
		if gi > 0 {
			add("", "")
		}
		add(titleColor.Sprint(g.Label), "")
		for _, r := range g.Repos {
			add(fmt.Sprintf("  %s %s",
				repoColor.Sprint(r.Repository),
				dimColor.Sprintf("(%s)", d.Lang.Commits(len(r.Events)))), "")
			for _, ev := range r.Events {
				msg, visible := format.TruncateToWidth(ev.Message, width)
				if f.Hyperlinks {
					msg = format.Hyperlink(msg, ev.URL)
				}
				line := fmt.Sprintf("    %s %s  %s", format.KindIcon(ev.Kind), format.PadRight(msg, visible, width),
					dimColor.Sprint(d.Lang.Relative(ev.Timestamp, now)))
				if stat := format.DiffStat(ev); stat != "" {
					line += "  " + addColor.Sprint(stat)
				}
				if ev.Branch != "" {
					line += "  " + dimColor.Sprint(ev.Branch)
				}
				add(line, ev.URL)
			}
		}
	}
	return lines, urls
}

// TimelineFooter returns the status line under the timeline.
func TimelineFooter(d TimelineData) string {
	switch {
	case len(d.Events) == 0:
		return d.Lang.T(locale.TimelineEmpty)
	case d.Pagination.IsLoadingMore:
		return d.Lang.T(locale.TimelineLoadMore)
	case !d.Pagination.HasMoreData:
		return d.Lang.T(locale.TimelineExhausted)
	}
	return ""
}

// FormatTimeline outputs the grouped activity timeline
func (f *TextFormatter) FormatTimeline(d TimelineData, w io.Writer) error {
	_, _ = titleColor.Fprintln(w, d.Lang.T(locale.TimelineTitle))
	_, _ = dimColor.Fprintln(w, d.Lang.T(locale.TimelineSubtitle))
	if d.Origin.Simulated() {
		_, _ = dimColor.Fprintln(w, d.Lang.T(locale.CalendarSimulated))
	}
	fmt.Fprintln(w)

	lines, _ := f.TimelineLines(d)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if footer := TimelineFooter(d); footer != "" {
		fmt.Fprintln(w)
		_, _ = dimColor.Fprintln(w, footer)
	}
	return nil
}
