package output

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/model"
)

// HTMLFormatter renders standalone ECharts pages.
type HTMLFormatter struct{}

const (
	heatmapHeight  = "260px"
	timelineHeight = "420px"
	// Counts at or above this value get the darkest color.
	heatmapCeiling = 9
)

var backgrounds = map[calendar.Theme]string{
	calendar.ThemeDark:  "#0d1117",
	calendar.ThemeLight: "#ffffff",
}

var textColors = map[calendar.Theme]string{
	calendar.ThemeDark:  "#8b949e",
	calendar.ThemeLight: "#57606a",
}

// weekAxis labels every week column, naming the column where a month begins.
func weekAxis(grid calendar.Grid, lang locale.Language) []string {
	axis := make([]string, len(grid.Weeks))
	for _, l := range grid.Labels {
		if l.WeekIndex < len(axis) {
			axis[l.WeekIndex] = lang.MonthShort(l.Month)
		}
	}
	return axis
}

// heatmapData flattens the grid to [week, weekday, count] triples. Rows
// count down from Sunday at the top.
func heatmapData(grid calendar.Grid) []opts.HeatMapData {
	var data []opts.HeatMapData
	for wi, cells := range grid.Weeks {
		for _, c := range cells {
			data = append(data, opts.HeatMapData{
				Name:  c.Date.Format(model.DateLayout),
				Value: []any{wi, 6 - c.Weekday, c.Count},
			})
		}
	}
	return data
}

// CalendarChart builds the contribution heatmap.
func CalendarChart(d CalendarData) *charts.HeatMap {
	grid := d.Grid()
	palette := calendar.Palette(d.Theme)

	labels := d.Lang.WeekdayLabels()
	yAxis := make([]string, len(labels))
	for i, l := range labels {
		yAxis[len(labels)-1-i] = l
	}

	subtitle := d.Lang.ContributionsInYear(grid.Total)
	if d.Origin.Simulated() {
		subtitle += "  " + d.Lang.T(locale.CalendarSimulated)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       fmt.Sprintf("%s · %s", d.Username, d.Lang.T(locale.CalendarTitle)),
			Width:           "100%",
			Height:          heatmapHeight,
			BackgroundColor: backgrounds[d.Theme],
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         d.Lang.T(locale.CalendarTitle),
			Subtitle:      subtitle,
			TitleStyle:    &opts.TextStyle{Color: textColors[d.Theme]},
			SubtitleStyle: &opts.TextStyle{Color: textColors[d.Theme]},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      weekAxis(grid, d.Lang),
			AxisLabel: &opts.AxisLabel{Interval: "0", Color: textColors[d.Theme]},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      yAxis,
			AxisLabel: &opts.AxisLabel{Interval: "0", Color: textColors[d.Theme]},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:       0,
			Max:       heatmapCeiling,
			InRange:   &opts.VisualMapInRange{Color: palette[:]},
			Orient:    "horizontal",
			Left:      "right",
			Bottom:    "0",
			TextStyle: &opts.TextStyle{Color: textColors[d.Theme]},
		}),
		charts.WithGridOpts(opts.Grid{Left: "40", Right: "10", Top: "60", Bottom: "50"}),
	)
	hm.AddSeries(d.Username, heatmapData(grid))
	return hm
}

// TimelineChart stacks commits and pull requests per day group.
func TimelineChart(d TimelineData) *charts.Bar {
	groups := activity.Aggregate(d.Events, d.Lang, d.Location)

	// Oldest on the left.
	dates := make([]string, len(groups))
	commits := make([]opts.BarData, len(groups))
	pulls := make([]opts.BarData, len(groups))
	for i, g := range groups {
		at := len(groups) - 1 - i
		var c, p int
		for _, r := range g.Repos {
			for _, ev := range r.Events {
				if ev.Kind == model.KindPullRequest {
					p++
				} else {
					c++
				}
			}
		}
		dates[at] = g.Label
		commits[at] = opts.BarData{Value: c}
		pulls[at] = opts.BarData{Value: p}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s · %s", d.Username, d.Lang.T(locale.TimelineTitle)),
			Width:     "100%",
			Height:    timelineHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    d.Lang.T(locale.TimelineTitle),
			Subtitle: d.Lang.T(locale.TimelineSubtitle),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
	)
	bar.SetXAxis(dates).
		AddSeries(string(model.KindCommit), commits, charts.WithBarChartOpts(opts.BarChart{Stack: "activity"})).
		AddSeries(string(model.KindPullRequest), pulls, charts.WithBarChartOpts(opts.BarChart{Stack: "activity"}))
	return bar
}

// FormatCalendar outputs the calendar as an HTML heatmap
func (f *HTMLFormatter) FormatCalendar(d CalendarData, w io.Writer) error {
	return CalendarChart(d).Render(w)
}

// FormatTimeline outputs the timeline as a daily HTML chart
func (f *HTMLFormatter) FormatTimeline(d TimelineData, w io.Writer) error {
	return TimelineChart(d).Render(w)
}
