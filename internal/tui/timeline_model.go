package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/output"
)

// timelineThreshold is how close to the end, in lines, the view must be
// before the next page loads.
const timelineThreshold = 5

// headerLines is the space reserved above and below the viewport.
const headerLines = 6

// PageLoader loads one page of the timeline.
type PageLoader interface {
	Load(ctx context.Context, page int) (activity.Page, error)
	Origin() model.Origin
}

// pageLoadedMsg carries the result of loading a page.
type pageLoadedMsg struct {
	page   activity.Page
	number int
	err    error
}

// TimelineModel is the infinitely scrolling activity timeline.
type TimelineModel struct {
	ctx       context.Context
	newStream func() PageLoader
	stream    PageLoader
	scroll    *activity.Scroll
	data      output.TimelineData
	formatter *output.TextFormatter
	viewport  viewport.Model
	spinner   spinner.Model
	urls      []string
	initial   bool
	ready     bool
	quitting  bool
	open      func(url string) tea.Cmd
}

// NewTimelineModel creates a timeline view. newStream is called on start
// and on every reload so a fallback to generated data never outlives it.
func NewTimelineModel(ctx context.Context, data output.TimelineData, newStream func() PageLoader) TimelineModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	scroll := activity.NewScroll()
	scroll.Threshold = timelineThreshold

	return TimelineModel{
		ctx:       ctx,
		newStream: newStream,
		stream:    newStream(),
		scroll:    scroll,
		data:      data,
		formatter: &output.TextFormatter{Hyperlinks: true},
		viewport:  viewport.New(80, 20),
		spinner:   s,
		initial:   true,
		open:      openURL,
	}
}

// Init implements tea.Model
func (m TimelineModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPage(1))
}

func (m TimelineModel) loadPage(n int) tea.Cmd {
	ctx, stream := m.ctx, m.stream
	return func() tea.Msg {
		page, err := stream.Load(ctx, n)
		return pageLoadedMsg{page: page, number: n, err: err}
	}
}

// Update implements tea.Model
func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.stream = m.newStream()
			m.scroll.Reset()
			m.data.Events = nil
			m.initial = true
			m.refresh()
			return m, tea.Batch(m.spinner.Tick, m.loadPage(1))
		case "o", "enter":
			if url := m.topURL(); url != "" {
				return m, m.open(url)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines, 1)
		m.formatter.MessageWidth = max(msg.Width-40, 20)
		m.ready = true
		m.refresh()
		return m, m.maybeLoad()

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePage(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoad())
}

// handlePage applies a loaded page. Page 1 replaces the timeline; later
// pages go through the scroll controller.
func (m TimelineModel) handlePage(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.number == 1 {
		if !m.initial {
			return m, nil
		}
		m.initial = false
		if msg.err != nil {
			log.Warn("failed to load activity", "error", msg.err)
		}
		m.data.Events = msg.page.Events
		m.data.Origin = msg.page.Origin
		if len(msg.page.Events) == 0 {
			m.scroll.Exhaust()
		}
		m.refresh()
		return m, m.maybeLoad()
	}

	if events := m.scroll.Finish(msg.number, msg.page.Events, msg.err); len(events) > 0 {
		m.data.Events = append(m.data.Events, events...)
	}
	m.refresh()
	if msg.err != nil {
		// Wait for the next scroll before retrying.
		return m, nil
	}
	return m, m.maybeLoad()
}

// maybeLoad starts the next page when the view is near its end.
func (m TimelineModel) maybeLoad() tea.Cmd {
	if m.initial || !m.ready {
		return nil
	}
	page, ok := m.scroll.Trigger(m.metrics())
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadPage(page))
}

func (m TimelineModel) metrics() activity.ScrollMetrics {
	return activity.ScrollMetrics{
		Top:          m.viewport.YOffset,
		ClientHeight: m.viewport.Height,
		ScrollHeight: m.viewport.TotalLineCount(),
	}
}

func (m TimelineModel) loading() bool {
	return m.initial || m.scroll.Status() == activity.ScrollLoading
}

// refresh re-renders the viewport content from the current events.
func (m *TimelineModel) refresh() {
	m.data.Pagination = m.scroll.State()
	m.data.Now = time.Now()
	lines, urls := m.formatter.TimelineLines(m.data)
	m.urls = urls
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// topURL returns the link of the first event visible in the viewport.
func (m TimelineModel) topURL() string {
	for i := m.viewport.YOffset; i < len(m.urls); i++ {
		if m.urls[i] != "" {
			return m.urls[i]
		}
	}
	return ""
}

// Pagination returns the current pagination snapshot.
func (m TimelineModel) Pagination() model.ScrollPaginationState {
	return m.scroll.State()
}

// Events returns the loaded events, newest first within each page.
func (m TimelineModel) Events() []model.ActivityEvent {
	return m.data.Events
}

// View implements tea.Model
func (m TimelineModel) View() string {
	if m.quitting {
		return ""
	}
	lang := m.data.Lang

	var b strings.Builder
	b.WriteString(userStyle.Render(lang.T(locale.TimelineTitle)))
	b.WriteString("  ")
	b.WriteString(taskDimStyle.Render(lang.T(locale.TimelineSubtitle)))
	if m.data.Origin.Simulated() {
		b.WriteString("  ")
		b.WriteString(messageStyle.Render(lang.T(locale.CalendarSimulated)))
	}
	b.WriteString("\n\n")

	if m.initial {
		b.WriteString("  " + m.spinner.View() + " " + lang.T(locale.TimelineLoading) + "\n")
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	d := m.data
	d.Pagination = m.scroll.State()
	switch footer := output.TimelineFooter(d); {
	case m.scroll.Status() == activity.ScrollLoading:
		b.WriteString(m.spinner.View() + " " + messageStyle.Render(footer))
	case footer != "":
		b.WriteString(messageStyle.Render(footer))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: scroll  o: open  r: reload  " + lang.T(locale.KeyHelpQuit)))
	b.WriteString("\n")
	return b.String()
}
