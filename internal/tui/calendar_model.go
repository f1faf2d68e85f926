package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/output"
)

// CalendarLoader resolves the calendar to display. It must always return
// a usable result.
type CalendarLoader func(ctx context.Context) contrib.Result

// calendarLoadedMsg carries a finished load.
type calendarLoadedMsg struct {
	result contrib.Result
}

// revealTickMsg advances the reveal scheduled under gen.
type revealTickMsg struct {
	gen int
}

// CalendarModel is the interactive contribution calendar.
type CalendarModel struct {
	ctx      context.Context
	load     CalendarLoader
	data     output.CalendarData
	grid     calendar.Grid
	reveal   *calendar.Reveal
	interval time.Duration
	spinner  spinner.Model
	loading  bool

	week, day int

	statusMsg string
	quitting  bool
	open      func(url string) tea.Cmd
	onTheme   func(calendar.Theme)
}

// CalendarOption configures a CalendarModel.
type CalendarOption func(*CalendarModel)

// WithRevealInterval sets the delay between reveal ticks.
func WithRevealInterval(d time.Duration) CalendarOption {
	return func(m *CalendarModel) {
		m.interval = d
	}
}

// WithRevealChunk sets how many weeks each tick reveals.
func WithRevealChunk(n int) CalendarOption {
	return func(m *CalendarModel) {
		m.reveal = calendar.NewReveal(n)
	}
}

// WithThemeHook is called with the new theme after every toggle.
func WithThemeHook(fn func(calendar.Theme)) CalendarOption {
	return func(m *CalendarModel) {
		m.onTheme = fn
	}
}

// NewCalendarModel creates a calendar view. data supplies the user, language,
// theme and layout; its calendar is replaced by whatever load returns.
func NewCalendarModel(ctx context.Context, data output.CalendarData, load CalendarLoader, opts ...CalendarOption) CalendarModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := CalendarModel{
		ctx:      ctx,
		load:     load,
		data:     data,
		reveal:   calendar.NewReveal(constants.RevealChunk),
		interval: constants.RevealInterval,
		spinner:  s,
		loading:  true,
		open:     openURL,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model
func (m CalendarModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m CalendarModel) fetch() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		return calendarLoadedMsg{result: load(ctx)}
	}
}

func (m CalendarModel) tick(gen int) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

// Update implements tea.Model
func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case calendarLoadedMsg:
		m.loading = false
		m.data.Calendar = msg.result.Calendar
		m.data.Origin = msg.result.Origin
		m.grid = m.data.Grid()
		m.placeCursor()
		gen := m.reveal.Start(len(m.grid.Weeks))
		if m.reveal.State() != calendar.RevealRevealing {
			return m, nil
		}
		return m, m.tick(gen)

	case revealTickMsg:
		if !m.reveal.Tick(msg.gen) || m.reveal.State() != calendar.RevealRevealing {
			return m, nil
		}
		return m, m.tick(msg.gen)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// placeCursor puts the cursor on the most recent day.
func (m *CalendarModel) placeCursor() {
	m.week, m.day = 0, 0
	if n := len(m.grid.Weeks); n > 0 {
		m.week = n - 1
		m.day = max(len(m.grid.Weeks[n-1])-1, 0)
	}
}

// handleKey processes keyboard input
func (m CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.reveal.Cancel()
		return m, tea.Quit

	case "r":
		m.reveal.Cancel()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch())

	case "t":
		if m.data.Theme == calendar.ThemeDark {
			m.data.Theme = calendar.ThemeLight
		} else {
			m.data.Theme = calendar.ThemeDark
		}
		m.grid = m.data.Grid()
		if m.onTheme == nil {
			return m, nil
		}
		theme, hook := m.data.Theme, m.onTheme
		return m, func() tea.Msg {
			hook(theme)
			return nil
		}
	}

	if m.loading || len(m.grid.Weeks) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "h", "left":
		if m.week > 0 {
			m.week--
		}
	case "l", "right":
		if m.week < len(m.grid.Weeks)-1 {
			m.week++
		}
	case "k", "up":
		if m.day > 0 {
			m.day--
		}
	case "j", "down":
		m.day++
	case "o", "enter":
		cell, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.data.Username == "" {
			m.statusMsg = "No profile to open"
			return m, clearStatusAfter(2 * time.Second)
		}
		return m, m.open(calendar.DayURL(m.data.Username, cell.Date))
	}
	m.day = max(min(m.day, len(m.grid.Weeks[m.week])-1), 0)
	return m, nil
}

// selected returns the cell under the cursor.
func (m CalendarModel) selected() (calendar.Cell, bool) {
	if m.week < 0 || m.week >= len(m.grid.Weeks) {
		return calendar.Cell{}, false
	}
	cells := m.grid.Weeks[m.week]
	if m.day < 0 || m.day >= len(cells) {
		return calendar.Cell{}, false
	}
	return cells[m.day], true
}

// Tooltip describes the selected day, for example "Thu, Jan 4, 2024: 3 contributions".
func (m CalendarModel) Tooltip() string {
	cell, ok := m.selected()
	if !ok || !m.reveal.IsLoaded(m.week) {
		return ""
	}
	return m.data.Lang.TooltipDate(cell.Date) + ": " + m.data.Lang.DayContributions(cell.Count)
}

// View implements tea.Model
func (m CalendarModel) View() string {
	if m.quitting {
		return ""
	}
	lang := m.data.Lang
	if m.loading {
		return "  " + m.spinner.View() + " " + lang.T(locale.CalendarLoading) + "\n"
	}

	var b strings.Builder
	f := &output.TextFormatter{
		Visible: m.reveal.IsLoaded,
		Highlight: func(week, day int) bool {
			return week == m.week && day == m.day
		},
	}
	_ = f.FormatCalendar(m.data, &b)

	b.WriteString("\n")
	if tip := m.Tooltip(); tip != "" {
		b.WriteString(tooltipStyle.Render(tip))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("←/→/↑/↓: move  " + lang.T(locale.CalendarOpenHint) + "  r: reload  t: theme  " + lang.T(locale.KeyHelpQuit)))
	b.WriteString("\n")
	return b.String()
}
