package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/output"
)

func tenWeeks() model.ContributionCalendar {
	start := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	var cal model.ContributionCalendar
	for w := 0; w < 10; w++ {
		week := model.ContributionWeek{FirstDay: start.AddDate(0, 0, 7*w)}
		for d := 0; d < 7; d++ {
			week.Days = append(week.Days, model.ContributionDay{
				Date:    week.FirstDay.AddDate(0, 0, d),
				Count:   d,
				Weekday: d,
			})
			cal.TotalContributions += d
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

func newTestCalendar(t *testing.T) CalendarModel {
	t.Helper()
	data := output.CalendarData{
		Username: "octocat",
		Lang:     locale.English,
		Theme:    calendar.ThemeDark,
		Layout:   calendar.DefaultOptions(),
	}
	load := func(context.Context) contrib.Result {
		return contrib.Result{Calendar: tenWeeks(), Origin: model.OriginSeeded}
	}
	return NewCalendarModel(context.Background(), data, load, WithRevealChunk(4))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, m CalendarModel) CalendarModel {
	t.Helper()
	msg := m.fetch()()
	updated, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected a reveal tick after loading")
	}
	return updated.(CalendarModel)
}

func TestCalendarModelLoading(t *testing.T) {
	m := newTestCalendar(t)
	if !strings.Contains(m.View(), "Loading contributions...") {
		t.Errorf("expected loading view, got %q", m.View())
	}

	m = loaded(t, m)
	if m.loading {
		t.Error("model still loading after calendarLoadedMsg")
	}
	if m.reveal.State() != calendar.RevealRevealing {
		t.Errorf("reveal state = %s, want revealing", m.reveal.State())
	}
	view := m.View()
	if !strings.Contains(view, "*Simulated based on profile data") {
		t.Error("seeded calendar should be marked as simulated")
	}
}

func TestCalendarModelRevealTicks(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	gen := m.reveal.Generation()

	// A tick from an older generation is ignored.
	updated, cmd := m.Update(revealTickMsg{gen: gen - 1})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	m = updated.(CalendarModel)
	if m.reveal.Loaded() != 0 {
		t.Errorf("loaded = %d after stale tick", m.reveal.Loaded())
	}

	ticks := 0
	for m.reveal.State() == calendar.RevealRevealing {
		updated, _ = m.Update(revealTickMsg{gen: gen})
		m = updated.(CalendarModel)
		ticks++
		if ticks > 10 {
			t.Fatal("reveal never completed")
		}
	}
	// 10 weeks in chunks of 4.
	if ticks != 3 {
		t.Errorf("reveal took %d ticks, want 3", ticks)
	}
	if !m.reveal.IsLoaded(9) {
		t.Error("last week should be loaded after completion")
	}
}

func TestCalendarModelCursor(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	if m.week != 9 || m.day != 6 {
		t.Fatalf("cursor = (%d,%d), want last day (9,6)", m.week, m.day)
	}

	for _, k := range []string{"h", "h", "k", "k"} {
		updated, _ := m.Update(key(k))
		m = updated.(CalendarModel)
	}
	if m.week != 7 || m.day != 4 {
		t.Errorf("cursor = (%d,%d), want (7,4)", m.week, m.day)
	}

	// Moving down is clamped to the last day of the week.
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(key("j"))
		m = updated.(CalendarModel)
	}
	if m.day != 6 {
		t.Errorf("day = %d, want 6", m.day)
	}

	m.reveal.Start(0) // complete immediately
	want := "Sat, Mar 2, 2024: 6 contributions"
	if got := m.Tooltip(); got != want {
		t.Errorf("Tooltip() = %q, want %q", got, want)
	}
}

func TestCalendarModelTooltipHiddenUntilRevealed(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	if tip := m.Tooltip(); tip != "" {
		t.Errorf("tooltip for unrevealed week = %q", tip)
	}
}

func TestCalendarModelOpen(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	var opened string
	m.open = func(url string) tea.Cmd {
		opened = url
		return nil
	}
	m.Update(key("o"))
	want := "https://github.com/users/octocat/contributions?to=2024-03-16"
	if opened != want {
		t.Errorf("opened %q, want %q", opened, want)
	}
}

func TestCalendarModelReloadCancelsReveal(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	gen := m.reveal.Generation()

	updated, cmd := m.Update(key("r"))
	m = updated.(CalendarModel)
	if cmd == nil || !m.loading {
		t.Fatal("reload should start loading")
	}
	if m.reveal.State() != calendar.RevealIdle {
		t.Errorf("reveal state = %s, want idle", m.reveal.State())
	}
	if _, cmd := m.Update(revealTickMsg{gen: gen}); cmd != nil {
		t.Error("tick from the cancelled reveal should be ignored")
	}
}

func TestCalendarModelThemeToggle(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	updated, _ := m.Update(key("t"))
	m = updated.(CalendarModel)
	if m.data.Theme != calendar.ThemeLight {
		t.Errorf("theme = %s, want light", m.data.Theme)
	}
	if got, want := m.grid.Weeks[0][1].Color, calendar.Tier(1).Color(calendar.ThemeLight); got != want {
		t.Errorf("cell color = %s, want %s", got, want)
	}
}

func TestCalendarModelThemeHook(t *testing.T) {
	var saved []calendar.Theme
	data := output.CalendarData{Username: "octocat", Lang: locale.English, Theme: calendar.ThemeDark}
	load := func(context.Context) contrib.Result { return contrib.Result{Calendar: tenWeeks()} }
	m := NewCalendarModel(context.Background(), data, load, WithThemeHook(func(th calendar.Theme) {
		saved = append(saved, th)
	}))

	_, cmd := m.Update(key("t"))
	if cmd == nil {
		t.Fatal("expected the hook to run as a command")
	}
	cmd()
	if len(saved) != 1 || saved[0] != calendar.ThemeLight {
		t.Errorf("saved = %v, want [light]", saved)
	}
}

func TestCalendarModelQuit(t *testing.T) {
	m := loaded(t, newTestCalendar(t))
	updated, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if updated.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
