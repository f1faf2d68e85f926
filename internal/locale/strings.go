package locale

import "fmt"

// Key names an interface string.
type Key string

const (
	CalendarTitle      Key = "calendar.title"
	CalendarLoading    Key = "calendar.loading"
	CalendarSimulated  Key = "calendar.simulated"
	CalendarLess       Key = "calendar.less"
	CalendarMore       Key = "calendar.more"
	CalendarOpenHint   Key = "calendar.open_hint"
	TimelineTitle      Key = "timeline.title"
	TimelineSubtitle   Key = "timeline.subtitle"
	TimelineLoading    Key = "timeline.loading"
	TimelineLoadMore   Key = "timeline.load_more"
	TimelineExhausted  Key = "timeline.exhausted"
	TimelineEmpty      Key = "timeline.empty"
	TimelineViewCommit Key = "timeline.view_commits"
	KeyHelpQuit        Key = "help.quit"
)

var messages = map[Language]map[Key]string{
	English: {
		CalendarTitle:      "GitHub Contributions",
		CalendarLoading:    "Loading contributions...",
		CalendarSimulated:  "*Simulated based on profile data",
		CalendarLess:       "Less",
		CalendarMore:       "More",
		CalendarOpenHint:   "Press o to view on GitHub",
		TimelineTitle:      "GitHub Activity",
		TimelineSubtitle:   "Recent commits and pull requests",
		TimelineLoading:    "Loading activity...",
		TimelineLoadMore:   "Loading more activity...",
		TimelineExhausted:  "No more activity to show",
		TimelineEmpty:      "No recent activity",
		TimelineViewCommit: "View commits →",
		KeyHelpQuit:        "q: quit",
	},
	Spanish: {
		CalendarTitle:      "Contribuciones en GitHub",
		CalendarLoading:    "Cargando contribuciones...",
		CalendarSimulated:  "*Simulado a partir de los datos del perfil",
		CalendarLess:       "Menos",
		CalendarMore:       "Más",
		CalendarOpenHint:   "Pulsa o para verlo en GitHub",
		TimelineTitle:      "Actividad Reciente de GitHub",
		TimelineSubtitle:   "Commits y pull requests recientes",
		TimelineLoading:    "Cargando actividad...",
		TimelineLoadMore:   "Cargando más actividad...",
		TimelineExhausted:  "No hay más actividad para mostrar",
		TimelineEmpty:      "No hay actividad reciente",
		TimelineViewCommit: "Ver commits →",
		KeyHelpQuit:        "q: salir",
	},
}

// T returns the interface string for key, falling back to English.
func (l Language) T(key Key) string {
	if s, ok := messages[l.valid()][key]; ok {
		return s
	}
	return messages[English][key]
}

// ContributionsInYear renders the calendar headline.
func (l Language) ContributionsInYear(n int) string {
	if l.valid() == Spanish {
		return fmt.Sprintf("%s %s en el último año", l.Number(n), plural(n, "contribución", "contribuciones"))
	}
	return fmt.Sprintf("%s %s in the last year", l.Number(n), plural(n, "contribution", "contributions"))
}

// DayContributions renders a tooltip count such as "1 contribution".
func (l Language) DayContributions(n int) string {
	if l.valid() == Spanish {
		return fmt.Sprintf("%s %s", l.Number(n), plural(n, "contribución", "contribuciones"))
	}
	return fmt.Sprintf("%s %s", l.Number(n), plural(n, "contribution", "contributions"))
}

// Commits renders a repository bucket size such as "3 commits".
func (l Language) Commits(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "commit", "commits"))
}
