// Package locale formats dates, numbers and interface strings in the two
// languages the portfolio ships with.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Language is a supported interface language.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// Default is used when no preference or environment hint is available.
const Default = English

// Parse validates a language code.
func Parse(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Spanish:
		return Spanish, nil
	default:
		return "", fmt.Errorf("invalid language %q: use en or es", s)
	}
}

// Detect picks a language from a POSIX locale string such as $LANG
// ("es_ES.UTF-8"). Anything that is not Spanish resolves to English.
func Detect(posix string) Language {
	if strings.HasPrefix(strings.ToLower(posix), "es") {
		return Spanish
	}
	return Default
}

var (
	longMonths = map[Language][12]string{
		English: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		Spanish: {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	}
	shortMonths = map[Language][12]string{
		English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Spanish: {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	}
	shortWeekdays = map[Language][7]string{
		English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Spanish: {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	}
)

func (l Language) valid() Language {
	if l == Spanish {
		return Spanish
	}
	return English
}

// MonthShort returns the abbreviated month name used for calendar labels.
func (l Language) MonthShort(m time.Month) string {
	return shortMonths[l.valid()][m-1]
}

// LongDate renders "January 4, 2024" or "4 de enero de 2024". It is the
// timeline grouping key, so it must only depend on the calendar date.
func (l Language) LongDate(t time.Time) string {
	month := longMonths[l.valid()][t.Month()-1]
	if l.valid() == Spanish {
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

// ShortDate renders "Jan 4, 2024" or "4 ene 2024".
func (l Language) ShortDate(t time.Time) string {
	month := l.MonthShort(t.Month())
	if l.valid() == Spanish {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

// TooltipDate renders "Thu, Jan 4, 2024" or "jue, 4 ene 2024".
func (l Language) TooltipDate(t time.Time) string {
	return shortWeekdays[l.valid()][t.Weekday()] + ", " + l.ShortDate(t)
}

// Relative describes how long ago t was: hours within a day, days within a
// week, and a short date beyond that.
func (l Language) Relative(t, now time.Time) string {
	hours := int(now.Sub(t).Hours())
	es := l.valid() == Spanish
	switch {
	case hours < 1:
		if es {
			return "hace menos de 1 hora"
		}
		return "less than an hour ago"
	case hours < 24:
		if es {
			return fmt.Sprintf("hace %d %s", hours, plural(hours, "hora", "horas"))
		}
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour", "hours"))
	}
	days := hours / 24
	if days < 7 {
		if es {
			return fmt.Sprintf("hace %d %s", days, plural(days, "día", "días"))
		}
		return fmt.Sprintf("%d %s ago", days, plural(days, "day", "days"))
	}
	return l.ShortDate(t)
}

// Number groups thousands the way the language does: 1,234 or 1.234.
func (l Language) Number(n int) string {
	if l.valid() == Spanish {
		return humanize.FormatInteger("#.###,", n)
	}
	return humanize.Comma(int64(n))
}

// WeekdayLabels returns row labels for the calendar, shown on Mon, Wed and Fri.
func (l Language) WeekdayLabels() [7]string {
	names := shortWeekdays[l.valid()]
	var labels [7]string
	for _, d := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		labels[d] = names[d]
	}
	return labels
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
