package locale

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{"ES", Spanish, false},
		{" es ", Spanish, false},
		{"fr", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]Language{
		"es_ES.UTF-8": Spanish,
		"es":          Spanish,
		"en_US.UTF-8": English,
		"C":           English,
		"":            English,
	}
	for in, want := range tests {
		if got := Detect(in); got != want {
			t.Errorf("Detect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		fn   func(time.Time) string
		want string
	}{
		{"long en", English.LongDate, "January 4, 2024"},
		{"long es", Spanish.LongDate, "4 de enero de 2024"},
		{"short en", English.ShortDate, "Jan 4, 2024"},
		{"short es", Spanish.ShortDate, "4 ene 2024"},
		{"tooltip en", English.TooltipDate, "Thu, Jan 4, 2024"},
		{"tooltip es", Spanish.TooltipDate, "jue, 4 ene 2024"},
		{"unknown falls back to en", Language("de").LongDate, "January 4, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(d); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago    time.Duration
		en, es string
	}{
		{10 * time.Minute, "less than an hour ago", "hace menos de 1 hora"},
		{time.Hour, "1 hour ago", "hace 1 hora"},
		{5 * time.Hour, "5 hours ago", "hace 5 horas"},
		{24 * time.Hour, "1 day ago", "hace 1 día"},
		{6 * 24 * time.Hour, "6 days ago", "hace 6 días"},
		{7 * 24 * time.Hour, "Jun 8, 2024", "8 jun 2024"},
	}
	for _, tt := range tests {
		ts := now.Add(-tt.ago)
		if got := English.Relative(ts, now); got != tt.en {
			t.Errorf("English.Relative(-%v) = %q, want %q", tt.ago, got, tt.en)
		}
		if got := Spanish.Relative(ts, now); got != tt.es {
			t.Errorf("Spanish.Relative(-%v) = %q, want %q", tt.ago, got, tt.es)
		}
	}
}

func TestNumber(t *testing.T) {
	if got := English.Number(1234); got != "1,234" {
		t.Errorf("English.Number(1234) = %q, want 1,234", got)
	}
	if got := Spanish.Number(1234); got != "1.234" {
		t.Errorf("Spanish.Number(1234) = %q, want 1.234", got)
	}
	if got := English.Number(7); got != "7" {
		t.Errorf("English.Number(7) = %q, want 7", got)
	}
}

func TestStrings(t *testing.T) {
	if got := Spanish.T(TimelineTitle); got != "Actividad Reciente de GitHub" {
		t.Errorf("Spanish.T(TimelineTitle) = %q", got)
	}
	if got := Language("xx").T(CalendarLess); got != "Less" {
		t.Errorf("fallback T(CalendarLess) = %q, want Less", got)
	}
	if got := English.ContributionsInYear(1); got != "1 contribution in the last year" {
		t.Errorf("ContributionsInYear(1) = %q", got)
	}
	if got := Spanish.DayContributions(3); got != "3 contribuciones" {
		t.Errorf("DayContributions(3) = %q", got)
	}
}

func TestWeekdayLabels(t *testing.T) {
	got := English.WeekdayLabels()
	want := [7]string{"", "Mon", "", "Wed", "", "Fri", ""}
	if got != want {
		t.Errorf("WeekdayLabels() = %v, want %v", got, want)
	}
}
