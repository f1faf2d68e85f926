package contrib

import (
	"errors"
	"fmt"
	"time"

	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/model"
)

// ErrMalformed is returned when an upstream payload fails validation.
var ErrMalformed = errors.New("malformed response")

// NormalizeCalendar validates a GraphQL calendar and reshapes it into full
// Sunday-first weeks. The result always holds the 52 weeks ending with the
// week of the latest day: partial or missing weeks are filled with empty
// days, older weeks are dropped, and the total is recomputed.
func NormalizeCalendar(raw model.RawCalendar) (model.ContributionCalendar, error) {
	if len(raw.Weeks) == 0 {
		return model.ContributionCalendar{}, fmt.Errorf("%w: calendar has no weeks", ErrMalformed)
	}

	counts := make(map[string]int)
	var last time.Time
	for _, w := range raw.Weeks {
		for _, d := range w.Days {
			date, err := time.Parse(model.DateLayout, d.Date)
			if err != nil {
				return model.ContributionCalendar{}, fmt.Errorf("%w: day %q: %v", ErrMalformed, d.Date, err)
			}
			if d.Count == nil || *d.Count < 0 {
				return model.ContributionCalendar{}, fmt.Errorf("%w: day %s has no valid count", ErrMalformed, d.Date)
			}
			if d.Weekday == nil || *d.Weekday != int(date.Weekday()) {
				return model.ContributionCalendar{}, fmt.Errorf("%w: day %s has wrong weekday", ErrMalformed, d.Date)
			}
			key := date.Format(model.DateLayout)
			if _, dup := counts[key]; dup {
				return model.ContributionCalendar{}, fmt.Errorf("%w: duplicate day %s", ErrMalformed, d.Date)
			}
			counts[key] = *d.Count
			if date.After(last) {
				last = date
			}
		}
	}
	if len(counts) == 0 {
		return model.ContributionCalendar{}, fmt.Errorf("%w: calendar has no days", ErrMalformed)
	}

	end := model.SundayOnOrBefore(last)
	start := end.AddDate(0, 0, -(constants.CalendarWeeks-1)*model.DaysPerWeek)

	var cal model.ContributionCalendar
	for ws := start; !ws.After(end); ws = ws.AddDate(0, 0, model.DaysPerWeek) {
		week := model.ContributionWeek{FirstDay: ws, Days: make([]model.ContributionDay, model.DaysPerWeek)}
		for d := 0; d < model.DaysPerWeek; d++ {
			date := ws.AddDate(0, 0, d)
			week.Days[d] = model.ContributionDay{Date: date, Count: counts[date.Format(model.DateLayout)], Weekday: d}
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	cal.TotalContributions = cal.Sum()
	return cal, nil
}

// NormalizeProfile validates the fields needed to seed the generator.
func NormalizeProfile(raw model.RawProfile) (model.Profile, error) {
	if raw.PublicRepos == nil || *raw.PublicRepos < 0 {
		return model.Profile{}, fmt.Errorf("%w: profile %q has no public repository count", ErrMalformed, raw.Login)
	}
	if raw.CreatedAt == nil || raw.CreatedAt.IsZero() {
		return model.Profile{}, fmt.Errorf("%w: profile %q has no creation date", ErrMalformed, raw.Login)
	}
	return model.Profile{
		Login:       raw.Login,
		PublicRepos: *raw.PublicRepos,
		CreatedAt:   *raw.CreatedAt,
	}, nil
}
