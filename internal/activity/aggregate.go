package activity

import (
	"time"

	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/model"
)

// RepoGroup holds the events of one repository on one day, in input order.
type RepoGroup struct {
	Repository string                `json:"repository"`
	Events     []model.ActivityEvent `json:"events"`
}

// DateGroup holds every repository bucket that shares a formatted date.
type DateGroup struct {
	Label string      `json:"date"`
	Repos []RepoGroup `json:"repositories"`
}

// Count returns the number of events in the group.
func (g DateGroup) Count() int {
	n := 0
	for _, r := range g.Repos {
		n += len(r.Events)
	}
	return n
}

// Aggregate groups events by their long-form date in lang, evaluated in loc,
// then by repository. Groups appear in the order their first event does and
// events keep their input order; nothing is sorted or dropped.
func Aggregate(events []model.ActivityEvent, lang locale.Language, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.Local
	}
	var groups []DateGroup
	dateIdx := make(map[string]int)
	repoIdx := make(map[string]map[string]int)

	for _, ev := range events {
		label := lang.LongDate(ev.Timestamp.In(loc))
		di, ok := dateIdx[label]
		if !ok {
			di = len(groups)
			dateIdx[label] = di
			repoIdx[label] = make(map[string]int)
			groups = append(groups, DateGroup{Label: label})
		}
		ri, ok := repoIdx[label][ev.Repository]
		if !ok {
			ri = len(groups[di].Repos)
			repoIdx[label][ev.Repository] = ri
			groups[di].Repos = append(groups[di].Repos, RepoGroup{Repository: ev.Repository})
		}
		groups[di].Repos[ri].Events = append(groups[di].Repos[ri].Events, ev)
	}
	return groups
}
