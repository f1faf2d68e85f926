package format

import (
	"fmt"

	"github.com/spiffcs/folio/internal/model"
)

// ChangeSize is a T-shirt size for the lines touched by an event.
type ChangeSize string

const (
	SizeXS ChangeSize = "XS"
	SizeS  ChangeSize = "S"
	SizeM  ChangeSize = "M"
	SizeL  ChangeSize = "L"
	SizeXL ChangeSize = "XL"
)

// SizeThresholds are inclusive upper bounds on additions+deletions.
type SizeThresholds struct {
	XS int
	S  int
	M  int
	L  int
}

// DefaultSizeThresholds suit commit-sized changes.
func DefaultSizeThresholds() SizeThresholds {
	return SizeThresholds{XS: 10, S: 50, M: 200, L: 500}
}

// SizeOf buckets a change by its total lines.
func SizeOf(additions, deletions int, t SizeThresholds) ChangeSize {
	switch total := additions + deletions; {
	case total <= t.XS:
		return SizeXS
	case total <= t.S:
		return SizeS
	case total <= t.M:
		return SizeM
	case total <= t.L:
		return SizeL
	default:
		return SizeXL
	}
}

// DiffStat renders "+12 -3 S" for events that carry line counts and "" for
// the rest.
func DiffStat(ev model.ActivityEvent) string {
	if ev.Additions == nil || ev.Deletions == nil {
		return ""
	}
	size := SizeOf(*ev.Additions, *ev.Deletions, DefaultSizeThresholds())
	return fmt.Sprintf("+%d -%d %s", *ev.Additions, *ev.Deletions, size)
}

// Kind icons shown in front of timeline entries.
const (
	CommitIcon      = "●"
	PullRequestIcon = "⇄"
)

// KindIcon returns the icon for an event kind.
func KindIcon(kind model.EventKind) string {
	if kind == model.KindPullRequest {
		return PullRequestIcon
	}
	return CommitIcon
}
