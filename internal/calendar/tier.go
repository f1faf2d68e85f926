// Package calendar lays out a contribution calendar: intensity tiers, the
// cell grid, GitHub-style month labels and the progressive reveal schedule.
package calendar

import (
	"fmt"
	"strings"
)

// Theme selects the color palette used for contribution tiers.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeDark, ThemeLight:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q: use dark or light", s)
	}
}

// Tier is the intensity bucket of a day, from 0 (no contributions) to 4.
type Tier int

// TierCount is the number of intensity tiers.
const TierCount = 5

// TierFor maps a contribution count to its tier: 0, 1-2, 3-5, 6-8, 9+.
func TierFor(count int) Tier {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 8:
		return 3
	default:
		return 4
	}
}

var palettes = map[Theme][TierCount]string{
	ThemeDark:  {"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
	ThemeLight: {"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
}

// Palette returns the five tier colors for a theme. Unknown themes get the dark palette.
func Palette(theme Theme) [TierCount]string {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeDark]
}

// Color returns the hex color of the tier in the given theme.
func (t Tier) Color(theme Theme) string {
	if t < 0 || int(t) >= TierCount {
		t = 0
	}
	return Palette(theme)[t]
}

// LegendCounts holds one representative count per tier, lowest first.
var LegendCounts = [TierCount]int{0, 1, 3, 6, 9}
