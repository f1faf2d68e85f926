// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI SGR sequences and OSC 8 hyperlinks.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of s in terminal columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth shortens s to at most maxWidth visible columns, keeping
// escape sequences intact and ending with an ellipsis. It returns the
// result and its visible width.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	width := DisplayWidth(s)
	if width <= maxWidth {
		return s, width
	}
	if maxWidth <= 0 {
		return "", 0
	}

	target := maxWidth - runewidth.StringWidth(Ellipsis)
	matches := ansiRegex.FindAllStringIndex(s, -1)

	var b strings.Builder
	visible, pos, m := 0, 0, 0
	styled := false
	for pos < len(s) {
		if m < len(matches) && pos == matches[m][0] {
			b.WriteString(s[matches[m][0]:matches[m][1]])
			styled = true
			pos = matches[m][1]
			m++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[pos:])
		rw := runewidth.RuneWidth(r)
		if visible+rw > target {
			break
		}
		b.WriteString(s[pos : pos+size])
		visible += rw
		pos += size
	}
	b.WriteString(Ellipsis)
	if styled {
		b.WriteString("\x1b[0m")
	}
	return b.String(), visible + runewidth.StringWidth(Ellipsis)
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink.
func Hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
