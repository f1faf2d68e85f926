package format

import (
	"testing"

	"github.com/spiffcs/folio/internal/model"
)

func TestStripAnsi(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no ansi", "hello", "hello"},
		{"single color", "\x1b[31mred\x1b[0m", "red"},
		{"truecolor", "\x1b[38;2;57;211;83m■\x1b[0m", "■"},
		{"hyperlink", Hyperlink("repo", "https://github.com/o/r"), "repo"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripAnsi(tt.input); got != tt.expected {
				t.Errorf("StripAnsi(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"with ansi", "\x1b[31mred\x1b[0m", 3},
		{"accented", "contribución", 12},
		{"wide chars", "日本語", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.input); got != tt.expected {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxWidth  int
		wantPlain string
		wantWidth int
	}{
		{"fits", "short", 10, "short", 5},
		{"exact", "exactly10!", 10, "exactly10!", 10},
		{"truncated", "Add internationalization support", 10, "Add inter…", 10},
		{"wide", "日本語テキスト", 7, "日本語…", 7},
		{"colored", "\x1b[32mgreen text here\x1b[0m", 6, "green…", 6},
		{"zero", "anything", 0, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, width := TruncateToWidth(tt.input, tt.maxWidth)
			if plain := StripAnsi(got); plain != tt.wantPlain {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, plain, tt.wantPlain)
			}
			if width != tt.wantWidth {
				t.Errorf("width = %d, want %d", width, tt.wantWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 2, 5); got != "ab   " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 6, 3); got != "abcdef" {
		t.Errorf("PadRight() should not shrink, got %q", got)
	}
}

func TestSizeOf(t *testing.T) {
	th := DefaultSizeThresholds()
	tests := []struct {
		add, del int
		want     ChangeSize
	}{
		{0, 0, SizeXS},
		{5, 5, SizeXS},
		{40, 10, SizeS},
		{150, 0, SizeM},
		{300, 200, SizeL},
		{1000, 1, SizeXL},
	}
	for _, tt := range tests {
		if got := SizeOf(tt.add, tt.del, th); got != tt.want {
			t.Errorf("SizeOf(%d, %d) = %s, want %s", tt.add, tt.del, got, tt.want)
		}
	}
}

func TestDiffStat(t *testing.T) {
	a, d := 12, 3
	if got := DiffStat(model.ActivityEvent{Additions: &a, Deletions: &d}); got != "+12 -3 S" {
		t.Errorf("DiffStat() = %q", got)
	}
	if got := DiffStat(model.ActivityEvent{}); got != "" {
		t.Errorf("DiffStat() without counts = %q", got)
	}
}

func TestKindIcon(t *testing.T) {
	if KindIcon(model.KindCommit) != CommitIcon || KindIcon(model.KindPullRequest) != PullRequestIcon {
		t.Error("unexpected kind icons")
	}
}
