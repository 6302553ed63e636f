package tui

import (
	"strings"
	"testing"
)

func TestMaskTextCapsLength(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  int
	}{
		{"", 20, 0},
		{"abc", 20, 3},
		{"ünï", 20, 3},
		{strings.Repeat("x", 25), 20, 20},
		{strings.Repeat("x", 25), 0, 25},
	}
	for _, tt := range tests {
		got := maskText(tt.text, tt.limit)
		if strings.Count(got, "•") != tt.want || strings.Trim(got, "•") != "" {
			t.Fatalf("maskText(%q, %d) = %q, want %d bullets", tt.text, tt.limit, got, tt.want)
		}
	}
}

func TestWrapTextBreaksAtSpace(t *testing.T) {
	lines := wrapText("correct horse battery", 10)
	want := []string{"correct ", "horse ", "battery"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapTextHardBreak(t *testing.T) {
	lines := wrapText("abcdefgh", 3)
	if len(lines) != 3 || lines[0] != "abc" || lines[2] != "gh" {
		t.Fatalf("unexpected hard wrap %q", lines)
	}
}

func TestWrapTextShortLine(t *testing.T) {
	lines := wrapText("short", 10)
	if len(lines) != 1 || lines[0] != "short" {
		t.Fatalf("unexpected wrap %q", lines)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight must not truncate, got %q", got)
	}
}
