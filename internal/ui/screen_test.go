package ui

import (
	"strings"
	"testing"
)

func TestScreen_Place(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		x, y  int
		block string
		want  string
	}{
		{"inside", "", 2, 0, "ab", "  ab "},
		{"clip right", "", 3, 0, "abcd", "   ab"},
		{"clip left", "", -2, 0, "abcd", "cd   "},
		{"over base", "hello", 1, 0, "Z", "hZllo"},
		{"below screen", "hello", 0, 3, "Z", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 1, tt.base)
			s.Place(tt.x, tt.y, tt.block)
			if got := s.String(); got != tt.want {
				t.Errorf("Place(%d,%d,%q) = %q, want %q", tt.x, tt.y, tt.block, got, tt.want)
			}
		})
	}
}

func TestScreen_MultilineBlock(t *testing.T) {
	s := NewScreen(4, 3, "abcd\nefgh")
	s.Place(1, 1, "XY\nZW")
	want := []string{"abcd", "eXYh", " ZW "}
	if got := strings.Split(s.String(), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("screen = %q, want %q", got, want)
	}
}

func TestNewScreen_TruncatesBase(t *testing.T) {
	s := NewScreen(3, 1, "abcdef\nignored")
	if got := s.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}
}
