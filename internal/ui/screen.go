package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Screen is a width×height grid of (possibly styled) text lines. Blocks are
// pasted over it cell-accurately.
type Screen struct {
	width  int
	height int
	lines  []string
}

// NewScreen returns a blank screen with base drawn at the top-left corner.
func NewScreen(width, height int, base string) *Screen {
	width, height = max(width, 0), max(height, 0)
	s := &Screen{width: width, height: height, lines: make([]string, height)}
	var baseLines []string
	if base != "" {
		baseLines = strings.Split(base, "\n")
	}
	for y := range s.lines {
		line := ""
		if y < len(baseLines) {
			line = ansi.Truncate(baseLines[y], width, "")
		}
		s.lines[y] = line + strings.Repeat(" ", width-ansi.StringWidth(line))
	}
	return s
}

// Place pastes block with its top-left corner at (x, y). Parts outside the
// screen are clipped.
func (s *Screen) Place(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= s.height {
			continue
		}
		w := ansi.StringWidth(line)
		left, right := 0, w
		if x < 0 {
			left = -x
		}
		if x+w > s.width {
			right = s.width - x
		}
		if right <= left {
			continue
		}
		seg := ansi.Cut(line, left, right)
		start := x + left
		end := start + (right - left)
		base := s.lines[row]
		s.lines[row] = ansi.Truncate(base, start, "") + seg + ansi.TruncateLeft(base, end, "")
	}
}

// String joins the screen lines.
func (s *Screen) String() string {
	return strings.Join(s.lines, "\n")
}
