// Package textutil measures and clips panel text in terminal columns.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks clipped text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Lines splits s on newlines, dropping a single trailing newline.
func Lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// MaxWidth returns the widest line in lines.
func MaxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if lw := Width(l); lw > w {
			w = lw
		}
	}
	return w
}

// Truncate clips s to maxWidth columns, ending in Ellipsis when clipped.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	avail := maxWidth - Width(Ellipsis)
	if avail < 0 {
		return Ellipsis
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > avail {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + Ellipsis
}

// Fit truncates or right-pads s to exactly width columns.
func Fit(s string, width int) string {
	if Width(s) >= width {
		return Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// Wrap hard-wraps s at width columns. Existing newlines are kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, line := range Lines(s) {
		if Width(line) <= width {
			out = append(out, line)
			continue
		}
		var b strings.Builder
		w := 0
		for _, r := range line {
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				out = append(out, b.String())
				b.Reset()
				w = 0
			}
			b.WriteRune(r)
			w += rw
		}
		out = append(out, b.String())
	}
	return out
}
