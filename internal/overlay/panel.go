package overlay

import (
	"math"
	"strings"

	"debugpanels/internal/meter"
	"debugpanels/internal/textutil"
)

// Kind is what a panel displays.
type Kind int

const (
	KindText Kind = iota
	KindMeter
	KindLink
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindMeter:
		return "meter"
	case KindLink:
		return "link"
	case KindControl:
		return "control"
	default:
		return "text"
	}
}

// SizeMode is how a panel is sized by the layout engine.
type SizeMode int

const (
	SizeNone SizeMode = iota
	SizeFixed
	SizeExpandable
)

// Size holds a panel's size fractions of the smaller viewport dimension.
// Fraction 0 means the panel takes its natural content size.
type Size struct {
	Fraction       float64
	ExpandFraction float64
}

// Mode derives the size mode from the fractions. NaN, infinite and
// non-positive fractions count as unset.
func (s Size) Mode() SizeMode {
	switch {
	case !validFraction(s.Fraction):
		return SizeNone
	case validFraction(s.ExpandFraction):
		return SizeExpandable
	default:
		return SizeFixed
	}
}

func validFraction(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// Style is the bounded set of per-panel visual overrides.
// Colors are lipgloss color strings ("196", "#ff0000"); empty keeps the default.
type Style struct {
	Foreground string
	Background string
	Bold       bool
}

// Entry is one logged line block with an optional color.
type Entry struct {
	Text  string
	Color string
}

// IsError reports whether the entry was logged with the error color.
func (e Entry) IsError() bool {
	return e.Color == ColorError
}

// ColorError is the log color that renders red and expands the default panel.
const ColorError = "error"

// Natural size limits for panels without a size fraction.
const (
	maxNaturalWidth = 48
	maxNaturalLines = 8
	// cells of horizontal padding around panel content
	panelPadding = 2
)

// Panel is the plain data record for one overlay panel. The Overlay owns
// mutation; renderers only read it.
type Panel struct {
	ID       string
	Name     string
	Quadrant Quadrant
	Kind     Kind
	Size     Size
	Expanded bool
	// Parent pins this panel beside another one while the parent is visible.
	Parent *Panel
	Style  Style

	Entries []Entry
	Meter   *meter.Canvas
	URL     string

	registered bool
}

// Registered reports whether the panel is still part of a quadrant stack.
func (p *Panel) Registered() bool {
	return p != nil && p.registered
}

// Text returns the panel's log text, one entry per line.
func (p *Panel) Text() string {
	parts := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		parts[i] = e.Text
	}
	return strings.Join(parts, "\n")
}

// Label is what a link panel displays.
func (p *Panel) Label() string {
	return p.Name
}

// NaturalSize is the panel's extent in cells when it declares no size.
func (p *Panel) NaturalSize() (w, h int) {
	switch p.Kind {
	case KindMeter:
		if p.Meter == nil {
			return panelPadding, 1
		}
		return p.Meter.Width() + panelPadding, p.Meter.Lines()
	case KindLink:
		return textutil.Width(p.Label()) + panelPadding, 1
	}
	var lines []string
	for _, e := range p.Entries {
		lines = append(lines, textutil.Lines(e.Text)...)
	}
	w = min(max(textutil.MaxWidth(lines), 1), maxNaturalWidth)
	h = min(max(len(lines), 1), maxNaturalLines)
	return w + panelPadding, h
}
