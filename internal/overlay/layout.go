package overlay

import (
	"math"
	"strconv"
)

// DefaultGap is the spacing in cells between stacked panels and between a
// satellite and its parent.
const DefaultGap = 1

// Control glyphs.
const (
	ControlExpanded  = "—"
	ControlCollapsed = "+"
)

// controlCellWidth is the minimize glyph plus one cell of padding each side.
const controlCellWidth = 3

// Placement is a panel's position relative to its quadrant's anchor corner.
// Offset runs along the stacking axis away from the anchored edge; Cross runs
// along the other axis away from the anchored side.
type Placement struct {
	Visible bool
	Offset  int
	Cross   int
	Width   int
	Height  int
}

// LayoutInput is everything the layout engine reads.
type LayoutInput struct {
	Quadrant Quadrant
	// Panels in insertion order.
	Panels    []*Panel
	Hidden    map[*Panel]bool
	Minimized bool
	Width     int
	Height    int
	Gap       int
}

// Result is the computed layout of one quadrant.
type Result struct {
	Quadrant   Quadrant
	Placements map[string]Placement
	Control    Placement
	// Badge is the number of individually hidden panels.
	Badge        int
	BadgeVisible bool
	// Cursor is the stacking offset after the last slot, control included.
	Cursor int
}

// Of returns the placement of the named panel.
func (r Result) Of(name string) (Placement, bool) {
	p, ok := r.Placements[name]
	return p, ok
}

// ControlWidth returns the width of a control cell that shows badge.
func ControlWidth(badge int, badgeVisible bool) int {
	if !badgeVisible {
		return controlCellWidth
	}
	return controlCellWidth + 1 + len(strconv.Itoa(badge)) + 2
}

// MaxDimension is the smaller of width and height; sized panels scale
// against it so they stay square on any aspect ratio.
func MaxDimension(width, height int) int {
	return min(width, height)
}

// PanelSize returns the rendered size of p for a given max dimension.
func PanelSize(p *Panel, maxDim int) (w, h int) {
	if p.Size.Mode() == SizeNone {
		return p.NaturalSize()
	}
	frac := p.Size.Fraction
	if p.Size.Mode() == SizeExpandable && p.Expanded {
		frac = p.Size.ExpandFraction
	}
	s := int(math.Round(float64(maxDim) * frac))
	return s, s
}

// Layout places every panel of one quadrant. It is a pure function of in.
func Layout(in LayoutInput) Result {
	res := Result{
		Quadrant:   in.Quadrant,
		Placements: make(map[string]Placement, len(in.Panels)),
	}

	if in.Minimized {
		for _, p := range in.Panels {
			res.Placements[p.Name] = Placement{}
		}
		res.Control = Placement{
			Visible: true,
			Offset:  in.Height / 4,
			Width:   ControlWidth(0, false),
			Height:  1,
		}
		return res
	}

	var visible []*Panel
	for _, p := range in.Panels {
		if in.Hidden[p] {
			res.Placements[p.Name] = Placement{}
			res.Badge++
			continue
		}
		visible = append(visible, p)
	}
	res.BadgeVisible = res.Badge > 0

	isSatellite := func(p *Panel) bool {
		return p.Parent != nil && in.visible(p.Parent)
	}

	maxDim := MaxDimension(in.Width, in.Height)
	cursor := 0
	var satellites []*Panel
	for _, p := range visible {
		if isSatellite(p) {
			satellites = append(satellites, p)
			continue
		}
		w, h := PanelSize(p, maxDim)
		res.Placements[p.Name] = Placement{Visible: true, Offset: cursor, Width: w, Height: h}
		cursor += h + in.Gap
	}

	res.Control = Placement{
		Visible: true,
		Offset:  cursor,
		Width:   ControlWidth(res.Badge, res.BadgeVisible),
		Height:  1,
	}
	res.Cursor = cursor + res.Control.Height + in.Gap

	// Satellites resolve after the walk so a parent later in the order (after
	// a quadrant change) is already placed. Chains resolve parent-first.
	pinned := make(map[*Panel]bool)
	var pin func(p *Panel)
	pin = func(p *Panel) {
		if pinned[p] {
			return
		}
		pinned[p] = true
		parent := p.Parent
		if isSatellite(parent) {
			pin(parent)
		}
		pp := res.Placements[parent.Name]
		w, h := PanelSize(p, maxDim)
		res.Placements[p.Name] = Placement{
			Visible: true,
			Offset:  pp.Offset,
			Cross:   pp.Cross + pp.Width + in.Gap,
			Width:   w,
			Height:  h,
		}
	}
	for _, p := range satellites {
		pin(p)
	}
	return res
}

// visible reports whether p is a registered, non-hidden member of this stack.
func (in LayoutInput) visible(p *Panel) bool {
	if !p.Registered() || p.Quadrant != in.Quadrant || in.Hidden[p] {
		return false
	}
	for _, q := range in.Panels {
		if q == p {
			return true
		}
	}
	return false
}
