package overlay

import "strings"

// Quadrant identifies a screen corner.
type Quadrant int

const (
	BottomRight Quadrant = iota
	BottomLeft
	TopRight
	TopLeft
)

// Quadrants lists every quadrant in relayout order.
var Quadrants = []Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

var quadrantNames = map[Quadrant]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

// quadrantAliases maps normalized spellings (lowercase, no separators).
var quadrantAliases = map[string]Quadrant{
	"topleft":     TopLeft,
	"lefttop":     TopLeft,
	"tl":          TopLeft,
	"topright":    TopRight,
	"righttop":    TopRight,
	"tr":          TopRight,
	"bottomleft":  BottomLeft,
	"leftbottom":  BottomLeft,
	"bl":          BottomLeft,
	"left":        BottomLeft,
	"bottomright": BottomRight,
	"rightbottom": BottomRight,
	"br":          BottomRight,
	"right":       BottomRight,
}

// ParseQuadrant resolves a quadrant name case-insensitively, ignoring '-',
// '_' and spaces. Empty or unknown input yields BottomRight.
func ParseQuadrant(s string) Quadrant {
	n := strings.ToLower(s)
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	if q, ok := quadrantAliases[n]; ok {
		return q
	}
	return BottomRight
}

// String returns the canonical name, which doubles as the persisted key.
func (q Quadrant) String() string {
	if s, ok := quadrantNames[q]; ok {
		return s
	}
	return "bottom-right"
}

// IsLeft reports whether the quadrant is anchored to the left edge.
func (q Quadrant) IsLeft() bool {
	return q == TopLeft || q == BottomLeft
}

// IsBottom reports whether the quadrant stacks upward from the bottom edge.
func (q Quadrant) IsBottom() bool {
	return q == BottomLeft || q == BottomRight
}

// Rect is an absolute screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Rect converts an anchor-relative placement to screen coordinates.
func (q Quadrant) Rect(p Placement, screenW, screenH int) Rect {
	x := p.Cross
	if !q.IsLeft() {
		x = screenW - p.Cross - p.Width
	}
	y := p.Offset
	if q.IsBottom() {
		y = screenH - p.Offset - p.Height
	}
	return Rect{X: x, Y: y, W: p.Width, H: p.Height}
}
