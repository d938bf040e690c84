// Package meter implements the scrolling strip-chart drawn by meter panels.
//
// A Canvas is a small pixel grid. Every sample shifts the grid one column to
// the left and draws a new bar in the rightmost column: white above the
// vertical middle for positive samples, red below it for negative ones.
package meter

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default canvas dimensions in pixels. A pixel is one cell wide and half a
// cell tall, so the default meter is 32×6 cells with padding.
const (
	DefaultWidth  = 30
	DefaultHeight = 12
)

// Color is the value of a single canvas pixel.
type Color uint8

const (
	Clear Color = iota
	White
	Red
)

// Canvas is a width×height grid of pixels, row-major.
type Canvas struct {
	width  int
	height int
	pix    []Color
}

// New creates an empty canvas. Non-positive dimensions fall back to the defaults.
func New(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Lines returns the number of terminal lines Render produces.
func (c *Canvas) Lines() int { return (c.height + 1) / 2 }

// Middle returns the row that splits positive from negative bars.
func (c *Canvas) Middle() int { return c.height / 2 }

// At returns the pixel at (x, y). Out-of-range coordinates read as Clear.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Clear
	}
	return c.pix[y*c.width+x]
}

func (c *Canvas) set(x, y int, v Color) {
	c.pix[y*c.width+x] = v
}

// DrawSample scrolls the chart left by one column and draws percent in the
// rightmost column. percent is clamped to [-1, 1].
func (c *Canvas) DrawSample(percent float64) {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(-1, math.Min(1, percent))

	for y := 0; y < c.height; y++ {
		row := c.pix[y*c.width : (y+1)*c.width]
		copy(row, row[1:])
		row[c.width-1] = Clear
	}

	x := c.width - 1
	middle := c.Middle()
	if percent < 0 {
		n := int(math.Round(float64(c.height-middle) * -percent))
		for y := middle; y < middle+n && y < c.height; y++ {
			c.set(x, y, Red)
		}
		return
	}
	n := int(math.Round(float64(middle) * percent))
	for y := middle - n; y < middle; y++ {
		c.set(x, y, White)
	}
}

var pixelColors = map[Color]lipgloss.Color{
	White: lipgloss.Color("15"),
	Red:   lipgloss.Color("196"),
}

// Render draws the canvas with half-block glyphs, two pixel rows per line.
func (c *Canvas) Render() string {
	styles := make(map[[2]Color]lipgloss.Style)
	lines := make([]string, 0, c.Lines())
	for y := 0; y < c.height; y += 2 {
		var b strings.Builder
		for x := 0; x < c.width; x++ {
			top, bottom := c.At(x, y), c.At(x, y+1)
			b.WriteString(renderCell(styles, top, bottom))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderCell(styles map[[2]Color]lipgloss.Style, top, bottom Color) string {
	if top == Clear && bottom == Clear {
		return " "
	}
	key := [2]Color{top, bottom}
	st, ok := styles[key]
	if !ok {
		st = lipgloss.NewStyle()
		switch {
		case top == Clear:
			st = st.Foreground(pixelColors[bottom])
		case bottom == Clear:
			st = st.Foreground(pixelColors[top])
		default:
			st = st.Foreground(pixelColors[top]).Background(pixelColors[bottom])
		}
		styles[key] = st
	}
	if top == Clear {
		return st.Render("▄")
	}
	return st.Render("▀")
}
