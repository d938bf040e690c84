package ui

import (
	"strconv"
	"strings"

	"debugpanels/internal/overlay"
	"debugpanels/internal/textutil"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// HitKind is what a screen region activates.
type HitKind int

const (
	HitPanel HitKind = iota
	HitControl
	HitBadge
)

// Hit is a clickable screen region.
type Hit struct {
	Rect     overlay.Rect
	Kind     HitKind
	Quadrant overlay.Quadrant
	Panel    *overlay.Panel
}

// Frame is one rendered screen plus its clickable regions, topmost last.
type Frame struct {
	View string
	Hits []Hit
}

// HitAt returns the topmost region containing (x, y).
func (f Frame) HitAt(x, y int) (Hit, bool) {
	for i := len(f.Hits) - 1; i >= 0; i-- {
		if f.Hits[i].Rect.Contains(x, y) {
			return f.Hits[i], true
		}
	}
	return Hit{}, false
}

// Render draws every populated quadrant of o over base.
func Render(o *overlay.Overlay, base string) Frame {
	width, height := o.Viewport()
	scr := NewScreen(width, height, base)
	var hits []Hit

	reg := o.Registry()
	for _, q := range overlay.Quadrants {
		res, ok := o.Layout(q)
		if !ok {
			continue
		}
		for _, p := range reg.Panels(q) {
			pl, ok := res.Of(p.Name)
			if !ok || !pl.Visible {
				continue
			}
			r := q.Rect(pl, width, height)
			scr.Place(r.X, r.Y, renderPanel(p, r.W, r.H))
			hits = append(hits, Hit{Rect: r, Kind: HitPanel, Quadrant: q, Panel: p})
		}

		ctrl := q.Rect(res.Control, width, height)
		glyph := overlay.ControlExpanded
		if reg.Minimized(q) {
			glyph = overlay.ControlCollapsed
		}
		block, glyphRect, badgeRect := renderControl(q, ctrl, glyph, res)
		scr.Place(ctrl.X, ctrl.Y, block)
		hits = append(hits, Hit{Rect: glyphRect, Kind: HitControl, Quadrant: q, Panel: reg.Control(q)})
		if res.BadgeVisible {
			hits = append(hits, Hit{Rect: badgeRect, Kind: HitBadge, Quadrant: q})
		}
	}
	return Frame{View: scr.String(), Hits: hits}
}

// renderControl draws the minimize glyph and, when visible, the badge on the
// side facing the screen interior.
func renderControl(q overlay.Quadrant, r overlay.Rect, glyph string, res overlay.Result) (string, overlay.Rect, overlay.Rect) {
	g := Styles.Control.Render(" " + glyph + " ")
	glyphRect := overlay.Rect{X: r.X, Y: r.Y, W: 3, H: 1}
	if !res.BadgeVisible {
		return g, glyphRect, overlay.Rect{}
	}
	badge := Styles.Badge.Render(" " + strconv.Itoa(res.Badge) + " ")
	bw := r.W - 4
	if q.IsLeft() {
		return g + " " + badge, glyphRect, overlay.Rect{X: r.X + 4, Y: r.Y, W: bw, H: 1}
	}
	glyphRect.X = r.X + r.W - 3
	return badge + " " + g, glyphRect, overlay.Rect{X: r.X, Y: r.Y, W: bw, H: 1}
}

// renderPanel draws p as exactly w×h cells.
func renderPanel(p *overlay.Panel, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	base := panelStyle(p)
	switch p.Kind {
	case overlay.KindMeter:
		return renderMeter(p, base, w, h)
	case overlay.KindLink:
		return renderLink(p, w, h)
	default:
		return renderText(p, base, w, h)
	}
}

func panelStyle(p *overlay.Panel) lipgloss.Style {
	st := Styles.Panel
	if p.Style.Background != "" {
		st = st.Background(resolveColor(p.Style.Background))
	}
	if p.Style.Foreground != "" {
		st = st.Foreground(resolveColor(p.Style.Foreground))
	}
	if p.Style.Bold {
		st = st.Bold(true)
	}
	return st
}

func padLine(s string, w int) string {
	inner := max(w-2, 0)
	return textutil.Fit(" "+textutil.Truncate(s, inner)+" ", w)
}

// renderText shows the newest lines that fit, like a log scrolled to the
// bottom. Sized panels wrap long lines; naturally sized ones truncate them
// because their height was measured in unwrapped lines.
func renderText(p *overlay.Panel, base lipgloss.Style, w, h int) string {
	split := textutil.Lines
	if p.Size.Mode() != overlay.SizeNone {
		inner := max(w-2, 1)
		split = func(s string) []string { return textutil.Wrap(s, inner) }
	}
	var lines []string
	for _, e := range p.Entries {
		st := base
		if e.Color != "" {
			st = st.Foreground(resolveColor(e.Color))
		}
		for _, l := range split(e.Text) {
			lines = append(lines, st.Render(padLine(l, w)))
		}
	}
	blank := base.Render(strings.Repeat(" ", w))
	for len(lines) < h {
		lines = append(lines, blank)
	}

	vp := viewport.New(w, h)
	vp.SetContent(strings.Join(lines, "\n"))
	vp.GotoBottom()
	return vp.View()
}

func renderMeter(p *overlay.Panel, base lipgloss.Style, w, h int) string {
	blank := base.Render(strings.Repeat(" ", w))
	var out []string
	if p.Meter != nil {
		for _, l := range strings.Split(p.Meter.Render(), "\n") {
			if len(out) == h {
				break
			}
			l = ansi.Truncate(l, max(w-2, 0), "")
			pad := max(w-2-ansi.StringWidth(l), 0)
			out = append(out, base.Render(" ")+l+base.Render(strings.Repeat(" ", pad)+" "))
		}
	}
	for len(out) < h {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

func renderLink(p *overlay.Panel, w, h int) string {
	st := Styles.Link
	if p.Style.Background != "" {
		st = st.Background(resolveColor(p.Style.Background))
	}
	if p.Style.Foreground != "" {
		st = st.Foreground(resolveColor(p.Style.Foreground))
	}
	label := st.Render(padLine(p.Label(), w))
	if p.URL != "" {
		label = ansi.SetHyperlink(p.URL) + label + ansi.ResetHyperlink()
	}
	lines := []string{label}
	blank := Styles.Panel.Render(strings.Repeat(" ", w))
	for len(lines) < h {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}
