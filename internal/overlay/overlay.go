package overlay

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"debugpanels/internal/meter"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// maxEntries caps a text panel's log history.
const maxEntries = 500

// PanelOptions configures AddPanel. Zero values mean defaults.
type PanelOptions struct {
	Quadrant       string
	Fraction       float64
	ExpandFraction float64
	Default        bool
	Style          Style
	Text           string
	// Parent pins the panel beside Parent; the quadrant follows the parent's.
	Parent *Panel
}

// MeterOptions configures AddMeter.
type MeterOptions struct {
	Quadrant string
	Width    int
	Height   int
}

// LinkOptions configures AddLink.
type LinkOptions struct {
	Quadrant string
	Style    Style
	Parent   *Panel
}

// LogOptions selects and decorates the target of Log and ReplaceText.
type LogOptions struct {
	Color      string
	TargetName string
	Target     *Panel
	// ToConsoleOnly sends the text to the structured logger only.
	ToConsoleOnly bool
}

// MeterTarget selects the meter for DrawMeterSample.
type MeterTarget struct {
	Name  string
	Panel *Panel
}

// Overlay is the debug overlay service. Every mutating call relayouts
// synchronously. Not safe for concurrent use.
type Overlay struct {
	opts         options
	registry     *Registry
	logger       *log.Logger
	tracer       oteltrace.Tracer
	order        []*Panel
	defaultPanel *Panel
	width        int
	height       int
	layouts      map[Quadrant]Result
}

// New creates an overlay and its default "debug" panel.
func New(opts ...Option) *Overlay {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	if o.tracer == nil {
		o.tracer = noopTracer()
	}
	ov := &Overlay{
		opts:     o,
		registry: NewRegistry(o.store, o.logger),
		logger:   o.logger,
		tracer:   o.tracer,
		width:    o.width,
		height:   o.height,
		layouts:  make(map[Quadrant]Result),
	}
	ov.AddPanel(DefaultPanelName, o.defaultPanel)
	return ov
}

// Registry exposes the quadrant stacks for renderers.
func (o *Overlay) Registry() *Registry {
	return o.registry
}

// Gap returns the configured panel spacing.
func (o *Overlay) Gap() int {
	return o.opts.gap
}

// Viewport returns the current screen size.
func (o *Overlay) Viewport() (width, height int) {
	return o.width, o.height
}

// DefaultPanel returns the panel that receives untargeted logs, or nil.
func (o *Overlay) DefaultPanel() *Panel {
	return o.defaultPanel
}

// AddPanel creates a text panel.
func (o *Overlay) AddPanel(name string, opts PanelOptions) *Panel {
	p := &Panel{
		Name: name,
		Kind: KindText,
		Size: Size{Fraction: opts.Fraction, ExpandFraction: opts.ExpandFraction},
	}
	switch p.Size.Mode() {
	case SizeNone:
		p.Size = Size{}
	case SizeFixed:
		p.Size.ExpandFraction = 0
	}
	p.Style = o.styleWithDefaults(opts.Style)
	if opts.Text != "" {
		p.Entries = []Entry{{Text: opts.Text}}
	}
	o.add(p, opts.Quadrant, opts.Parent)
	if opts.Default || o.defaultPanel == nil {
		o.defaultPanel = p
	}
	o.relayout()
	return p
}

// AddMeter creates a strip-chart panel of width×height pixels.
func (o *Overlay) AddMeter(name string, opts MeterOptions) *Panel {
	p := &Panel{
		Name:  name,
		Kind:  KindMeter,
		Meter: meter.New(opts.Width, opts.Height),
		Style: o.styleWithDefaults(Style{}),
	}
	o.add(p, opts.Quadrant, nil)
	o.relayout()
	return p
}

// AddLink creates a panel that shows name and opens url when activated.
func (o *Overlay) AddLink(name, url string, opts LinkOptions) *Panel {
	p := &Panel{
		Name:  name,
		Kind:  KindLink,
		URL:   url,
		Style: o.styleWithDefaults(opts.Style),
	}
	o.add(p, opts.Quadrant, opts.Parent)
	o.relayout()
	return p
}

func (o *Overlay) styleWithDefaults(s Style) Style {
	if s.Background == "" {
		s.Background = o.opts.color
	}
	return s
}

func (o *Overlay) add(p *Panel, quadrant string, parent *Panel) {
	q := ParseQuadrant(quadrant)
	if parent.Registered() {
		p.Parent = parent
		q = parent.Quadrant
	}
	if replaced := o.registry.Register(q, p); replaced != nil {
		wasDefault := replaced == o.defaultPanel
		o.forget(replaced)
		if wasDefault && p.Kind == KindText {
			o.defaultPanel = p
		}
	}
	o.order = append(o.order, p)
	o.logger.Debug("panel added", "name", p.Name, "kind", p.Kind, "quadrant", q)
}

// forget drops p from the global order and repoints the default panel.
func (o *Overlay) forget(p *Panel) {
	o.order = slices.DeleteFunc(o.order, func(x *Panel) bool { return x == p })
	if o.defaultPanel == p {
		o.defaultPanel = nil
		for _, c := range o.order {
			if c.Kind == KindText {
				o.defaultPanel = c
				break
			}
		}
	}
}

// RemovePanel deletes p. Satellites pinned to it fall back to ordinary slots.
func (o *Overlay) RemovePanel(p *Panel) {
	if !p.Registered() || p.Kind == KindControl {
		return
	}
	o.registry.Remove(p.Quadrant, p.Name)
	o.forget(p)
	o.relayout()
}

// RemovePanelByName deletes the first panel called name. No-op when absent.
func (o *Overlay) RemovePanelByName(name string) {
	o.RemovePanel(o.GetPanel(name))
}

// GetPanel returns the first panel added under name, or nil.
func (o *Overlay) GetPanel(name string) *Panel {
	for _, p := range o.order {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ChangeQuadrant moves p, and every satellite pinned to it, to quadrant.
// Hidden panels stay hidden.
func (o *Overlay) ChangeQuadrant(p *Panel, quadrant string) {
	if !p.Registered() || p.Kind == KindControl {
		return
	}
	q := ParseQuadrant(quadrant)
	if q == p.Quadrant {
		return
	}
	o.move(p, q)
	o.relayout()
}

func (o *Overlay) move(p *Panel, q Quadrant) {
	from := p.Quadrant
	if replaced := o.registry.Move(p, q); replaced != nil {
		o.forget(replaced)
	}
	for _, s := range o.registry.Panels(from) {
		if s.Parent == p {
			o.move(s, q)
		}
	}
}

// Resize records a new screen size and relayouts.
func (o *Overlay) Resize(width, height int) {
	o.width, o.height = width, height
	o.relayout()
}

// TriggerResize forces a full relayout of all quadrants.
func (o *Overlay) TriggerResize() {
	o.relayout()
}

// Click handles activation of a panel: a control collapses its quadrant,
// an expandable panel toggles size, any other panel is hidden or shown.
func (o *Overlay) Click(p *Panel) {
	if p == nil {
		return
	}
	if p.Kind == KindControl {
		o.ClickControl(p.Quadrant)
		return
	}
	o.registry.ToggleMinimizePanel(p)
	o.relayout()
}

// ClickControl toggles the collapsed state of quadrant q.
func (o *Overlay) ClickControl(q Quadrant) {
	if o.registry.Control(q) == nil {
		return
	}
	o.registry.ToggleMinimizeAll(q)
	o.relayout()
}

// ClickBadge restores the most recently hidden panel of q.
func (o *Overlay) ClickBadge(q Quadrant) {
	if o.registry.RestoreLast(q) != nil {
		o.relayout()
	}
}

// ToggleDefault toggles the default panel the way a click would.
func (o *Overlay) ToggleDefault() {
	o.Click(o.defaultPanel)
}

// CaptureError forwards a host error to the default panel in red.
func (o *Overlay) CaptureError(err error) {
	if err == nil {
		return
	}
	o.Log(LogOptions{Color: ColorError}, err.Error())
}

// DefaultText returns the default panel's text, for copying.
func (o *Overlay) DefaultText() string {
	if o.defaultPanel == nil {
		return ""
	}
	return o.defaultPanel.Text()
}

// Log appends the formatted values to the target panel.
func (o *Overlay) Log(opts LogOptions, values ...any) {
	o.write(opts, false, values)
}

// ReplaceText replaces the target panel's content with the formatted values.
func (o *Overlay) ReplaceText(opts LogOptions, values ...any) {
	o.write(opts, true, values)
}

func (o *Overlay) write(opts LogOptions, replace bool, values []any) {
	text := Format(values...)
	if opts.ToConsoleOnly {
		o.logger.Info(text)
		return
	}
	p := o.target(opts.Target, opts.TargetName)
	if p == nil || p.Kind == KindControl {
		o.logger.Debug("log target missing", "name", opts.TargetName)
		return
	}
	e := Entry{Text: text, Color: opts.Color}
	if replace {
		p.Entries = []Entry{e}
	} else {
		p.Entries = append(p.Entries, e)
		if n := len(p.Entries); n > maxEntries {
			p.Entries = slices.Delete(p.Entries, 0, n-maxEntries)
		}
	}
	if e.IsError() {
		o.expandDefault()
	}
	o.relayout()
}

func (o *Overlay) expandDefault() {
	p := o.defaultPanel
	if p == nil {
		return
	}
	if p.Size.Mode() == SizeExpandable {
		p.Expanded = true
		return
	}
	if o.registry.IsHidden(p) {
		o.registry.ToggleMinimizePanel(p)
	}
}

// target resolves an explicit panel, then a name, then the default panel.
func (o *Overlay) target(p *Panel, name string) *Panel {
	if p.Registered() {
		return p
	}
	if name != "" {
		if byName := o.GetPanel(name); byName != nil {
			return byName
		}
	}
	return o.defaultPanel
}

// DrawMeterSample adds a sample in [-1, 1] to a meter panel. Without a
// target the most recently added meter is used.
func (o *Overlay) DrawMeterSample(percent float64, t MeterTarget) {
	p := o.target(t.Panel, t.Name)
	if p == nil || p.Kind != KindMeter {
		p = o.lastMeter()
	}
	if p == nil {
		return
	}
	p.Meter.DrawSample(percent)
}

func (o *Overlay) lastMeter() *Panel {
	for i := len(o.order) - 1; i >= 0; i-- {
		if o.order[i].Kind == KindMeter {
			return o.order[i]
		}
	}
	return nil
}

// Layout returns the last computed layout of q.
func (o *Overlay) Layout(q Quadrant) (Result, bool) {
	r, ok := o.layouts[q]
	return r, ok
}

// Layouts returns the last computed layout of every populated quadrant.
func (o *Overlay) Layouts() map[Quadrant]Result {
	out := make(map[Quadrant]Result, len(o.layouts))
	for q, r := range o.layouts {
		out[q] = r
	}
	return out
}

func (o *Overlay) relayout() {
	_, span := o.tracer.Start(context.Background(), "overlay.relayout")
	defer span.End()

	panels := 0
	for _, q := range Quadrants {
		if o.registry.Control(q) == nil {
			continue
		}
		in := o.registry.Input(q, o.width, o.height, o.opts.gap)
		o.layouts[q] = Layout(in)
		panels += len(in.Panels)
	}
	span.SetAttributes(
		attribute.Int("debugpanels.viewport.width", o.width),
		attribute.Int("debugpanels.viewport.height", o.height),
		attribute.Int("debugpanels.panels", panels),
	)
}

// Format renders values the way Log displays them: each with fmt.Sprint,
// joined by single spaces.
func Format(values ...any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "null"
			continue
		}
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
