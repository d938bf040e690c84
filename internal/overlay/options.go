package overlay

import (
	"io"

	"debugpanels/internal/state"

	"github.com/charmbracelet/log"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultPanelName is the panel created by New.
const DefaultPanelName = "debug"

// Default size of the "debug" panel.
const (
	DefaultPanelFraction       = 0.3
	DefaultPanelExpandFraction = 0.8
)

type options struct {
	gap          int
	color        string
	defaultPanel PanelOptions
	store        state.Store
	logger       *log.Logger
	tracer       oteltrace.Tracer
	width        int
	height       int
}

// Option configures an Overlay.
type Option func(*options)

// WithGap sets the spacing between panels. Negative values are ignored.
func WithGap(gap int) Option {
	return func(o *options) {
		if gap >= 0 {
			o.gap = gap
		}
	}
}

// WithColor sets the default panel background color.
func WithColor(color string) Option {
	return func(o *options) { o.color = color }
}

// WithDefaultPanel overrides the options of the "debug" panel.
func WithDefaultPanel(opts PanelOptions) Option {
	return func(o *options) { o.defaultPanel = opts }
}

// WithStore persists collapsed/hidden flags to store.
func WithStore(store state.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLogger sets the structured logger used for console-only logs and
// diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracer records a span per relayout pass.
func WithTracer(t oteltrace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithViewport sets the initial screen size in cells.
func WithViewport(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

func defaultOptions() options {
	return options{
		gap: DefaultGap,
		defaultPanel: PanelOptions{
			Fraction:       DefaultPanelFraction,
			ExpandFraction: DefaultPanelExpandFraction,
		},
		width:  80,
		height: 24,
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func noopTracer() oteltrace.Tracer {
	return noop.NewTracerProvider().Tracer("debugpanels/overlay")
}
