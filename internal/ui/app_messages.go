package ui

import "debugpanels/internal/overlay"

// LogMsg appends values to a panel (Overlay.Log).
type LogMsg struct {
	Options overlay.LogOptions
	Values  []any
}

// ReplaceTextMsg replaces a panel's text (Overlay.ReplaceText).
type ReplaceTextMsg struct {
	Options overlay.LogOptions
	Values  []any
}

// MeterSampleMsg adds a meter sample (Overlay.DrawMeterSample).
type MeterSampleMsg struct {
	Percent float64
	Target  overlay.MeterTarget
}

// ErrorMsg surfaces a host error on the default panel.
type ErrorMsg struct {
	Err error
}

// ApplyMsg runs an arbitrary overlay call on the UI loop. Producers on other
// goroutines use it with Program.Send so the overlay stays single-threaded.
type ApplyMsg func(*overlay.Overlay)

// CopiedMsg reports the result of a clipboard copy.
type CopiedMsg struct {
	Err error
}
