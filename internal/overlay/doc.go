// Package overlay implements the debug overlay model: four corner stacks of
// named panels, their minimize and expand state, and the layout engine that
// places them on screen.
//
// Core pieces:
//   - Quadrant: one of the four screen corners a stack is anchored to
//   - Panel: a text log, meter or link, optionally pinned beside a parent
//   - Registry: per-quadrant ordered panels, minimized set and control
//   - Layout: pure cursor walk from registry state to placements
//   - Overlay: the service object callers use (add, log, click, resize)
//
// Nothing in this package draws; internal/ui maps Results to the terminal.
package overlay
