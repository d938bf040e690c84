// Package ui draws the debug overlay in a terminal with Bubble Tea.
//
// The overlay package owns every number; this package only maps its
// layout Results onto screen cells:
//   - Screen: a fixed-size grid of styled lines that blocks are pasted onto
//   - Render: turns each visible panel, control and badge into a block
//   - Model: the tea.Model that forwards resize, mouse and key input to the
//     overlay and accepts log messages from other goroutines
package ui
