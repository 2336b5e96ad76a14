package view

import "nlterm/internal/tui/design"

// Layout holds the computed terminal window dimensions.
type Layout struct {
	WindowWidth    int
	WindowHeight   int
	ViewportWidth  int
	ViewportHeight int
}

// Chrome around the viewport inside the window: border (2), title (1),
// progress (1) and input (1).
const (
	windowFrameWidth  = 4
	windowFrameHeight = 5
)

// ComputeLayout sizes the terminal window for a screen of width x height.
func ComputeLayout(width, height int) Layout {
	w := int(float64(width) * design.TerminalWidthRatio)
	if w < design.MinTerminalWidth {
		w = min(width, design.MinTerminalWidth)
	}
	h := int(float64(height) * design.TerminalHeightRatio)
	if h < windowFrameHeight+1 {
		h = windowFrameHeight + 1
	}
	return Layout{
		WindowWidth:    w,
		WindowHeight:   h,
		ViewportWidth:  max(w-windowFrameWidth, 1),
		ViewportHeight: max(h-windowFrameHeight, 1),
	}
}
