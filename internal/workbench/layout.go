package workbench

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

const (
	iconGridSpacing = 70
	iconCellW       = 64
	iconCellH       = 64
	namesRowHeight  = 24
)

// LayoutIcons re-flows c's icons into a tidy grid, wrapping columns at
// visibleW, per spec.md §4.E's "Icon Cleanup" action.
func LayoutIcons(c *Canvas, visibleW int) {
	cols := visibleW / iconGridSpacing
	if cols < 1 {
		cols = 1
	}
	for i, ic := range c.Icons {
		row, col := i/cols, i%cols
		ic.X = col * iconGridSpacing
		ic.Y = row * iconGridSpacing
	}
}

// LayoutNames lays out c's icons one per row, alphabetically ordered, per
// spec.md §4.E's Names mode.
func LayoutNames(c *Canvas) {
	sorted := SortNames(c.Icons)
	for i, ic := range sorted {
		ic.X = 0
		ic.Y = i * namesRowHeight
	}
}

// ContentBounds returns the bounding rectangle of every icon in c, used to
// compute content_width/height for scroll clamping (spec.md §4.E).
func ContentBounds(c *Canvas, mode canvas.ViewMode) (w, h int) {
	for _, ic := range c.Icons {
		cellW, cellH := iconCellW, iconCellH
		if mode == canvas.Names {
			cellH = namesRowHeight
		}
		if right := ic.X + cellW; right > w {
			w = right
		}
		if bottom := ic.Y + cellH; bottom > h {
			h = bottom
		}
	}
	return w, h
}
