package workbench

import (
	"os"
	"path/filepath"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

const dragThreshold = 10

// DragState tracks an in-progress icon drag, per spec.md §4.E. The
// floating drag-proxy window and XDND negotiation live with the event
// dispatcher; this type only tracks the logical source/target.
type DragState struct {
	Source      *Canvas
	Icon        *Icon
	startX      int
	startY      int
	started     bool
}

// Begin records the press origin; PastThreshold reports once movement
// exceeds spec.md §4.E's 10-pixel threshold.
func (d *DragState) Begin(src *Canvas, ic *Icon, x, y int) {
	*d = DragState{Source: src, Icon: ic, startX: x, startY: y}
}

func (d *DragState) PastThreshold(x, y int) bool {
	if d.started {
		return true
	}
	dx, dy := x-d.startX, y-d.startY
	if dx*dx+dy*dy >= dragThreshold*dragThreshold {
		d.started = true
	}
	return d.started
}

// DropSameCanvas repositions the dragged icon within its own canvas.
func (d *DragState) DropSameCanvas(x, y int) {
	d.Icon.X, d.Icon.Y = x, y
}

// DropOnCanvas moves the dragged icon's filesystem entry (and its `.info`
// sidecar, if present) into dst's directory, then refreshes both canvases,
// per spec.md §4.E.
func (d *DragState) DropOnCanvas(dst *Canvas, x, y int) error {
	if dst == d.Source {
		d.DropSameCanvas(x, y)
		return nil
	}
	if err := moveEntry(d.Icon.Path, dst.Dir); err != nil {
		return err
	}
	if err := dst.Refresh(); err != nil {
		logging.L.Printf("workbench.DropOnCanvas: refresh dst: %v", err)
	}
	if err := d.Source.Refresh(); err != nil {
		logging.L.Printf("workbench.DropOnCanvas: refresh source: %v", err)
	}
	return nil
}

// DropOnDrawer moves the dragged icon into the directory drawer
// represents, per spec.md §4.E's "Onto a Drawer icon" rule.
func (d *DragState) DropOnDrawer(drawer *Icon) error {
	if drawer.Kind != Drawer {
		return nil
	}
	if err := moveEntry(d.Icon.Path, drawer.Path); err != nil {
		return err
	}
	return d.Source.Refresh()
}

// moveEntry renames path into destDir, carrying along a `.info` sidecar if
// one exists, per spec.md §4.E.
func moveEntry(path, destDir string) error {
	name := filepath.Base(path)
	dest := filepath.Join(destDir, name)
	if err := os.Rename(path, dest); err != nil {
		return err
	}
	sidecar := path + ".info"
	if _, err := os.Stat(sidecar); err == nil {
		os.Rename(sidecar, dest+".info")
	}
	return nil
}
