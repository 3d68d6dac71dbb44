// Package workbench is amiwb's icon engine: per-canvas icon population,
// grid/list layout, selection, double-click dispatch, drag-and-drop, and
// spatial geometry persistence, per spec.md §4.E. The name and the wb_*
// file split mirror original_source/src/amiwb/workbench/*.c.
package workbench

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nsklaus/amiwb-sub000/internal/iconcodec"
)

// Kind classifies a desktop/drawer icon, per spec.md §4.E.
type Kind int

const (
	File Kind = iota
	Drawer
	Device
	Iconified
)

// Icon is one entry in a workbench canvas's icon grid.
type Icon struct {
	Name     string
	Path     string
	Kind     Kind
	X, Y     int
	Selected bool
	Decoded  *iconcodec.Icon

	lastClickAt   time.Time
	lastClickX    int
	lastClickY    int
}

const doubleClickWindow = 1000 * time.Millisecond
const doubleClickSlop = 10

// RegisterClick records a click for double-click detection and reports
// whether this click completes a double-click, per spec.md §4.E.
func (ic *Icon) RegisterClick(x, y int, now time.Time) bool {
	isDouble := !ic.lastClickAt.IsZero() &&
		now.Sub(ic.lastClickAt) < doubleClickWindow &&
		abs(x-ic.lastClickX) <= doubleClickSlop &&
		abs(y-ic.lastClickY) <= doubleClickSlop
	ic.lastClickAt = now
	ic.lastClickX, ic.lastClickY = x, y
	return isDouble
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// kindForEntry classifies a directory entry, preferring a directory test
// over any extension heuristic (spec.md §4.E).
func kindForEntry(dir string, entry os.DirEntry) Kind {
	if entry.IsDir() {
		return Drawer
	}
	return File
}

// iconSourcePath returns the sibling `.info` path to prefer for entry, per
// spec.md §4.A/§4.E.
func iconSourcePath(dir string, entry os.DirEntry) string {
	return filepath.Join(dir, entry.Name()+".info")
}

// resolveIcon decodes entry's icon, preferring its `.info` sidecar and
// falling back to a built-in default by kind, per spec.md §4.A/§4.E.
func resolveIcon(dir string, entry os.DirEntry, kind Kind) *iconcodec.Icon {
	if ic, err := iconcodec.Decode(iconSourcePath(dir, entry)); err == nil {
		return ic
	}
	return iconcodec.Default(kind == Drawer)
}

// TruncateLabel applies spec.md §4.E's 10-character "Icons mode" label
// truncation rule.
func TruncateLabel(name string) string {
	const max = 10
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max]) + ".."
}
