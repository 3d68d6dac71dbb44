package intuition

import (
	"github.com/BurntSushi/xgbutil/xrect"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

// rectAdapter satisfies xgbutil/xrect.Rect for a canvas.Rect, so drag/resize
// can reuse the teacher's rectangle-math package instead of hand-rolling
// overlap arithmetic.
type rectAdapter struct{ r canvas.Rect }

func (a rectAdapter) X() int16       { return int16(a.r.X) }
func (a rectAdapter) Y() int16       { return int16(a.r.Y) }
func (a rectAdapter) Width() uint16  { return uint16(a.r.W) }
func (a rectAdapter) Height() uint16 { return uint16(a.r.H) }

// clampAboveMenubar pushes cv down so it never overlaps the menubar, per
// spec.md §8 invariant 14 ("the menubar is never overlapped by a
// non-fullscreen frame"). Drag and resize call this after computing a
// candidate geometry, before it is applied to the X window.
func (wm *WM) clampAboveMenubar(cv *canvas.Canvas) {
	if wm.menubar == nil || cv.WM.Fullscreen || cv == wm.menubar {
		return
	}
	bar := rectAdapter{wm.menubar.Rect()}
	cand := rectAdapter{cv.Rect()}
	if xrect.IntersectArea(bar, cand) <= 0 {
		return
	}
	bottom := wm.menubar.Y + wm.menubar.H
	if cv.Y < bottom {
		cv.Y = bottom
	}
}

// clampToScreen keeps at least one pixel of cv's frame within the screen
// on every edge, per spec.md §8 invariant 14 ("dragging past the screen
// edge does not move the frame outside the screen minus one pixel on each
// side"). Drag and resize call this alongside clampAboveMenubar on every
// candidate geometry, before it is applied to the X window.
func (wm *WM) clampToScreen(cv *canvas.Canvas) {
	if cv.WM.Fullscreen {
		return
	}
	minX, maxX := -(cv.W - 1), wm.conn.ScreenW-1
	if cv.X < minX {
		cv.X = minX
	} else if cv.X > maxX {
		cv.X = maxX
	}

	minY, maxY := -(cv.H - 1), wm.conn.ScreenH-1
	if cv.Y < minY {
		cv.Y = minY
	} else if cv.Y > maxY {
		cv.Y = maxY
	}
}
