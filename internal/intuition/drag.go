package intuition

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

// dragState implements spec.md §4.D's titlebar drag state machine: press
// captures the root-relative pointer position and frame origin; motion
// moves the frame by the pointer delta; release clears the state.
type dragState struct {
	active   bool
	cv       *canvas.Canvas
	startPtX int
	startPtY int
	startX   int
	startY   int
}

// BeginDrag starts a titlebar drag on cv at root-relative pointer (px, py).
func (wm *WM) BeginDrag(cv *canvas.Canvas, px, py int) {
	wm.SetActive(cv)
	wm.drag.active = true
	wm.drag.cv = cv
	wm.drag.startPtX, wm.drag.startPtY = px, py
	wm.drag.startX, wm.drag.startY = cv.X, cv.Y
}

// UpdateDrag moves the dragged frame by the pointer delta from drag start,
// damaging both the old and new rectangles.
func (wm *WM) UpdateDrag(px, py int) {
	if !wm.drag.active {
		return
	}
	cv := wm.drag.cv
	old := cv.Rect()

	cv.X = wm.drag.startX + (px - wm.drag.startPtX)
	cv.Y = wm.drag.startY + (py - wm.drag.startPtY)
	wm.clampToScreen(cv)
	wm.clampAboveMenubar(cv)

	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y))})

	wm.comp.NoteRectDamage(old)
	wm.comp.NoteCanvasDamage(cv)
}

// EndDrag clears the drag state and persists the final geometry for
// workbench windows, per spec.md §4.D and §4.E's spatial memory.
func (wm *WM) EndDrag() {
	if !wm.drag.active {
		return
	}
	cv := wm.drag.cv
	*wm.drag = dragState{}
	if cv.ClientWindow == 0 && cv.View.Path != "" {
		wm.persistSpatialGeometry(cv)
	}
}

// Dragging reports whether a titlebar drag is in progress.
func (wm *WM) Dragging() bool { return wm.drag.active }
