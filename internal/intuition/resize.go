package intuition

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/xattr"
)

const (
	resizeThrottle   = 16 * time.Millisecond
	resizeMinDelta   = 5
	bufferGrowFactor = 1.3
	bufferSlack      = 20
)

// resizeState implements spec.md §4.D's resize state machine: press on a
// resize gadget records the start pointer, start size, and driving corner;
// motion is throttled and clamped to the client's size hints; release
// shrinks the backing pixmap back to exact size and persists geometry.
type resizeState struct {
	active    bool
	cv        *canvas.Canvas
	corner    Gadget
	startPtX  int
	startPtY  int
	startX    int
	startY    int
	startW    int
	startH    int
	lastStep  time.Time
	lastW     int
	lastH     int
}

// BeginResize starts an interactive resize on cv driven by corner at
// root-relative pointer (px, py).
func (wm *WM) BeginResize(cv *canvas.Canvas, corner Gadget, px, py int) {
	wm.SetActive(cv)
	*wm.resize = resizeState{
		active:   true,
		cv:       cv,
		corner:   corner,
		startPtX: px, startPtY: py,
		startX: cv.X, startY: cv.Y,
		startW: cv.W, startH: cv.H,
		lastW: cv.W, lastH: cv.H,
	}
}

// UpdateResize applies a throttled, clamped resize step for the pointer at
// (px, py), per spec.md §4.D's motion rules.
func (wm *WM) UpdateResize(px, py int) {
	r := wm.resize
	if !r.active {
		return
	}
	if time.Since(r.lastStep) < resizeThrottle {
		return
	}

	cv := r.cv
	dx, dy := px-r.startPtX, py-r.startPtY

	newX, newY := r.startX, r.startY
	newW, newH := r.startW, r.startH

	switch r.corner {
	case GadgetResizeSE, GadgetResizeE, GadgetResizeNE:
		newW = r.startW + dx
	case GadgetResizeSW, GadgetResizeW, GadgetResizeNW:
		newW = r.startW - dx
	}
	switch r.corner {
	case GadgetResizeSE, GadgetResizeS, GadgetResizeSW:
		newH = r.startH + dy
	case GadgetResizeNE, GadgetResizeN, GadgetResizeNW:
		newH = r.startH - dy
	}

	hints := cv.WM.Hints
	b := cv.Borders()
	newW = clamp(newW, hints.MinW+b.Left+b.Right, hints.MaxW+b.Left+b.Right)
	newH = clamp(newH, hints.MinH+b.Top+b.Bottom, hints.MaxH+b.Top+b.Bottom)

	switch r.corner {
	case GadgetResizeNW, GadgetResizeSW, GadgetResizeW:
		newX = r.startX + r.startW - newW
	}
	switch r.corner {
	case GadgetResizeNW, GadgetResizeNE, GadgetResizeN:
		newY = r.startY + r.startH - newH
	}

	if abs(newW-r.lastW) < resizeMinDelta && abs(newH-r.lastH) < resizeMinDelta {
		return
	}
	r.lastStep = time.Now()
	r.lastW, r.lastH = newW, newH

	old := cv.Rect()
	cv.X, cv.Y, cv.W, cv.H = newX, newY, newW, newH
	wm.clampToScreen(cv)
	wm.clampAboveMenubar(cv)

	wm.ensureBackingCapacity(cv)

	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y)), uint32(cv.W), uint32(cv.H)})

	content := cv.ContentRect()
	if cv.ClientWindow != 0 {
		xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.ClientWindow,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(int32(content.X)), uint32(int32(content.Y)), uint32(content.W), uint32(content.H)})
	}

	cv.View.ClampScroll(content.W, content.H)
	wm.comp.NoteRectDamage(old)
	wm.comp.Resized(cv, cv.Comp.Depth)
	wm.Paint(wm.face, cv)
}

// EndResize clears the resize state, shrinks the backing buffer to exact
// size, persists geometry, and applies the GIMP minimum-height hack.
func (wm *WM) EndResize() {
	r := wm.resize
	if !r.active {
		return
	}
	cv := r.cv
	*wm.resize = resizeState{}

	cv.Surfaces.BW, cv.Surfaces.BH = cv.W, cv.H

	// GIMP-style clients advertise a smaller WM_NORMAL_HINTS minimum height
	// than they actually enforce; if the client ends up visibly taller than
	// its own stated minimum, raise the stored minimum so future resizes
	// don't fight it. Compatibility hack, not a policy; see itn_resize.c.
	if cv.ClientWindow != 0 {
		content := cv.ContentRect()
		if content.H > cv.WM.Hints.MinH {
			cv.WM.Hints.MinH = content.H
		}
	}

	if cv.ClientWindow == 0 && cv.View.Path != "" {
		wm.persistSpatialGeometry(cv)
	}
}

// ensureBackingCapacity grows cv's backing pixmap by 1.3x when the canvas
// exceeds it, amortizing reallocation across small resize steps, per
// spec.md §4.D.
func (wm *WM) ensureBackingCapacity(cv *canvas.Canvas) {
	if cv.W <= cv.Surfaces.BW && cv.H <= cv.Surfaces.BH {
		return
	}
	if cv.W <= cv.Surfaces.BW+bufferSlack && cv.H <= cv.Surfaces.BH+bufferSlack && cv.Surfaces.BW > 0 {
		return
	}
	cv.Surfaces.BW = int(float64(cv.W) * bufferGrowFactor)
	cv.Surfaces.BH = int(float64(cv.H) * bufferGrowFactor)
}

// Resizing reports whether an interactive resize is in progress.
func (wm *WM) Resizing() bool { return wm.resize.active }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// persistSpatialGeometry stores cv's current geometry as a spatial xattr
// on its directory path, per spec.md §4.E's window-position memory.
func (wm *WM) persistSpatialGeometry(cv *canvas.Canvas) {
	g := xattr.Geometry{X: int32(cv.X), Y: int32(cv.Y), W: int32(cv.W), H: int32(cv.H)}
	if err := xattr.Set(cv.View.Path, g); err != nil {
		logging.L.Printf("WM.persistSpatialGeometry: %s: %v", cv.View.Path, err)
	}
}
