package intuition

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

// SetFullscreen implements spec.md §4.D's fullscreen behavior: entering
// saves the current geometry, hides the menubar, and resizes the frame and
// client to the full screen; leaving restores the saved geometry and
// remaps the menubar. Idempotent in both directions, satisfying invariant
// 8 (toggling twice restores the prior geometry).
func (wm *WM) SetFullscreen(cv *canvas.Canvas, on bool) {
	if on == cv.WM.Fullscreen {
		return
	}
	if on {
		cv.WM.PreStateX, cv.WM.PreStateY = cv.X, cv.Y
		cv.WM.PreStateW, cv.WM.PreStateH = cv.W, cv.H
		cv.WM.Fullscreen = true
		cv.X, cv.Y = 0, 0
		cv.W, cv.H = wm.conn.ScreenW, wm.conn.ScreenH
	} else {
		cv.WM.Fullscreen = false
		cv.X, cv.Y = cv.WM.PreStateX, cv.WM.PreStateY
		cv.W, cv.H = cv.WM.PreStateW, cv.WM.PreStateH
	}

	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y)), uint32(cv.W), uint32(cv.H)})

	if cv.ClientWindow != 0 {
		content := cv.ContentRect()
		if cv.WM.Fullscreen {
			content = canvas.Rect{X: 0, Y: 0, W: cv.W, H: cv.H}
		}
		xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.ClientWindow,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(int32(content.X)), uint32(int32(content.Y)), uint32(content.W), uint32(content.H)})
	}

	wm.setMenubarVisible(!wm.anyFullscreen())
	wm.comp.Resized(cv, cv.Comp.Depth)
}

// anyFullscreen reports whether any tracked canvas is currently
// fullscreen, per invariant 4: the menubar is mapped iff none are.
func (wm *WM) anyFullscreen() bool {
	for _, cv := range wm.store.All() {
		if cv.WM.Fullscreen {
			return true
		}
	}
	return false
}

func (wm *WM) setMenubarVisible(visible bool) {
	if wm.menubar == nil {
		return
	}
	wm.menubar.Comp.Visible = visible
	if visible {
		xproto.MapWindow(wm.conn.XU.Conn(), wm.menubar.Frame)
	} else {
		xproto.UnmapWindow(wm.conn.XU.Conn(), wm.menubar.Frame)
	}
	wm.comp.NoteCanvasDamage(wm.menubar)
}

// ToggleMaximize implements the Maximize gadget: the second press restores
// the pre-maximize geometry (invariant 8), reusing the fullscreen geometry
// fields since both are "saved rect, then full work area" transitions.
func (wm *WM) ToggleMaximize(cv *canvas.Canvas) {
	if cv.WM.Maximized {
		cv.WM.Maximized = false
		cv.X, cv.Y = cv.WM.PreStateX, cv.WM.PreStateY
		cv.W, cv.H = cv.WM.PreStateW, cv.WM.PreStateH
	} else {
		cv.WM.PreStateX, cv.WM.PreStateY = cv.X, cv.Y
		cv.WM.PreStateW, cv.WM.PreStateH = cv.W, cv.H
		cv.WM.Maximized = true
		cv.X, cv.Y = 0, menubarHeight
		cv.W, cv.H = wm.conn.ScreenW, wm.conn.ScreenH-menubarHeight
	}
	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y)), uint32(cv.W), uint32(cv.H)})
	if cv.ClientWindow != 0 {
		content := cv.ContentRect()
		xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.ClientWindow,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(int32(content.X)), uint32(int32(content.Y)), uint32(content.W), uint32(content.H)})
	}
	wm.comp.Resized(cv, cv.Comp.Depth)
}
