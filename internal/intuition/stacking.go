package intuition

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// RaiseCanvas restacks cv's frame above its siblings, keeping the menubar
// (if any) above every window canvas, per spec.md §4.D stacking order.
func (wm *WM) RaiseCanvas(cv *canvas.Canvas) {
	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeAbove)})
	wm.comp.NoteCanvasDamage(cv)
	if wm.menubar != nil && wm.menubar != cv {
		xproto.ConfigureWindow(wm.conn.XU.Conn(), wm.menubar.Frame,
			xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeAbove)})
	}
}

// LowerCanvas implements the "Lower" gadget: restacks cv's frame below its
// siblings, per spec.md §4.D.
func (wm *WM) LowerCanvas(cv *canvas.Canvas) {
	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowStackMode, []uint32{uint32(xproto.StackModeBelow)})
	wm.comp.NoteCanvasDamage(cv)
	if wm.active == cv {
		wm.CycleFocus()
	}
}

// SetMenubar registers the menu package's menubar canvas so raises keep it
// topmost.
func (wm *WM) SetMenubar(cv *canvas.Canvas) {
	wm.menubar = cv
}

// setInputFocus sets the X input focus to win, logging rather than failing
// if the window has since been destroyed (a common race during rapid
// window churn, spec.md §7).
func setInputFocus(wm *WM, win xproto.Window) {
	if win == 0 {
		return
	}
	err := xproto.SetInputFocusChecked(wm.conn.XU.Conn(), xproto.InputFocusPointerRoot, win,
		xproto.TimeCurrentTime).Check()
	if err != nil {
		logging.L.Printf("WM.setInputFocus: %v", err)
	}
}
