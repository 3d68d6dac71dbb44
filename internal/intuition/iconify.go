package intuition

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

// IconifyHandler creates a drawer-style desktop icon representing an
// iconified window and returns it; RestoreHandler is called with that same
// value to destroy it on restore. Set by the workbench package at startup
// to avoid an import cycle between intuition and workbench.
type IconifyHandler interface {
	CreateIconifiedIcon(title string) any
	DestroyIconifiedIcon(handle any)
}

var iconifyHandler IconifyHandler

// SetIconifyHandler installs the workbench package's icon lifecycle
// callbacks, per spec.md §4.D's Iconify/Restore description.
func SetIconifyHandler(h IconifyHandler) {
	iconifyHandler = h
}

// iconHandles maps an iconified canvas to its desktop icon handle; Canvas
// has no dedicated field for this since only window-kind canvases need it.
var iconHandles = map[*canvas.Canvas]any{}

// Iconify unmaps cv, creates its desktop icon via the registered handler,
// and deactivates it, per spec.md §4.D.
func (wm *WM) Iconify(cv *canvas.Canvas) {
	if cv.Kind != canvas.Window {
		return
	}
	xproto.UnmapWindow(wm.conn.XU.Conn(), cv.Frame)
	cv.Comp.Mapped = false
	cv.Comp.Visible = false
	wm.comp.NoteCanvasDamage(cv)

	if iconifyHandler != nil {
		title := cv.View.TitleChange
		if title == "" {
			title = cv.View.TitleBase
		}
		iconHandles[cv] = iconifyHandler.CreateIconifiedIcon(title)
	}

	if wm.active == cv {
		next := wm.focus.next(cv)
		wm.active = nil
		cv.WM.Active = false
		if next != nil && next != cv {
			wm.SetActive(next)
		} else if desktop := wm.store.Desktop(); desktop != nil {
			wm.SetActive(desktop)
		}
	}
}

// Restore remaps cv, raises and activates it, and destroys its desktop
// icon, per spec.md §4.D.
func (wm *WM) Restore(cv *canvas.Canvas) {
	if cv.Kind != canvas.Window {
		return
	}
	xproto.MapWindow(wm.conn.XU.Conn(), cv.Frame)
	cv.Comp.Mapped = true
	cv.Comp.Visible = true

	if iconifyHandler != nil {
		if handle, ok := iconHandles[cv]; ok {
			iconifyHandler.DestroyIconifiedIcon(handle)
			delete(iconHandles, cv)
		}
	}

	wm.SetActive(cv)
}

// CanvasForHandle reverse-looks-up the iconified canvas a desktop icon
// handle represents, for the event dispatcher's double-click-to-restore
// path.
func CanvasForHandle(handle any) (*canvas.Canvas, bool) {
	for cv, h := range iconHandles {
		if h == handle {
			return cv, true
		}
	}
	return nil, false
}
