// Package intuition is amiwb's reparenting window manager: it owns
// client reparenting, frame decoration layout, the drag/resize/scroll
// state machines, focus, stacking, fullscreen, and iconify/restore, per
// spec.md §4.D. The package name and the itn_* file split mirror
// original_source/src/amiwb/intuition/*.c.
package intuition

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/compositor"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/textmetrics"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// WM is the process-wide window-manager singleton (spec.md §9).
type WM struct {
	conn  *xconn.Conn
	store *canvas.Store
	comp  *compositor.Compositor

	active *canvas.Canvas
	focus  *focusList

	drag   *dragState
	resize *resizeState

	menubar *canvas.Canvas // set by the menu package via SetMenubar
	face    *textmetrics.Face
}

// SetFace installs the font face Paint uses for title/gadget text,
// supplied by cmd/amiwb's startup sequence once textmetrics.NewFace runs.
func (wm *WM) SetFace(face *textmetrics.Face) { wm.face = face }

// repaint redraws cv's decoration (a no-op for Desktop/fullscreen canvases,
// per Paint's own guard) and marks it damaged, the pairing spec.md §4.D
// requires every time a gadget, active flag, title, or scroll position
// changes.
func (wm *WM) repaint(cv *canvas.Canvas) {
	if cv == nil {
		return
	}
	wm.Paint(wm.face, cv)
	wm.comp.NoteCanvasDamage(cv)
}

// New constructs the window manager around an already-open connection,
// canvas store, and compositor.
func New(conn *xconn.Conn, store *canvas.Store, comp *compositor.Compositor) *WM {
	return &WM{
		conn:   conn,
		store:  store,
		comp:   comp,
		focus:  newFocusList(),
		drag:   &dragState{},
		resize: &resizeState{},
	}
}

// Bootstrap performs spec.md §4.D's startup sequence: installs the error
// handler, selects root events, advertises EWMH support, subscribes to
// RandR, sets the root cursor, and reparents any pre-existing top-level
// windows.
func (wm *WM) Bootstrap() error {
	wm.conn.InstallDefaultErrorHandler()

	if err := wm.conn.SelectRootEvents(); err != nil {
		return xerr.Wrap(err, "WM.Bootstrap", "root event selection")
	}

	supported := []string{"_NET_WM_STATE", "_NET_WM_STATE_FULLSCREEN"}
	if err := ewmh.SupportedSet(wm.conn.XU, supported); err != nil {
		logging.L.Printf("WM.Bootstrap: SupportedSet: %v", err)
	}

	if err := wm.conn.SetRootCursor(); err != nil {
		logging.L.Printf("WM.Bootstrap: SetRootCursor: %v", err)
	}

	return wm.scanExisting()
}

// scanExisting reparents every viewable, non-override-redirect, non-
// InputOnly top-level child of root found at startup (spec.md §4.D).
func (wm *WM) scanExisting() error {
	children, err := wm.conn.QueryTree(wm.conn.Root)
	if err != nil {
		return xerr.Wrap(err, "WM.scanExisting", "QueryTree root")
	}
	for _, w := range children {
		attrs, err := xproto.GetWindowAttributes(wm.conn.XU.Conn(), w).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.Class == xproto.WindowClassInputOnly {
			continue
		}
		if attrs.MapState != xproto.MapStateViewable {
			continue
		}
		geom, err := xproto.GetGeometry(wm.conn.XU.Conn(), xproto.Drawable(w)).Reply()
		if err != nil {
			continue
		}
		wm.Reparent(w, int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height), geom.Depth)
	}
	return nil
}

// icccmHints reads WM_NORMAL_HINTS, WM_TRANSIENT_FOR, and WM_CLASS for a
// client, used by Reparent (spec.md §4.D steps 6-8).
type icccmHints struct {
	minW, minH, maxW, maxH int
	transientFor           xproto.Window
	class                  string
}

func readICCCMHints(xu *xconn.Conn, w xproto.Window) icccmHints {
	var h icccmHints
	h.minW, h.minH, h.maxW, h.maxH = 1, 1, 1<<30, 1<<30

	if hints, err := icccm.WmNormalHintsGet(xu.XU, w); err == nil && hints != nil {
		minW, minH := hints.MinWidth, hints.MinHeight
		baseW, baseH := hints.BaseWidth, hints.BaseHeight
		if baseW > minW {
			minW = baseW
		}
		if baseH > minH {
			minH = baseH
		}
		if minW > 0 {
			h.minW = int(minW)
		}
		if minH > 0 {
			h.minH = int(minH)
		}
		if hints.MaxWidth > 0 {
			h.maxW = int(hints.MaxWidth)
		}
		if hints.MaxHeight > 0 {
			h.maxH = int(hints.MaxHeight)
		}
		if h.maxW > xu.ScreenW {
			h.maxW = xu.ScreenW
		}
		if h.maxH > xu.ScreenH {
			h.maxH = xu.ScreenH
		}
	}

	if parent, err := icccm.WmTransientForGet(xu.XU, w); err == nil {
		h.transientFor = parent
	}

	if class, err := icccm.WmClassGet(xu.XU, w); err == nil && class != nil {
		h.class = class.Class
	}

	return h
}
