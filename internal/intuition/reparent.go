package intuition

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

const menubarHeight = 20

// Reparent implements spec.md §4.D's reparenting algorithm for a mapped
// top-level window w with the given requested geometry and depth.
func (wm *WM) Reparent(w xproto.Window, reqX, reqY, reqW, reqH int, depth byte) *canvas.Canvas {
	hints := readICCCMHints(wm.conn, w)

	borders := canvas.ClientBorders
	frameX := reqX - borders.Left
	frameY := reqY - borders.Top
	frameW := reqW + borders.Left + borders.Right
	frameH := reqH + borders.Top + borders.Bottom

	frameX, frameY = wm.clampToWorkArea(frameX, frameY, frameW, frameH)

	frame, err := xproto.NewWindowId(wm.conn.XU.Conn())
	if err != nil {
		logging.L.Printf("WM.Reparent: alloc frame id: %v", err)
		return nil
	}
	if err := xproto.CreateWindowChecked(wm.conn.XU.Conn(), depth, frame, wm.conn.Root,
		int16(frameX), int16(frameY), uint16(frameW), uint16(frameH), 0,
		xproto.WindowClassInputOutput, 0,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{0, uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskExposure |
			xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)},
	).Check(); err != nil {
		logging.L.Printf("WM.Reparent: CreateWindow: %v", err)
		return nil
	}
	xproto.MapWindow(wm.conn.XU.Conn(), frame)

	cv := wm.store.Create(canvas.Window, frameX, frameY, frameW, frameH, frame, w, "")
	cv.WM.Hints = canvas.SizeHints{
		MinW: hints.minW, MinH: hints.minH,
		MaxW: hints.maxW, MaxH: hints.maxH,
		ResizeXAllowed: hints.minW != hints.maxW,
		ResizeYAllowed: hints.minH != hints.maxH,
	}
	cv.View.TitleBase = hints.class

	xproto.ReparentWindow(wm.conn.XU.Conn(), w, frame, int16(borders.Left), int16(borders.Top))
	wm.addToSaveSet(w)
	xproto.ChangeWindowAttributes(wm.conn.XU.Conn(), w, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange)})
	xproto.ConfigureWindow(wm.conn.XU.Conn(), w, xproto.ConfigWindowBorderWidth, []uint32{0})
	xproto.MapWindow(wm.conn.XU.Conn(), w)

	wm.grabClientButtons(w)

	if hints.transientFor != 0 {
		cv.WM.Transient = wm.findTransientParent(hints.transientFor)
		wm.centerOnScreen(cv)
	}

	if parsed, err := readPrivateTitle(wm.conn.XU.Conn(), w); err == nil && parsed != "" {
		cv.View.TitleChange = parsed
	}

	wm.comp.SetupCanvas(cv, depth)
	wm.SetActive(cv)
	return cv
}

func (wm *WM) findTransientParent(w xproto.Window) *canvas.Canvas {
	cv, _ := wm.store.FindByClient(w)
	return cv
}

// clampToWorkArea keeps a frame on-screen and below the menubar, per
// spec.md §4.D step 1.
func (wm *WM) clampToWorkArea(x, y, w, h int) (int, int) {
	screenW, screenH := wm.conn.ScreenW, wm.conn.ScreenH
	if x+w < 1 {
		x = 1 - w
	}
	if x > screenW-1 {
		x = screenW - 1
	}
	if y < menubarHeight {
		y = menubarHeight
	}
	if y > screenH-1 {
		y = screenH - 1
	}
	return x, y
}

// centerOnScreen force-centers a transient dialog, per spec.md §4.D step 7.
func (wm *WM) centerOnScreen(cv *canvas.Canvas) {
	cv.X = (wm.conn.ScreenW - cv.W) / 2
	cv.Y = (wm.conn.ScreenH - cv.H) / 2
	xproto.ConfigureWindow(wm.conn.XU.Conn(), cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y))})
}

// addToSaveSet adds w to the X save set so a crashing WM leaves clients
// mapped to root instead of destroying them, per spec.md §4.D step 4.
func (wm *WM) addToSaveSet(w xproto.Window) {
	xproto.ChangeSaveSet(wm.conn.XU.Conn(), xproto.SetModeInsert, w)
}

// grabClientButtons grabs Button1/2/3 with AnyModifier on the client so
// clicks activate the frame before being passed through, per spec.md §4.D
// step 5.
func (wm *WM) grabClientButtons(w xproto.Window) {
	for _, btn := range []byte{1, 2, 3} {
		xproto.GrabButton(wm.conn.XU.Conn(), false, w,
			uint16(xproto.EventMaskButtonPress),
			xproto.GrabModeSync, xproto.GrabModeAsync,
			0, 0, xproto.ButtonIndex(btn), xproto.ModMaskAny)
	}
}

// readPrivateTitle reads the _AMIWB_TITLE_CHANGE UTF-8 string property set
// by well-behaved clients that want a custom title distinct from WM_CLASS,
// per spec.md §4.D step 8 and §6.
func readPrivateTitle(conn *xgb.Conn, w xproto.Window) (string, error) {
	atom, err := xproto.InternAtom(conn, true, uint16(len(titleChangeAtomName)), titleChangeAtomName).Reply()
	if err != nil || atom.Atom == 0 {
		return "", err
	}
	reply, err := xproto.GetProperty(conn, false, w, atom.Atom, xproto.AtomString, 0, 1024).Reply()
	if err != nil || reply.ValueLen == 0 {
		return "", err
	}
	return string(reply.Value), nil
}

const titleChangeAtomName = "_AMIWB_TITLE_CHANGE"
