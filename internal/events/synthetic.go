package events

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// createSyntheticFrame creates an override-redirect top-level window owned
// entirely by the loop (menu dropdowns, dialogs) and registers it in the
// canvas store as kind with no client window, mirroring the frame half of
// intuition.Reparent but without a client to reparent in.
func (l *Loop) createSyntheticFrame(kind canvas.Kind, x, y, w, h int) *canvas.Canvas {
	conn := l.conn.XU.Conn()
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		logging.L.Printf("events.createSyntheticFrame: alloc id: %v", err)
		return nil
	}
	if err := xproto.CreateWindowChecked(conn, l.conn.ScreenDepth, win, l.conn.Root,
		int16(x), int16(y), uint16(w), uint16(h), 0,
		xproto.WindowClassInputOutput, 0,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{0, 1, uint32(xproto.EventMaskExposure | xproto.EventMaskButtonPress |
			xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)},
	).Check(); err != nil {
		logging.L.Printf("events.createSyntheticFrame: CreateWindow: %v", err)
		return nil
	}
	xproto.MapWindow(conn, win)

	cv := l.store.Create(kind, x, y, w, h, win, 0, "")
	l.comp.SetupCanvas(cv, l.conn.ScreenDepth)
	return cv
}

// destroySyntheticFrame tears down a frame created by createSyntheticFrame.
func (l *Loop) destroySyntheticFrame(cv *canvas.Canvas) {
	if cv == nil {
		return
	}
	l.comp.DestroyCanvas(cv)
	l.store.Destroy(cv)
	xproto.DestroyWindow(l.conn.XU.Conn(), cv.Frame)
}
