package events

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/dialogs"
	"github.com/nsklaus/amiwb-sub000/internal/intuition"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/menu"
	"github.com/nsklaus/amiwb-sub000/internal/workbench"
)

const scrollStep = 20

// onButtonPress routes a press by canvas kind, per spec.md §4.G: menubar
// presses toggle mode, menu/dropdown presses are tracked for activation on
// release, workbench presses select/begin a drag, and frame presses hit-test
// into gadgets (arm, begin drag, begin resize) or the scrollbar.
func (l *Loop) onButtonPress(e xproto.ButtonPressEvent) {
	conn := l.conn.XU.Conn()

	// A grabbed client-window press (intuition.grabClientButtons): replay it
	// through to the client and just raise/activate the frame, per spec.md
	// §4.D's "clicks activate the frame before being passed through".
	if cv, ok := l.store.FindByClient(e.Event); ok {
		xproto.AllowEvents(conn, xproto.AllowReplayPointer, e.Time)
		l.wm.SetActive(cv)
		return
	}

	cv, ok := l.store.FindByFrame(e.Event)
	if !ok {
		return
	}
	lx, ly := int(e.EventX), int(e.EventY)

	switch cv.Kind {
	case canvas.Menu:
		l.syncHover(ly)
		return
	case canvas.Dialog:
		l.wm.SetActive(cv)
		return
	}

	if cv == l.bar.Canvas {
		if e.Detail == 3 {
			l.bar.ToggleMode()
			l.comp.NoteCanvasDamage(cv)
			return
		}
		if l.bar.Mode == menu.Logo {
			return
		}
		l.openTopLevelAt(lx)
		return
	}

	gadget := intuition.HitTest(cv, lx, ly)
	switch gadget {
	case intuition.GadgetClose, intuition.GadgetIconify, intuition.GadgetMaximize, intuition.GadgetLower:
		l.armedGadget, l.armedCanvas = gadget, cv
	case intuition.GadgetDrag:
		l.wm.BeginDrag(cv, int(e.RootX), int(e.RootY))
	case intuition.GadgetResizeSE, intuition.GadgetResizeNW, intuition.GadgetResizeNE,
		intuition.GadgetResizeSW, intuition.GadgetResizeN, intuition.GadgetResizeS,
		intuition.GadgetResizeW, intuition.GadgetResizeE:
		l.wm.BeginResize(cv, gadget, int(e.RootX), int(e.RootY))
	case intuition.GadgetScrollKnobV, intuition.GadgetScrollKnobH:
		l.beginScrollDrag(cv, gadget, lx, ly)
	case intuition.GadgetScrollTrackV:
		l.pageScroll(cv, true, ly)
	case intuition.GadgetScrollTrackH:
		l.pageScroll(cv, false, lx)
	case intuition.GadgetScrollArrowUp:
		l.stepScroll(cv, true, -scrollStep)
	case intuition.GadgetScrollArrowDown:
		l.stepScroll(cv, true, scrollStep)
	case intuition.GadgetScrollArrowLeft:
		l.stepScroll(cv, false, -scrollStep)
	case intuition.GadgetScrollArrowRight:
		l.stepScroll(cv, false, scrollStep)
	case intuition.GadgetClient:
		l.onContentPress(cv, lx, ly, e.Detail, e.State&xproto.ModMaskShift != 0)
	}
}

// openTopLevelAt resolves which top-level menubar label localX falls under
// and opens its dropdown, per spec.md §4.F.
func (l *Loop) openTopLevelAt(localX int) {
	items := l.bar.TopLevel()
	x := 0
	for _, it := range items {
		w := l.labelWidth(it.Label) + 24
		if localX >= x && localX < x+w {
			l.openTopDropdown(it.Children, l.bar.Canvas.X+x)
			return
		}
		x += w
	}
}

// onContentPress handles a press inside a frame's content area: for a
// foreign client it just activates/passes through; for a workbench canvas
// it resolves selection, double-click actions, and drag start, per
// spec.md §4.E.
func (l *Loop) onContentPress(cv *canvas.Canvas, lx, ly int, button byte, shift bool) {
	if cv.ClientWindow != 0 {
		l.wm.SetActive(cv)
		return
	}
	l.wm.SetActive(cv)
	wb, err := l.wbFor(cv)
	if err != nil {
		logging.L.Printf("events.onContentPress: %s: %v", cv.View.Path, err)
		return
	}
	content := cv.ContentRect()
	cx := lx - content.X + cv.View.ScrollX
	cy := ly - content.Y + cv.View.ScrollY
	ic := wb.IconAt(cx, cy)

	if button != 1 {
		wb.Select(ic, shift)
		l.comp.NoteCanvasDamage(cv)
		return
	}

	if ic != nil && ic.RegisterClick(cx, cy, time.Now()) {
		wb.Select(ic, false)
		l.comp.NoteCanvasDamage(cv)
		l.activateIcon(cv, wb, ic)
		return
	}
	wb.Select(ic, shift)
	l.comp.NoteCanvasDamage(cv)
	if ic != nil {
		l.drag.Begin(wb, ic, cx, cy)
		l.dragIcon = cv
	}
}

// activateIcon implements spec.md §4.E's double-click dispatch by icon kind.
func (l *Loop) activateIcon(cv *canvas.Canvas, wb *workbench.Canvas, ic *workbench.Icon) {
	switch ic.Kind {
	case workbench.Drawer, workbench.Device:
		l.openDirectory(ic.Path)
	case workbench.Iconified:
		if target, ok := intuition.CanvasForHandle(ic); ok {
			l.wm.Restore(target)
		}
	case workbench.File:
		if _, err := dialogs.Launch(ic.Path); err != nil {
			logging.L.Printf("events.activateIcon: launch %s: %v", ic.Path, err)
		}
	}
}

// openDirectory opens path in its existing Window canvas if one is already
// showing it, else creates one at its spatial (or cascade) geometry, per
// spec.md §4.E.
func (l *Loop) openDirectory(path string) {
	for _, cv := range l.store.Windows() {
		if cv.View.Path == path {
			l.wm.SetActive(cv)
			return
		}
	}
	g := workbench.LoadGeometry(path, 400, 300)
	win, err := xproto.NewWindowId(l.conn.XU.Conn())
	if err != nil {
		logging.L.Printf("events.openDirectory: alloc id: %v", err)
		return
	}
	depth := l.conn.ScreenDepth
	if err := xproto.CreateWindowChecked(l.conn.XU.Conn(), depth, win, l.conn.Root,
		int16(g.X), int16(g.Y), uint16(g.W), uint16(g.H), 0,
		xproto.WindowClassInputOutput, 0,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{0, uint32(xproto.EventMaskExposure | xproto.EventMaskButtonPress |
			xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)},
	).Check(); err != nil {
		logging.L.Printf("events.openDirectory: CreateWindow: %v", err)
		return
	}
	xproto.MapWindow(l.conn.XU.Conn(), win)

	cv := l.store.Create(canvas.Window, g.X, g.Y, g.W, g.H, win, 0, path)
	l.comp.SetupCanvas(cv, depth)
	l.wm.SetActive(cv)
}

// onButtonRelease ends drag/resize/scrollbar-drag state, commits armed
// gadgets, and completes icon drag-and-drop, per spec.md §4.D/§4.E.
func (l *Loop) onButtonRelease(e xproto.ButtonReleaseEvent) {
	if l.wm.Dragging() {
		l.wm.EndDrag()
	}
	if l.wm.Resizing() {
		l.wm.EndResize()
	}
	if l.scroll.active {
		l.scroll = scrollDrag{}
	}

	if l.armedCanvas != nil {
		l.commitArmedGadget(e)
	}

	if l.drag.Icon != nil {
		l.endIconDrag(e)
	}

	// A left release over an open dropdown or submenu activates the item
	// under the pointer. A release on the top dropdown while a submenu is
	// open lands on that submenu's parent row, which has no action.
	if cv, ok := l.store.FindByFrame(e.Event); ok && cv.Kind == canvas.Menu && e.Detail == 1 {
		if sub := l.bar.SubmenuCanvas(); sub == nil || sub == cv {
			l.activateAt(int(e.EventY))
			l.comp.NoteCanvasDamage(l.bar.Canvas)
		}
	}
}

// commitArmedGadget fires the action armed by onButtonPress only if the
// release lands back on the same gadget of the same frame, per spec.md
// §4.D's press-arms/release-commits rule.
func (l *Loop) commitArmedGadget(e xproto.ButtonReleaseEvent) {
	cv, gadget := l.armedCanvas, l.armedGadget
	l.armedCanvas, l.armedGadget = nil, intuition.GadgetNone

	released, ok := l.store.FindByFrame(e.Event)
	if !ok || released != cv {
		return
	}
	if intuition.HitTest(cv, int(e.EventX), int(e.EventY)) != gadget {
		return
	}
	switch gadget {
	case intuition.GadgetLower:
		l.wm.LowerCanvas(cv)
	case intuition.GadgetClose:
		l.closeCanvas(cv)
	case intuition.GadgetIconify:
		l.wm.Iconify(cv)
	case intuition.GadgetMaximize:
		l.wm.ToggleMaximize(cv)
	}
}

// closeCanvas asks a client to close itself via WM_DELETE_WINDOW if it
// supports that protocol, else destroys it outright; a workbench/dialog
// frame with no client is simply torn down, per spec.md §4.D.
func (l *Loop) closeCanvas(cv *canvas.Canvas) {
	if cv.ClientWindow == 0 {
		l.forgetWB(cv)
		l.comp.DestroyCanvas(cv)
		l.store.Destroy(cv)
		xproto.DestroyWindow(l.conn.XU.Conn(), cv.Frame)
		return
	}
	if l.supportsDeleteProtocol(cv.ClientWindow) {
		l.sendDeleteWindow(cv.ClientWindow)
		return
	}
	xproto.DestroyWindow(l.conn.XU.Conn(), cv.ClientWindow)
}

func (l *Loop) supportsDeleteProtocol(win xproto.Window) bool {
	conn := l.conn.XU.Conn()
	protocols := l.atoms.get("WM_PROTOCOLS")
	reply, err := xproto.GetProperty(conn, false, win, protocols, xproto.AtomAtom, 0, 64).Reply()
	if err != nil || reply.ValueLen == 0 {
		return false
	}
	del := l.atoms.get("WM_DELETE_WINDOW")
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		atom := xproto.Atom(uint32(reply.Value[i]) | uint32(reply.Value[i+1])<<8 |
			uint32(reply.Value[i+2])<<16 | uint32(reply.Value[i+3])<<24)
		if atom == del {
			return true
		}
	}
	return false
}

func (l *Loop) sendDeleteWindow(win xproto.Window) {
	conn := l.conn.XU.Conn()
	protocols := l.atoms.get("WM_PROTOCOLS")
	del := l.atoms.get("WM_DELETE_WINDOW")
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnion{Data32: []uint32{uint32(del), uint32(xproto.TimeCurrentTime), 0, 0, 0}},
	}
	xproto.SendEvent(conn, false, win, 0, string(ev.Bytes()))
}

// endIconDrag resolves the drop target by hit-testing the canvas under the
// release point and applies same-canvas, cross-canvas, or onto-drawer
// semantics, per spec.md §4.E.
func (l *Loop) endIconDrag(e xproto.ButtonReleaseEvent) {
	d := &l.drag
	src := l.dragIcon
	defer func() { *d = workbench.DragState{}; l.dragIcon = nil }()

	dst, ok := l.store.FindByFrame(e.Event)
	if !ok || dst.ClientWindow != 0 {
		return
	}
	content := dst.ContentRect()
	cx := int(e.EventX) - content.X + dst.View.ScrollX
	cy := int(e.EventY) - content.Y + dst.View.ScrollY

	dstWB, err := l.wbFor(dst)
	if err != nil {
		return
	}
	if target := dstWB.IconAt(cx, cy); target != nil && target.Kind == workbench.Drawer && target != d.Icon {
		if err := d.DropOnDrawer(target); err != nil {
			logging.L.Printf("events.endIconDrag: drop on drawer: %v", err)
		}
		if src != nil {
			l.comp.NoteCanvasDamage(src)
		}
		return
	}
	if err := d.DropOnCanvas(dstWB, cx, cy); err != nil {
		logging.L.Printf("events.endIconDrag: drop: %v", err)
	}
	l.comp.NoteCanvasDamage(dst)
	if src != nil && src != dst {
		l.comp.NoteCanvasDamage(src)
	}
}

func (l *Loop) beginScrollDrag(cv *canvas.Canvas, gadget intuition.Gadget, lx, ly int) {
	vertical := gadget == intuition.GadgetScrollKnobV
	start := cv.View.ScrollX
	pt := lx
	if vertical {
		start, pt = cv.View.ScrollY, ly
	}
	l.scroll = scrollDrag{active: true, cv: cv, vertical: vertical, startPt: pt, startPos: start}
}

func (l *Loop) pageScroll(cv *canvas.Canvas, vertical bool, localPt int) {
	content := cv.ContentRect()
	page := content.H
	if !vertical {
		page = content.W
	}
	if vertical {
		cv.View.ScrollY += page
	} else {
		cv.View.ScrollX += page
	}
	cv.View.ClampScroll(content.W, content.H)
	l.wm.Paint(l.face, cv)
	l.comp.NoteCanvasDamage(cv)
}

func (l *Loop) stepScroll(cv *canvas.Canvas, vertical bool, delta int) {
	content := cv.ContentRect()
	if vertical {
		cv.View.ScrollY += delta
	} else {
		cv.View.ScrollX += delta
	}
	cv.View.ClampScroll(content.W, content.H)
	l.wm.Paint(l.face, cv)
	l.comp.NoteCanvasDamage(cv)
}

// onMotionNotify drives drag/resize continuation, the icon drag proxy, and
// menu hover, per spec.md §4.D/§4.E/§4.F.
func (l *Loop) onMotionNotify(e xproto.MotionNotifyEvent) {
	if l.wm.Dragging() {
		l.wm.UpdateDrag(int(e.RootX), int(e.RootY))
		return
	}
	if l.wm.Resizing() {
		l.wm.UpdateResize(int(e.RootX), int(e.RootY))
		return
	}
	if l.scroll.active {
		l.updateScrollDrag(int(e.EventX), int(e.EventY))
		return
	}

	cv, ok := l.store.FindByFrame(e.Event)
	if !ok {
		return
	}
	if cv == l.bar.Canvas && l.bar.Mode == menu.Menu {
		l.openTopLevelAt(int(e.EventX))
		return
	}
	if cv.Kind == canvas.Menu {
		l.syncHover(int(e.EventY))
		return
	}
	if l.drag.Icon != nil {
		l.drag.PastThreshold(int(e.EventX), int(e.EventY))
	}
}

func (l *Loop) updateScrollDrag(lx, ly int) {
	s := &l.scroll
	cv := s.cv
	content := cv.ContentRect()
	if s.vertical {
		sb := intuition.Scrollbars(cv)
		knobLen := intuition.KnobLen(sb.VTrackH, cv.View.ContentH)
		delta := ly - s.startPt
		span := sb.VTrackH - knobLen
		if span > 0 {
			cv.View.ScrollY = s.startPos + delta*cv.View.MaxScrollY/span
		}
	} else {
		sb := intuition.Scrollbars(cv)
		knobLen := intuition.KnobLen(sb.HTrackW, cv.View.ContentW)
		delta := lx - s.startPt
		span := sb.HTrackW - knobLen
		if span > 0 {
			cv.View.ScrollX = s.startPos + delta*cv.View.MaxScrollX/span
		}
	}
	cv.View.ClampScroll(content.W, content.H)
	l.wm.Paint(l.face, cv)
	l.comp.NoteCanvasDamage(cv)
}

// onKeyPress implements the dispatcher's global shortcuts: Alt+Tab cycles
// focus (SPEC_FULL.md §12's MRU supplement), Escape cancels a drag/dropdown
// or dismisses a dialog, Enter confirms a dialog, per spec.md §4.H.
func (l *Loop) onKeyPress(e xproto.KeyPressEvent) {
	sym := keybind.LookupString(l.conn.XU, e.State, e.Detail)

	if e.State&xproto.ModMask1 != 0 && sym == "Tab" {
		l.wm.CycleFocus()
		return
	}

	switch sym {
	case "Escape":
		switch {
		case l.dialog != nil:
			l.dialog.Cancel()
			l.closeDialog()
		case l.bar.IsOpen():
			l.closeMenus()
		case l.drag.Icon != nil:
			l.drag = workbench.DragState{}
		}
	case "Return", "KP_Enter":
		if l.dialog != nil {
			l.dialog.Confirm()
			l.closeDialog()
		}
	}
}

// onMapRequest reparents a new top-level client, per spec.md §4.D, or maps
// an already-managed/override-redirect window straight through.
func (l *Loop) onMapRequest(e xproto.MapRequestEvent) {
	if _, ok := l.store.FindByClient(e.Window); ok {
		xproto.MapWindow(l.conn.XU.Conn(), e.Window)
		return
	}
	attrs, err := xproto.GetWindowAttributes(l.conn.XU.Conn(), e.Window).Reply()
	if err == nil && attrs.OverrideRedirect {
		xproto.MapWindow(l.conn.XU.Conn(), e.Window)
		return
	}
	geom, err := xproto.GetGeometry(l.conn.XU.Conn(), xproto.Drawable(e.Window)).Reply()
	if err != nil {
		logging.L.Printf("events.onMapRequest: GetGeometry: %v", err)
		return
	}
	l.wm.Reparent(e.Window, int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height), geom.Depth)
}

// onMapNotify marks a canvas mapped/visible, triggering a repaint, per
// spec.md §4.C.
func (l *Loop) onMapNotify(e xproto.MapNotifyEvent) {
	cv, ok := l.store.FindByFrame(e.Window)
	if !ok {
		return
	}
	cv.Comp.Mapped = true
	cv.Comp.Visible = true
	l.comp.NoteCanvasDamage(cv)
}

// onUnmapNotify marks a canvas's content hidden without tearing it down; a
// client that withdraws itself (rather than being iconified by amiwb) is
// left as an empty frame until DestroyNotify, per spec.md §4.C/§4.D.
func (l *Loop) onUnmapNotify(e xproto.UnmapNotifyEvent) {
	if cv, ok := l.store.FindByClient(e.Window); ok {
		cv.Comp.Mapped = false
		l.comp.NoteCanvasDamage(cv)
		return
	}
	if cv, ok := l.store.FindByFrame(e.Window); ok {
		cv.Comp.Mapped = false
		l.comp.NoteCanvasDamage(cv)
	}
}

// onConfigureRequest honors a client's own resize/move request, keeping its
// frame's border offsets consistent, or passes it straight through for an
// unmanaged window, per spec.md §4.D.
func (l *Loop) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	conn := l.conn.XU.Conn()
	cv, ok := l.store.FindByClient(e.Window)
	if !ok {
		mask := uint16(e.ValueMask)
		values := configureValues(e)
		xproto.ConfigureWindow(conn, e.Window, mask, values)
		return
	}

	b := cv.Borders()
	old := cv.Rect()
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		cv.W = int(e.Width) + b.Left + b.Right
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		cv.H = int(e.Height) + b.Top + b.Bottom
	}
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		cv.X = int(e.X) - b.Left
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		cv.Y = int(e.Y) - b.Top
	}

	xproto.ConfigureWindow(conn, cv.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(cv.X)), uint32(int32(cv.Y)), uint32(cv.W), uint32(cv.H)})
	content := cv.ContentRect()
	xproto.ConfigureWindow(conn, cv.ClientWindow,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(content.X)), uint32(int32(content.Y)), uint32(content.W), uint32(content.H)})

	l.comp.NoteRectDamage(old)
	l.comp.Resized(cv, cv.Comp.Depth)
	l.wm.Paint(l.face, cv)
}

func configureValues(e xproto.ConfigureRequestEvent) []uint32 {
	var values []uint32
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(e.StackMode))
	}
	return values
}

// onConfigureNotify is mostly informational for amiwb: every geometry
// change to a managed frame already originates from this process. It only
// matters for override-redirect popups the compositor tracks by rectangle
// rather than by Canvas (spec.md §4.C).
func (l *Loop) onConfigureNotify(e xproto.ConfigureNotifyEvent) {
	if _, ok := l.store.FindByFrame(e.Window); ok {
		return
	}
	l.comp.NoteRectDamage(canvas.Rect{X: int(e.X), Y: int(e.Y), W: int(e.Width), H: int(e.Height)})
}

// onDestroyNotify tears down a client's canvas (and its frame) once the
// client itself is gone, in the strict free order spec.md §5 requires.
func (l *Loop) onDestroyNotify(e xproto.DestroyNotifyEvent) {
	cv, ok := l.store.FindByClient(e.Window)
	if !ok {
		return
	}
	l.wm.OnDestroy(cv)
	l.forgetWB(cv)
	l.comp.DestroyCanvas(cv)
	l.store.Destroy(cv)
	xproto.DestroyWindow(l.conn.XU.Conn(), cv.Frame)
}

// onPropertyNotify refreshes a client's title and app-menu substitution
// when the properties spec.md §6 lists change.
func (l *Loop) onPropertyNotify(e xproto.PropertyNotifyEvent) {
	cv, ok := l.store.FindByClient(e.Window)
	if !ok {
		return
	}
	switch e.Atom {
	case l.atoms.get("_AMIWB_TITLE_CHANGE"):
		if title, err := readUTF8Property(l.conn.XU.Conn(), e.Window, e.Atom); err == nil {
			cv.View.TitleChange = title
			l.wm.Paint(l.face, cv)
			l.comp.NoteCanvasDamage(cv)
		}
	case l.atoms.get("_AMIWB_APP_MENU"):
		if cv == l.wmActive() {
			l.bar.OnActiveWindowChanged(l.conn.XU.Conn(), e.Window)
		}
	}
}

func (l *Loop) wmActive() *canvas.Canvas {
	for _, cv := range l.store.Windows() {
		if cv.WM.Active {
			return cv
		}
	}
	return nil
}

func readUTF8Property(conn *xgb.Conn, win xproto.Window, atom xproto.Atom) (string, error) {
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomString, 0, 1024).Reply()
	if err != nil {
		return "", err
	}
	return string(reply.Value), nil
}

// onClientMessage handles _NET_WM_STATE fullscreen toggling, the one
// client message spec.md §6 requires the core to honor.
func (l *Loop) onClientMessage(e xproto.ClientMessageEvent) {
	if e.Type != l.atoms.get("_NET_WM_STATE") {
		return
	}
	cv, ok := l.store.FindByClient(e.Window)
	if !ok {
		return
	}
	data := e.Data.Data32
	action := data[0]
	fsAtom := l.atoms.get("_NET_WM_STATE_FULLSCREEN")
	targets := data[1] == uint32(fsAtom) || data[2] == uint32(fsAtom)
	if !targets {
		return
	}
	switch action {
	case 0: // _NET_WM_STATE_REMOVE
		l.wm.SetFullscreen(cv, false)
	case 1: // _NET_WM_STATE_ADD
		l.wm.SetFullscreen(cv, true)
	case 2: // _NET_WM_STATE_TOGGLE
		l.wm.SetFullscreen(cv, !cv.WM.Fullscreen)
	}
}
