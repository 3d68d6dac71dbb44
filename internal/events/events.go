// Package events is amiwb's single-threaded event dispatcher: it
// multiplexes the X connection, the compositor's frame timer, the
// disk-drive watcher, and child-process completion, and routes X events to
// the window manager, workbench, and menu packages, per spec.md §4.G.
//
// The select() loop spec.md describes is expressed here as one goroutine
// per event source (X, timer, inotify, child jobs) feeding buffered
// channels into a single consuming select in Run; only Run's goroutine
// ever touches the canvas store, the compositor, or the window manager, so
// the "only the main loop touches shared state" invariant (spec.md §5)
// holds even though Go's runtime, not a literal select(2) syscall,
// schedules the feeder goroutines.
package events

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/fsnotify/fsnotify"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/compositor"
	"github.com/nsklaus/amiwb-sub000/internal/config"
	"github.com/nsklaus/amiwb-sub000/internal/diskdrives"
	"github.com/nsklaus/amiwb-sub000/internal/dialogs"
	"github.com/nsklaus/amiwb-sub000/internal/intuition"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/menu"
	"github.com/nsklaus/amiwb-sub000/internal/textmetrics"
	"github.com/nsklaus/amiwb-sub000/internal/workbench"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
)

// Loop is the process-wide event-dispatcher singleton (spec.md §9).
type Loop struct {
	conn  *xconn.Conn
	store *canvas.Store
	comp  *compositor.Compositor
	wm    *intuition.WM
	bar   *menu.Bar
	face  *textmetrics.Face
	cfg   config.Config

	drives *diskdrives.Watcher
	jobs   *jobTable

	wb    map[*canvas.Canvas]*workbench.Canvas
	atoms *atomCache

	drag     workbench.DragState
	dragIcon *canvas.Canvas // the source canvas of the icon being dragged
	dialog   *dialogs.Dialog
	dispatch menu.DispatchTable

	// armedGadget/armedCanvas implement the press-arms/release-commits
	// pattern for titlebar gadgets (spec.md §4.D): Close/Iconify/Maximize/
	// Lower only fire if the release lands back on the same gadget.
	armedGadget intuition.Gadget
	armedCanvas *canvas.Canvas

	// scroll tracks an in-progress scrollbar knob drag.
	scroll scrollDrag

	xevents chan xgbEvent
	quit    chan struct{}
}

// scrollDrag implements spec.md §4.D's scrollbar-knob drag: press on a
// knob records the axis and starting scroll offset; motion maps pointer
// delta back to a scroll value; release clears it.
type scrollDrag struct {
	active   bool
	cv       *canvas.Canvas
	vertical bool
	startPt  int
	startPos int
}

type xgbEvent struct {
	ev  xgb.Event
	err xgb.Error
}

// New builds the dispatcher around the process-wide singletons constructed
// by cmd/amiwb's startup sequence.
func New(conn *xconn.Conn, store *canvas.Store, comp *compositor.Compositor, wm *intuition.WM,
	bar *menu.Bar, face *textmetrics.Face, cfg config.Config, drives *diskdrives.Watcher) *Loop {
	l := &Loop{
		conn:    conn,
		store:   store,
		comp:    comp,
		wm:      wm,
		bar:     bar,
		face:    face,
		cfg:     cfg,
		drives:  drives,
		jobs:    newJobTable(),
		wb:      make(map[*canvas.Canvas]*workbench.Canvas),
		atoms:   newAtomCache(conn.XU.Conn()),
		xevents: make(chan xgbEvent, 64),
		quit:    make(chan struct{}),
	}
	intuition.SetIconifyHandler(l)
	return l
}

// SetDispatchTable installs the menu dispatch table built by cmd/amiwb,
// which closes over the very singletons this loop holds.
func (l *Loop) SetDispatchTable(t menu.DispatchTable) { l.dispatch = t }

// pumpX blocks in WaitForEvent and forwards every event/error to xevents,
// exiting once the connection is closed. Like the other feeder goroutines,
// it never touches shared WM/compositor state, only the channel.
func (l *Loop) pumpX() {
	conn := l.conn.XU.Conn()
	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			return // connection closed
		}
		select {
		case l.xevents <- xgbEvent{ev, err}:
		case <-l.quit:
			return
		}
	}
}

// Run is amiwb's main loop: it multiplexes the X event stream, the
// compositor's frame timer, the disk-drive watcher, and completed child
// jobs, per spec.md §4.G. It returns when Quit is called.
func (l *Loop) Run() error {
	go l.pumpX()
	l.comp.Scheduler().Start()

	// A nil Watcher leaves driveEvents nil, which blocks forever in the
	// select below — exactly the semantics of an absent inotify fd.
	var driveEvents <-chan fsnotify.Event
	if l.drives != nil {
		driveEvents = l.drives.Events()
	}

	for {
		select {
		case <-l.quit:
			return nil

		case xe := <-l.xevents:
			if xe.err != nil {
				continue // the installed error handler already logged it
			}
			l.handleX(xe.ev)

		case <-l.comp.Scheduler().FD():
			l.comp.Scheduler().Fire()

		case _, ok := <-driveEvents:
			if !ok {
				driveEvents = nil
				continue
			}
			l.onDriveEvents(l.drives.Poll())

		case done := <-l.jobs.done:
			l.onJobDone(done)
		}
	}
}

// Quit stops the loop; cmd/amiwb calls this from a SIGTERM/SIGINT handler
// or from the menu's Quit action.
func (l *Loop) Quit() {
	select {
	case <-l.quit:
	default:
		close(l.quit)
	}
}

// handleX type-switches on the X event and routes it, per spec.md §4.G.
func (l *Loop) handleX(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		l.onButtonPress(e)
	case xproto.ButtonReleaseEvent:
		l.onButtonRelease(e)
	case xproto.MotionNotifyEvent:
		l.onMotionNotify(e)
	case xproto.KeyPressEvent:
		l.onKeyPress(e)
	case xproto.MapRequestEvent:
		l.onMapRequest(e)
	case xproto.MapNotifyEvent:
		l.onMapNotify(e)
	case xproto.UnmapNotifyEvent:
		l.onUnmapNotify(e)
	case xproto.ConfigureRequestEvent:
		l.onConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		l.onConfigureNotify(e)
	case xproto.DestroyNotifyEvent:
		l.onDestroyNotify(e)
	case xproto.PropertyNotifyEvent:
		l.onPropertyNotify(e)
	case xproto.ClientMessageEvent:
		l.onClientMessage(e)
	case xproto.ExposeEvent:
		l.onExpose(e)
	case damage.NotifyEvent:
		l.onDamageNotify(e)
	case randr.ScreenChangeNotifyEvent:
		l.onScreenChange(e)
	}
}

func (l *Loop) onExpose(e xproto.ExposeEvent) {
	if cv, ok := l.store.FindByFrame(e.Window); ok {
		l.comp.NoteCanvasDamage(cv)
	}
}

func (l *Loop) onDamageNotify(e damage.NotifyEvent) {
	if cv, ok := l.store.FindByFrame(e.Drawable); ok {
		l.comp.NoteCanvasDamage(cv)
		return
	}
	// Not a managed frame: might be an override-redirect window (tooltip,
	// foreign popup), whose damage still has to drive a repaint even
	// though it has no Canvas, per spec.md §4.C.
	l.comp.NoteRectDamage(canvas.Rect{
		X: int(e.Area.X), Y: int(e.Area.Y),
		W: int(e.Area.Width), H: int(e.Area.Height),
	})
}

// onScreenChange recreates the compositor's back buffer at the new screen
// size, per spec.md §8 invariant 6.
func (l *Loop) onScreenChange(e randr.ScreenChangeNotifyEvent) {
	w, h := int(e.Width), int(e.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if err := l.comp.Resize(w, h); err != nil {
		logging.L.Printf("events.onScreenChange: %v", err)
	}
}
