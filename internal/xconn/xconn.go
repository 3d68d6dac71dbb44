// Package xconn centralizes the X11 connection and extension bootstrap
// shared by the compositor and the window manager: opening the display,
// initializing Composite/Damage/Render/Fixes/Shape/RandR, and installing
// the scoped error-handler machinery described in spec.md §4.C and §7.
package xconn

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// Conn bundles the xgbutil connection with the extension availability and
// screen geometry every subsystem needs. It is a process-wide singleton,
// per spec.md §9.
type Conn struct {
	XU   *xgbutil.XUtil
	Root xproto.Window

	ScreenW, ScreenH int
	ScreenDepth      byte

	HasComposite bool
	HasDamage    bool
	HasRender    bool
	HasFixes     bool
	HasShape     bool
	HasRandr     bool

	// GC is a general-purpose 32-bit-depth graphics context, shared by every
	// PutImage call the surface package makes to upload painted content.
	GC xproto.Gcontext

	shuttingDown   bool
	currentHandler func(xgb.Error)
}

// Open connects to the X server named by the DISPLAY environment variable,
// resolves the default screen, and probes every extension amiwb depends
// on. A missing Composite/Damage/Render extension is a fatal init failure
// per spec.md §7 — the caller should log and exit(1).
func Open() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "cannot open display")
	}

	c := &Conn{XU: xu, Root: xu.RootWin()}
	screen := xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn())
	c.ScreenW = int(screen.WidthInPixels)
	c.ScreenH = int(screen.HeightInPixels)
	c.ScreenDepth = screen.RootDepth

	if err := composite.Init(xu.Conn()); err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "Composite extension required")
	}
	c.HasComposite = true

	if err := damage.Init(xu.Conn()); err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "Damage extension required")
	}
	c.HasDamage = true

	if err := render.Init(xu.Conn()); err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "Render extension required")
	}
	c.HasRender = true

	if err := xfixes.Init(xu.Conn()); err != nil {
		logging.L.Printf("xconn.Open: XFixes unavailable: %v", err)
	} else {
		c.HasFixes = true
	}

	if err := shape.Init(xu.Conn()); err != nil {
		logging.L.Printf("xconn.Open: Shape unavailable: %v", err)
	} else {
		c.HasShape = true
	}

	if err := randr.Init(xu.Conn()); err != nil {
		logging.L.Printf("xconn.Open: RandR unavailable, screen-change notifications disabled: %v", err)
	} else {
		c.HasRandr = true
		randr.SelectInputChecked(xu.Conn(), c.Root, randr.NotifyMaskScreenChange)
	}

	// PutImage's GC must share its target drawable's depth, and every
	// surface.Buffer uploads to a 32-bit (ARGB) pixmap per spec.md §3's
	// "offscreen buffer has an alpha channel" invariant, so the shared GC
	// is created against a scratch 32-bit pixmap rather than root (whose
	// depth is usually 24).
	scratch, err := xproto.NewPixmapId(xu.Conn())
	if err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "alloc scratch pixmap")
	}
	if err := xproto.CreatePixmapChecked(xu.Conn(), 32, scratch, xproto.Drawable(c.Root), 1, 1).Check(); err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "create scratch pixmap")
	}
	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "alloc gcontext")
	}
	if err := xproto.CreateGCChecked(xu.Conn(), gc, xproto.Drawable(scratch), 0, nil).Check(); err != nil {
		return nil, xerr.Wrap(err, "xconn.Open", "create gcontext")
	}
	xproto.FreePixmap(xu.Conn(), scratch)
	c.GC = gc

	return c, nil
}

// SetRootCursor loads the standard left-pointer cursor and applies it to
// root, per spec.md §4.D bootstrapping.
func (c *Conn) SetRootCursor() error {
	cursor, err := xcursor.CreateCursor(c.XU, xcursor.LeftPtr)
	if err != nil {
		return xerr.Wrap(err, "xconn.SetRootCursor", "create cursor")
	}
	return xproto.ChangeWindowAttributesChecked(c.XU.Conn(), c.Root, xproto.CwCursor,
		[]uint32{uint32(cursor)}).Check()
}

// SelectRootEvents subscribes root to the event masks the window manager
// needs, per spec.md §4.D. BadAccess here (another WM already running) is
// fatal by the convention spec.md §7 documents.
func (c *Conn) SelectRootEvents() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskKeyPress)
	err := xproto.ChangeWindowAttributesChecked(c.XU.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{mask}).Check()
	if err != nil {
		return xerr.Wrap(err, "xconn.SelectRootEvents", "another window manager may be running")
	}
	return nil
}

// BeginShutdown marks the connection as tearing down; the installed error
// handler consults this to silently suppress X errors during teardown,
// per spec.md §7.
func (c *Conn) BeginShutdown() { c.shuttingDown = true }

// ShuttingDown reports whether BeginShutdown has been called.
func (c *Conn) ShuttingDown() bool { return c.shuttingDown }

// QueryTree returns w's children in bottom-to-top stacking order, used by
// the compositor every frame (spec.md §4.C, §5) rather than mirroring
// stacking state locally.
func (c *Conn) QueryTree(w xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.XU.Conn(), w).Reply()
	if err != nil {
		return nil, xerr.Wrap(err, "xconn.QueryTree", "window %d", w)
	}
	return reply.Children, nil
}

// NewWindowHelper wraps w with xgbutil's xwindow convenience type for
// geometry/move/resize calls.
func (c *Conn) NewWindowHelper(w xproto.Window) *xwindow.Window {
	return xwindow.New(c.XU, w)
}

func (c *Conn) String() string {
	return fmt.Sprintf("xconn{screen %dx%d depth %d composite=%v damage=%v render=%v}",
		c.ScreenW, c.ScreenH, c.ScreenDepth, c.HasComposite, c.HasDamage, c.HasRender)
}
