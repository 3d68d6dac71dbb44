// Package compositor implements amiwb's offscreen-redirection compositing
// engine: it redirects every top-level window to an offscreen pixmap,
// tracks damage, and renders stacking order into a back buffer blitted to
// the composite overlay window, per spec.md §4.C.
package compositor

import (
	"time"

	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// Compositor is the process-wide singleton owning the overlay window, the
// back buffer, and the frame scheduler (spec.md §9).
type Compositor struct {
	conn  *xconn.Conn
	store *canvas.Store

	cmSelectionOwner xproto.Window
	overlay          xproto.Window

	backPixmap  xproto.Pixmap
	backPicture render.Picture
	overlayPic  render.Picture

	wallpaperDesktop render.Picture
	wallpaperWindow  render.Picture

	overrides *overrideList

	sched *scheduler
}

// New bootstraps the compositor: acquires the _NET_WM_CM_S{screen}
// selection, redirects root's subwindows, sets up the overlay window and
// back buffer. Non-fatal if another compositor already owns the
// selection, per spec.md §4.C.
func New(conn *xconn.Conn, store *canvas.Store, targetFPS int, mode RenderMode) (*Compositor, error) {
	if !conn.HasComposite || !conn.HasDamage || !conn.HasRender {
		return nil, xerr.New("compositor.New", "Composite/Damage/Render required")
	}

	c := &Compositor{
		conn:      conn,
		store:     store,
		overrides: newOverrideList(),
	}

	if err := c.acquireSelection(); err != nil {
		logging.L.Printf("compositor.New: %v (another compositor may be running)", err)
	}

	if err := composite.RedirectSubwindowsChecked(conn.XU.Conn(), conn.Root, composite.RedirectManual).Check(); err != nil {
		return nil, xerr.Wrap(err, "compositor.New", "RedirectSubwindows")
	}

	reply, err := composite.GetOverlayWindow(conn.XU.Conn(), conn.Root).Reply()
	if err != nil {
		return nil, xerr.Wrap(err, "compositor.New", "GetOverlayWindow")
	}
	c.overlay = reply.OverlayWin

	if conn.HasFixes {
		if err := c.makeOverlayClickThrough(); err != nil {
			logging.L.Printf("compositor.New: overlay input shape: %v", err)
		}
	} else if conn.HasShape {
		if err := shape.RectanglesChecked(conn.XU.Conn(), shape.SoSet, shape.SkInput, 0,
			c.overlay, 0, 0, nil).Check(); err != nil {
			logging.L.Printf("compositor.New: overlay input shape (Shape fallback): %v", err)
		}
	}

	if err := c.createBackBuffer(); err != nil {
		return nil, err
	}

	c.sched = newScheduler(targetFPS, mode, c.renderFrame)
	return c, nil
}

// makeOverlayClickThrough sets the overlay's input shape to the empty
// region via XFixes, so pointer events pass through to windows beneath it.
func (c *Compositor) makeOverlayClickThrough() error {
	region, err := xfixes.NewRegionId(c.conn.XU.Conn())
	if err != nil {
		return xerr.Wrap(err, "makeOverlayClickThrough", "alloc region id")
	}
	if err := xfixes.CreateRegionChecked(c.conn.XU.Conn(), region, nil).Check(); err != nil {
		return xerr.Wrap(err, "makeOverlayClickThrough", "CreateRegion")
	}
	defer xfixes.DestroyRegion(c.conn.XU.Conn(), region)
	return xfixes.SetWindowShapeRegionChecked(c.conn.XU.Conn(), c.overlay, shape.SkInput, 0, 0, region).Check()
}

// acquireSelection creates an override-redirect owner window and attempts
// to become the owner of _NET_WM_CM_S{screen} (screen 0 only; amiwb does
// not support multi-screen setups, consistent with spec.md §1 Non-goals).
func (c *Compositor) acquireSelection() error {
	atomName := "_NET_WM_CM_S0"
	atom, err := xproto.InternAtom(c.conn.XU.Conn(), false, uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return xerr.Wrap(err, "acquireSelection", "InternAtom")
	}

	owner, err := xproto.NewWindowId(c.conn.XU.Conn())
	if err != nil {
		return xerr.Wrap(err, "acquireSelection", "alloc owner window id")
	}
	if err := xproto.CreateWindowChecked(c.conn.XU.Conn(), 0, owner, c.conn.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, 0,
		xproto.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return xerr.Wrap(err, "acquireSelection", "create owner window")
	}
	c.cmSelectionOwner = owner

	return xproto.SetSelectionOwnerChecked(c.conn.XU.Conn(), owner, atom.Atom, 0).Check()
}

// createBackBuffer allocates the screen-sized ARGB back buffer and its
// render picture, plus the overlay's ARGB picture, per spec.md §4.C.
func (c *Compositor) createBackBuffer() error {
	pixmap, err := xproto.NewPixmapId(c.conn.XU.Conn())
	if err != nil {
		return xerr.Wrap(err, "createBackBuffer", "alloc pixmap id")
	}
	if err := xproto.CreatePixmapChecked(c.conn.XU.Conn(), 32, pixmap, xproto.Drawable(c.conn.Root),
		uint16(c.conn.ScreenW), uint16(c.conn.ScreenH)).Check(); err != nil {
		return xerr.Wrap(err, "createBackBuffer", "CreatePixmap")
	}
	c.backPixmap = pixmap

	argb32, err := argbFormat(c.conn)
	if err != nil {
		return err
	}

	backPic, err := newPictureID(c.conn)
	if err != nil {
		return err
	}
	if err := render.CreatePictureChecked(c.conn.XU.Conn(), backPic, xproto.Drawable(pixmap), argb32, 0, nil).Check(); err != nil {
		return xerr.Wrap(err, "createBackBuffer", "CreatePicture(back)")
	}
	c.backPicture = backPic

	overlayPic, err := newPictureID(c.conn)
	if err != nil {
		return err
	}
	if err := render.CreatePictureChecked(c.conn.XU.Conn(), overlayPic, xproto.Drawable(c.overlay), argb32, 0, nil).Check(); err != nil {
		return xerr.Wrap(err, "createBackBuffer", "CreatePicture(overlay)")
	}
	c.overlayPic = overlayPic
	return nil
}

// Resize recreates the back buffer at the new screen size, invoked on a
// RandR screen-change notification (spec.md §8 invariant 6).
func (c *Compositor) Resize(w, h int) error {
	c.conn.ScreenW, c.conn.ScreenH = w, h
	if c.backPicture != 0 {
		render.FreePicture(c.conn.XU.Conn(), c.backPicture)
	}
	if c.backPixmap != 0 {
		xproto.FreePixmap(c.conn.XU.Conn(), c.backPixmap)
	}
	return c.createBackBuffer()
}

// Store exposes the canvas store for packages that need to look up a
// canvas while reacting to a compositor-routed event.
func (c *Compositor) Store() *canvas.Store { return c.store }

// Scheduler exposes the frame scheduler for damage producers.
func (c *Compositor) Scheduler() *scheduler { return c.sched }

// Overlay returns the composite overlay window id.
func (c *Compositor) Overlay() xproto.Window { return c.overlay }

// Teardown releases the back buffer, overlay picture, and un-redirects
// root's subwindows. Per spec.md §5, resources are freed in the order
// flush -> pictures -> pixmaps -> damage -> windows; the caller must have
// already destroyed every per-canvas compositor state via DestroyCanvas
// before calling Teardown.
func (c *Compositor) Teardown() {
	c.conn.XU.Conn().Sync()
	if c.backPicture != 0 {
		render.FreePicture(c.conn.XU.Conn(), c.backPicture)
	}
	if c.overlayPic != 0 {
		render.FreePicture(c.conn.XU.Conn(), c.overlayPic)
	}
	if c.backPixmap != 0 {
		xproto.FreePixmap(c.conn.XU.Conn(), c.backPixmap)
	}
	composite.UnredirectSubwindows(c.conn.XU.Conn(), c.conn.Root, composite.RedirectManual)
}

func newPictureID(conn *xconn.Conn) (render.Picture, error) {
	id, err := render.NewPictureId(conn.XU.Conn())
	if err != nil {
		return 0, xerr.Wrap(err, "newPictureID", "alloc picture id")
	}
	return id, nil
}

// argbFormat resolves the 32-bit ARGB PictFormat via RenderQueryPictFormats,
// cached for the lifetime of the connection.
var cachedARGB32 render.Pictformat

func argbFormat(conn *xconn.Conn) (render.Pictformat, error) {
	if cachedARGB32 != 0 {
		return cachedARGB32, nil
	}
	reply, err := render.QueryPictFormats(conn.XU.Conn()).Reply()
	if err != nil {
		return 0, xerr.Wrap(err, "argbFormat", "QueryPictFormats")
	}
	for _, f := range reply.Formats {
		if f.Depth == 32 && f.Type == render.PictTypeDirect &&
			f.Direct.AlphaMask > 0 {
			cachedARGB32 = f.Id
			return f.Id, nil
		}
	}
	return 0, xerr.New("argbFormat", "no 32-bit ARGB PictFormat advertised")
}

// rgbFormat resolves the 24-bit RGB PictFormat, used for non-alpha
// windows per spec.md §4.C per-canvas setup rule.
func rgbFormat(conn *xconn.Conn) (render.Pictformat, error) {
	reply, err := render.QueryPictFormats(conn.XU.Conn()).Reply()
	if err != nil {
		return 0, xerr.Wrap(err, "rgbFormat", "QueryPictFormats")
	}
	for _, f := range reply.Formats {
		if f.Depth == 24 && f.Type == render.PictTypeDirect && f.Direct.AlphaMask == 0 {
			return f.Id, nil
		}
	}
	return 0, xerr.New("rgbFormat", "no 24-bit RGB PictFormat advertised")
}

func now() time.Time { return time.Now() }
