package compositor

import (
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
)

// raceSwallowCodes is the error allow-list used around every pixmap/
// picture/damage creation call, per spec.md §4.C and §7.
var raceSwallowCodes = []string{"BadWindow", "BadDrawable", "BadMatch", "BadDamage", "RenderBadPicture"}

// SetupCanvas names c's frame window's redirected pixmap, builds its
// render picture (ARGB32 for 32-bit windows, RGB24 otherwise, with
// subwindow-mode Include-Inferiors so a reparented client is sampled),
// and creates a RawRectangles-mode damage handle, per spec.md §4.C.
func (c *Compositor) SetupCanvas(cv *canvas.Canvas, depth byte) {
	c.conn.ScopedSwallow(raceSwallowCodes, func() {
		pixmap, err := xproto.NewPixmapId(c.conn.XU.Conn())
		if err != nil {
			return
		}
		if err := composite.NameWindowPixmapChecked(c.conn.XU.Conn(), cv.Frame, pixmap).Check(); err != nil {
			return
		}
		cv.Comp.Pixmap = pixmap

		format, ferr := pictFormatForDepth(c.conn, depth)
		if ferr != nil {
			return
		}
		pic, err := newPictureID(c.conn)
		if err != nil {
			return
		}
		attrs := []uint32{uint32(render.SubwindowModeIncludeInferiors)}
		if err := render.CreatePictureChecked(c.conn.XU.Conn(), pic, xproto.Drawable(pixmap), format,
			render.CpSubwindowMode, attrs).Check(); err != nil {
			return
		}
		cv.Comp.Picture = pic

		dmg, err := damage.NewDamageId(c.conn.XU.Conn())
		if err != nil {
			return
		}
		if err := damage.CreateChecked(c.conn.XU.Conn(), dmg, xproto.Drawable(cv.Frame),
			damage.ReportLevelRawRectangles).Check(); err != nil {
			return
		}
		cv.Comp.Damage = dmg
		cv.Comp.Depth = depth
		cv.Comp.Mapped = true
		cv.Comp.Visible = true
	})
}

// pictFormatForDepth chooses ARGB32 for 32-bit windows and RGB24
// otherwise, per spec.md §4.C per-canvas setup rule.
func pictFormatForDepth(conn *xconn.Conn, depth byte) (render.Pictformat, error) {
	if depth == 32 {
		return argbFormat(conn)
	}
	return rgbFormat(conn)
}

// Resized tears down and recreates cv's pixmap/picture pair after its
// frame window has been resized, per spec.md §4.C invariant: "When a
// managed window resizes, its pixmap/picture pair must be freed and
// recreated after the size change is applied."
func (c *Compositor) Resized(cv *canvas.Canvas, depth byte) {
	c.teardownPixmapPicture(cv)
	c.SetupCanvas(cv, depth)
	c.NoteCanvasDamage(cv)
}

// DestroyCanvas releases cv's compositor-owned resources in the order
// spec.md §5 requires: Sync, then free picture, then free pixmap, then
// destroy the damage handle (damage Subtract + Sync must precede its
// destruction to avoid BadDamage storms, spec.md §4.C).
func (c *Compositor) DestroyCanvas(cv *canvas.Canvas) {
	c.conn.ScopedSwallow(raceSwallowCodes, func() {
		c.conn.XU.Conn().Sync()
		if cv.Comp.Picture != 0 {
			render.FreePicture(c.conn.XU.Conn(), cv.Comp.Picture)
			cv.Comp.Picture = 0
		}
		if cv.Comp.Pixmap != 0 {
			xproto.FreePixmap(c.conn.XU.Conn(), cv.Comp.Pixmap)
			cv.Comp.Pixmap = 0
		}
		if cv.Comp.Damage != 0 {
			damage.Subtract(c.conn.XU.Conn(), cv.Comp.Damage, 0, 0)
			c.conn.XU.Conn().Sync()
			damage.Destroy(c.conn.XU.Conn(), cv.Comp.Damage)
			cv.Comp.Damage = 0
		}
	})
	c.NoteCanvasDamage(cv)
}

func (c *Compositor) teardownPixmapPicture(cv *canvas.Canvas) {
	c.conn.ScopedSwallow(raceSwallowCodes, func() {
		if cv.Comp.Picture != 0 {
			render.FreePicture(c.conn.XU.Conn(), cv.Comp.Picture)
			cv.Comp.Picture = 0
		}
		if cv.Comp.Pixmap != 0 {
			xproto.FreePixmap(c.conn.XU.Conn(), cv.Comp.Pixmap)
			cv.Comp.Pixmap = 0
		}
	})
}

// NoteCanvasDamage accumulates cv's current rectangle into the scheduler,
// used for raises/lowers/configures/expose events (spec.md §4.C).
func (c *Compositor) NoteCanvasDamage(cv *canvas.Canvas) {
	c.sched.noteDamage(canvas.Rect{X: cv.X, Y: cv.Y, W: cv.W, H: cv.H})
}

// NoteRectDamage accumulates an arbitrary root-relative rectangle, used
// when a window moves (both its old and new rectangles are damaged).
func (c *Compositor) NoteRectDamage(r canvas.Rect) {
	c.sched.noteDamage(r)
}

