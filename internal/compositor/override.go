package compositor

import (
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// overrideEntry is one short-lived override-redirect window (a tooltip or
// a foreign app's popup menu) the compositor draws on top of everything
// else, per spec.md §3 "Compositor override list".
type overrideEntry struct {
	win     xproto.Window
	pixmap  xproto.Pixmap
	picture render.Picture
	damage  damage.Damage
	rect    canvas.Rect
	next    *overrideEntry
}

// overrideList is a singly linked list, matching spec.md §3's data model
// exactly; entries are prepended so the most recently mapped window is
// found quickest, though painting always iterates all of them topmost.
type overrideList struct {
	head *overrideEntry
}

func newOverrideList() *overrideList { return &overrideList{} }

// AddOverride registers a newly mapped override-redirect window. Because such
// windows can be destroyed microseconds after mapping, every X call here
// runs inside ScopedSwallow per spec.md §4.C.
func (c *Compositor) AddOverride(win xproto.Window, rect canvas.Rect) {
	c.conn.ScopedSwallow([]string{"BadWindow", "BadDrawable", "BadMatch", "BadDamage", "RenderBadPicture"}, func() {
		entry := &overrideEntry{win: win, rect: rect}

		pixmap, err := xproto.NewPixmapId(c.conn.XU.Conn())
		if err != nil {
			logging.L.Printf("compositor.AddOverride: alloc pixmap id: %v", err)
			return
		}
		if err := composite.NameWindowPixmapChecked(c.conn.XU.Conn(), win, pixmap).Check(); err != nil {
			logging.L.Printf("compositor.AddOverride: NameWindowPixmap: %v", err)
			return
		}
		entry.pixmap = pixmap

		format, ferr := argbFormat(c.conn)
		if ferr != nil {
			logging.L.Printf("compositor.AddOverride: %v", ferr)
			return
		}
		pic, err := newPictureID(c.conn)
		if err != nil {
			logging.L.Printf("compositor.AddOverride: %v", err)
			return
		}
		if err := render.CreatePictureChecked(c.conn.XU.Conn(), pic, xproto.Drawable(pixmap), format, 0, nil).Check(); err != nil {
			logging.L.Printf("compositor.AddOverride: CreatePicture: %v", err)
			return
		}
		entry.picture = pic

		dmg, err := damage.NewDamageId(c.conn.XU.Conn())
		if err != nil {
			logging.L.Printf("compositor.AddOverride: alloc damage id: %v", err)
			return
		}
		if err := damage.CreateChecked(c.conn.XU.Conn(), dmg, xproto.Drawable(win), damage.ReportLevelRawRectangles).Check(); err != nil {
			logging.L.Printf("compositor.AddOverride: Damage Create: %v", err)
			return
		}
		entry.damage = dmg

		entry.next = c.overrides.head
		c.overrides.head = entry
		c.sched.noteDamage(rect)
	})
}

// RemoveOverride tears down and unlinks the entry for win, in the strict
// order spec.md §5 requires: free picture, then free pixmap, then damage
// subtract + sync before destroying the damage handle.
func (c *Compositor) RemoveOverride(win xproto.Window) {
	var prev *overrideEntry
	for e := c.overrides.head; e != nil; e = e.next {
		if e.win == win {
			c.conn.ScopedSwallow([]string{"BadWindow", "BadDrawable", "BadMatch", "BadDamage", "RenderBadPicture"}, func() {
				if e.picture != 0 {
					render.FreePicture(c.conn.XU.Conn(), e.picture)
				}
				if e.pixmap != 0 {
					xproto.FreePixmap(c.conn.XU.Conn(), e.pixmap)
				}
				damage.Subtract(c.conn.XU.Conn(), e.damage, 0, 0)
				c.conn.XU.Conn().Sync()
				damage.Destroy(c.conn.XU.Conn(), e.damage)
			})
			if prev == nil {
				c.overrides.head = e.next
			} else {
				prev.next = e.next
			}
			c.sched.noteDamage(e.rect)
			return
		}
		prev = e
	}
}

// forEachOverride walks the list in painting order (the list is built by
// prepend, so head is most-recently-mapped; painting iterates tail-to-head
// so the newest override is drawn last and ends up on top, matching the
// "track in a separate list" model of spec.md §4.C since override windows
// rarely reorder among themselves).
func (c *Compositor) forEachOverride(fn func(*overrideEntry)) {
	var entries []*overrideEntry
	for e := c.overrides.head; e != nil; e = e.next {
		entries = append(entries, e)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		fn(entries[i])
	}
}
