package events

import (
	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/menu"
	"github.com/nsklaus/amiwb-sub000/internal/textmetrics"
)

const menuItemHeight = 20

// labelWidth measures a menu label with the dispatcher's shared font face,
// for menu.DropdownWidth's column-sizing rule (spec.md §4.F).
func (l *Loop) labelWidth(s string) int {
	if l.face == nil {
		return len(s) * 7
	}
	return l.face.Width(s)
}

// openTopDropdown opens items as a top-level dropdown below the menubar at
// originX (menubar-relative), creating the override-redirect Menu canvas
// menu.Bar.OpenDropdown expects to be handed, per spec.md §4.F.
func (l *Loop) openTopDropdown(items []*menu.Item, originX int) {
	l.closeMenus()
	if len(items) == 0 {
		return
	}
	w := menu.DropdownWidth(items, l.labelWidth)
	h := len(items) * menuItemHeight
	y := l.bar.Canvas.Y + l.bar.Canvas.H
	cv := l.createSyntheticFrame(canvas.Menu, originX, y, w, h)
	if cv == nil {
		return
	}
	l.bar.OpenDropdown(items, cv)
}

// closeMenus tears down whatever dropdown/submenu windows are open and
// clears the menubar's dropdown state.
func (l *Loop) closeMenus() {
	if sub := l.bar.SubmenuCanvas(); sub != nil {
		l.destroySyntheticFrame(sub)
	}
	if top := l.bar.DropdownCanvas(); top != nil {
		l.destroySyntheticFrame(top)
	}
	l.bar.CloseDropdown()
}

// syncHover forwards a local-y hover position to the menubar and opens or
// closes the nested submenu window to match, per spec.md §4.F's
// hover-opens-submenu rule.
func (l *Loop) syncHover(localY int) {
	prevOrigin := l.bar.SubmenuOrigin()
	l.bar.Hover(localY)
	newOrigin := l.bar.SubmenuOrigin()

	if newOrigin == prevOrigin {
		return
	}
	if prevSub := l.bar.SubmenuCanvas(); prevSub != nil {
		l.destroySyntheticFrame(prevSub)
	}
	if newOrigin == nil {
		return
	}
	items := l.bar.SubmenuItems()
	top := l.bar.DropdownCanvas()
	if top == nil {
		return
	}
	w := menu.DropdownWidth(items, l.labelWidth)
	h := len(items) * menuItemHeight
	x := top.X + top.W
	y := top.Y
	cv := l.createSyntheticFrame(canvas.Menu, x, y, w, h)
	if cv == nil {
		return
	}
	l.bar.AttachSubmenuCanvas(cv)
}

// activateAt dispatches the item at local y in the open dropdown (or its
// submenu) through the installed dispatch table, per spec.md §4.F.
func (l *Loop) activateAt(localY int) {
	item := l.bar.ItemAt(localY)
	if item == nil || !item.Enabled {
		return
	}
	l.closeMenus()
	l.bar.Activate(item, l.dispatch)
}
