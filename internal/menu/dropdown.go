package menu

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

const (
	itemHeight    = 20
	itemPaddingX  = 24
	shortcutGapPx = 40
)

// openMenu tracks the currently-open dropdown (and, when hovering an item
// with children, one nested submenu), per spec.md §4.F.
type openMenu struct {
	Items  []*Item
	Canvas *canvas.Canvas
	Origin *Item // the parent item this dropdown opened from, nil for a top-level open

	Hover    int
	Submenu  *openMenu
}

// OpenDropdown closes any open dropdown and records items as the open
// dropdown backed by cv. It creates no window: the caller supplies cv,
// already placed and sized (see DropdownWidth), per spec.md §4.F.
func (b *Bar) OpenDropdown(items []*Item, cv *canvas.Canvas) {
	b.CloseDropdown()
	b.open = &openMenu{Items: items, Canvas: cv, Hover: -1}
}

// CloseDropdown closes any open dropdown (and its nested submenu, if any).
func (b *Bar) CloseDropdown() {
	b.open = nil
}

// DropdownWidth computes the pixel width spec.md §4.F requires: the widest
// label plus a shortcut column plus padding, using the supplied width
// function (internal/textmetrics in production).
func DropdownWidth(items []*Item, labelWidth func(string) int) int {
	maxW := 0
	for _, it := range items {
		w := labelWidth(it.Label) + itemPaddingX
		if it.Shortcut != "" {
			w += shortcutGapPx + labelWidth(it.Shortcut)
		}
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}

// Hover updates which item is under the pointer given a local y; moving
// onto an item with children opens its submenu at the item's right edge,
// moving off closes it, per spec.md §4.F.
func (b *Bar) Hover(localY int) {
	if b.open == nil {
		return
	}
	idx := localY / itemHeight
	if idx < 0 || idx >= len(b.open.Items) {
		idx = -1
	}
	if idx == b.open.Hover {
		return
	}
	b.open.Hover = idx
	b.open.Submenu = nil
	if idx >= 0 && len(b.open.Items[idx].Children) > 0 {
		b.open.Submenu = &openMenu{Items: b.open.Items[idx].Children, Origin: b.open.Items[idx], Hover: -1}
	}
}

// ItemAt resolves the item, if any, at local y in the open dropdown (or
// its open submenu). Disabled items are returned too; Activate skips them.
func (b *Bar) ItemAt(localY int) *Item {
	if b.open == nil {
		return nil
	}
	if b.open.Submenu != nil {
		if it := itemAtIn(b.open.Submenu, localY); it != nil {
			return it
		}
	}
	return itemAtIn(b.open, localY)
}

func itemAtIn(m *openMenu, localY int) *Item {
	idx := localY / itemHeight
	if idx < 0 || idx >= len(m.Items) {
		return nil
	}
	return m.Items[idx]
}

// IsOpen reports whether a dropdown is currently open.
func (b *Bar) IsOpen() bool { return b.open != nil }

// DropdownCanvas returns the X window backing the top-level open dropdown,
// nil if none is open.
func (b *Bar) DropdownCanvas() *canvas.Canvas {
	if b.open == nil {
		return nil
	}
	return b.open.Canvas
}

// SubmenuItems returns the items of the currently hovered submenu, if any.
func (b *Bar) SubmenuItems() []*Item {
	if b.open == nil || b.open.Submenu == nil {
		return nil
	}
	return b.open.Submenu.Items
}

// SubmenuOrigin returns the parent item whose hover opened the current
// submenu, so the caller can tell Hover switched to a different submenu.
func (b *Bar) SubmenuOrigin() *Item {
	if b.open == nil || b.open.Submenu == nil {
		return nil
	}
	return b.open.Submenu.Origin
}

// SubmenuCanvas returns the X window currently backing the open submenu,
// nil if none is open or none has been attached yet.
func (b *Bar) SubmenuCanvas() *canvas.Canvas {
	if b.open == nil || b.open.Submenu == nil {
		return nil
	}
	return b.open.Submenu.Canvas
}

// AttachSubmenuCanvas installs cv as the X window backing the currently
// open submenu. openMenu itself carries no X state; the event dispatcher
// creates the window lazily once Hover opens a submenu and attaches it
// here.
func (b *Bar) AttachSubmenuCanvas(cv *canvas.Canvas) {
	if b.open != nil && b.open.Submenu != nil {
		b.open.Submenu.Canvas = cv
	}
}
