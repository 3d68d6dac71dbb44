package workbench

// IconAt returns the icon whose cell contains (x, y), if any, topmost
// (last-scanned) first.
func (c *Canvas) IconAt(x, y int) *Icon {
	for i := len(c.Icons) - 1; i >= 0; i-- {
		ic := c.Icons[i]
		if x >= ic.X && x < ic.X+iconCellW && y >= ic.Y && y < ic.Y+iconCellH {
			return ic
		}
	}
	return nil
}

// Select implements spec.md §4.E's selection rules: a plain click selects
// one icon and deselects the rest; shift toggles just that icon; clicking
// empty space clears the whole canvas.
func (c *Canvas) Select(target *Icon, shift bool) {
	if target == nil {
		if !shift {
			c.DeselectAll()
		}
		return
	}
	if shift {
		target.Selected = !target.Selected
		return
	}
	for _, ic := range c.Icons {
		ic.Selected = ic == target
	}
}

// DeselectAll clears every icon's selected flag.
func (c *Canvas) DeselectAll() {
	for _, ic := range c.Icons {
		ic.Selected = false
	}
}

// Selected returns every currently-selected icon.
func (c *Canvas) Selected() []*Icon {
	var sel []*Icon
	for _, ic := range c.Icons {
		if ic.Selected {
			sel = append(sel, ic)
		}
	}
	return sel
}
