package menu

// Action is the effect bound to a menu item, invoked on left-click-release
// over an enabled item, per spec.md §4.F.
type Action func()

// DispatchTable maps (parent_index, item_index) to the action it triggers.
// Built once at startup by the caller (cmd/amiwb) since the actions close
// over the window manager, workbench, and dialog singletons.
type DispatchTable map[[2]int]Action

// Activate runs the bound action for item, if any, and returns the
// menubar to logo mode afterward, per spec.md §4.F.
func (b *Bar) Activate(item *Item, table DispatchTable) {
	defer b.ReturnToLogo()
	if item == nil || !item.Enabled {
		return
	}
	if action, ok := table[[2]int{item.ParentIndex, item.ItemIndex}]; ok {
		action()
	}
}

// EnableRule recomputes an item's Enabled flag; called each time a
// dropdown opens, per spec.md §4.F's "Enable/disable rules" paragraph.
type EnableRule func(item *Item) bool

// ApplyEnableRules walks items applying rule, used for rules like "Delete
// disabled unless a non-system icon is selected" or "Open Parent disabled
// at root".
func ApplyEnableRules(items []*Item, rule EnableRule) {
	for _, it := range items {
		it.Enabled = rule(it)
		if len(it.Children) > 0 {
			ApplyEnableRules(it.Children, rule)
		}
	}
}
