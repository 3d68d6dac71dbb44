// Package menu is amiwb's menubar and dropdown system: logo/menu modes,
// nested submenus, item activation dispatch, app-menu substitution, and
// custom menus, per spec.md §4.F.
package menu

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

// Mode selects the menubar's two visible states (spec.md §4.F).
type Mode int

const (
	Logo Mode = iota
	Menu
)

// Item is one entry in a menu or submenu tree.
type Item struct {
	Label    string
	Shortcut string
	Enabled  bool
	Checked  bool
	Children []*Item

	// Command is the parsed shell command line a custom-menu leaf runs on
	// activation (spec.md §4.F's "commands[] (only for user-defined custom
	// menus)"); empty for every system-menu item.
	Command string

	// ParentIndex/ItemIndex identify this entry for dispatch, per
	// spec.md §4.F's "(parent_index, item_index)" rule.
	ParentIndex int
	ItemIndex   int
}

// System menu names, per spec.md §4.F.
var systemMenuNames = []string{"Workbench", "Window", "Icons", "Tools"}

// Bar is the permanent menubar canvas's logical state.
type Bar struct {
	Canvas  *canvas.Canvas
	Mode    Mode
	System  []*Item // the four system top-level menus
	Custom  []*Item // user-defined menus from internal/config
	AppMenu []*Item // substituted menu from the active foreign client, nil if none

	open *openMenu
}

// NewBar builds the permanent menubar state around cv, with the four
// system menus and any configured custom menus.
func NewBar(cv *canvas.Canvas, system, custom []*Item) *Bar {
	return &Bar{Canvas: cv, Mode: Logo, System: system, Custom: custom}
}

// ToggleMode flips between Logo and Menu mode, per spec.md §4.F's
// right-click-on-menubar rule.
func (b *Bar) ToggleMode() {
	if b.Mode == Logo {
		b.Mode = Menu
	} else {
		b.Mode = Logo
		b.CloseDropdown()
	}
}

// ReturnToLogo restores logo mode after an item activates, per spec.md
// §4.F's "After activation the menubar returns to logo mode" rule.
func (b *Bar) ReturnToLogo() {
	b.Mode = Logo
	b.CloseDropdown()
}

// TopLevel returns the menubar's current top-level item list: the
// substituted app menu if one is active, else system+custom.
func (b *Bar) TopLevel() []*Item {
	if b.AppMenu != nil {
		return b.AppMenu
	}
	all := make([]*Item, 0, len(b.System)+len(b.Custom))
	all = append(all, b.System...)
	all = append(all, b.Custom...)
	return all
}

// SetAppMenu installs a foreign client's published menu, substituting the
// system menus, per spec.md §4.F.
func (b *Bar) SetAppMenu(items []*Item) {
	b.AppMenu = items
}

// ClearAppMenu restores the system menu, called when focus leaves the
// client that published AppMenu.
func (b *Bar) ClearAppMenu() {
	b.AppMenu = nil
}
