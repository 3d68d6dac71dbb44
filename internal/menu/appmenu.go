package menu

import (
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const appMenuAtomName = "_AMIWB_APP_MENU"

// ReadAppMenu reads a foreign client's published menu from the
// _AMIWB_APP_MENU property, a "|"-separated flat list of labels (one
// level, no submenus) — the minimal substitution spec.md §4.F describes;
// richer protocols are an external collaborator.
func ReadAppMenu(conn *xgb.Conn, win xproto.Window) ([]*Item, bool) {
	atom, err := xproto.InternAtom(conn, true, uint16(len(appMenuAtomName)), appMenuAtomName).Reply()
	if err != nil || atom.Atom == 0 {
		return nil, false
	}
	reply, err := xproto.GetProperty(conn, false, win, atom.Atom, xproto.AtomString, 0, 4096).Reply()
	if err != nil || reply.ValueLen == 0 {
		return nil, false
	}
	labels := strings.Split(string(reply.Value), "|")
	items := make([]*Item, 0, len(labels))
	for i, label := range labels {
		if label == "" {
			continue
		}
		items = append(items, &Item{Label: label, Enabled: true, ParentIndex: -1, ItemIndex: i})
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// OnActiveWindowChanged installs win's app menu if it publishes one, else
// restores the system menu, per spec.md §4.F's substitution rule.
func (b *Bar) OnActiveWindowChanged(conn *xgb.Conn, win xproto.Window) {
	if win == 0 {
		b.ClearAppMenu()
		return
	}
	if items, ok := ReadAppMenu(conn, win); ok {
		b.SetAppMenu(items)
		return
	}
	b.ClearAppMenu()
}
