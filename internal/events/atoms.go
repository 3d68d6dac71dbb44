package events

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// atomCache resolves and caches X atoms the dispatcher compares client
// messages and properties against, mirroring the single-shot InternAtom
// pattern intuition.readPrivateTitle already uses.
type atomCache struct {
	conn  *xgb.Conn
	cache map[string]xproto.Atom
}

func newAtomCache(conn *xgb.Conn) *atomCache {
	return &atomCache{conn: conn, cache: make(map[string]xproto.Atom)}
}

func (a *atomCache) get(name string) xproto.Atom {
	if atom, ok := a.cache[name]; ok {
		return atom
	}
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0
	}
	a.cache[name] = reply.Atom
	return reply.Atom
}
