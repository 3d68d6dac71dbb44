package canvas

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// MaxCycleWindows bounds the focus-cycle list, per spec.md §4.B.
const MaxCycleWindows = 256

// Store is the single append-mostly registry of every live Canvas, indexed
// by insertion order, plus reverse lookups by frame and client window
// (spec.md §4.B). It owns all render resources; teardown order is the
// caller's responsibility (see Teardown in the compositor/intuition
// packages) but Store.Destroy guarantees the Canvas itself is only ever
// removed once.
type Store struct {
	canvases []*Canvas
	byFrame  map[xproto.Window]*Canvas
	byClient map[xproto.Window]*Canvas
	desktop  *Canvas
	nextID   int
}

// NewStore creates an empty canvas store.
func NewStore() *Store {
	return &Store{
		byFrame:  make(map[xproto.Window]*Canvas),
		byClient: make(map[xproto.Window]*Canvas),
	}
}

// Create allocates a new Canvas of the given kind and geometry and
// registers it under frame. client and path are optional (zero/empty when
// not applicable). The Desktop canvas must be created exactly once, via
// this same call with kind == Desktop.
func (s *Store) Create(kind Kind, x, y, w, h int, frame xproto.Window, client xproto.Window, path string) *Canvas {
	c := &Canvas{
		ID:           s.nextID,
		Kind:         kind,
		X:            x,
		Y:            y,
		W:            w,
		H:            h,
		Frame:        frame,
		ClientWindow: client,
	}
	if path != "" {
		c.View.Path = path
	}
	s.nextID++
	s.canvases = append(s.canvases, c)
	if frame != 0 {
		s.byFrame[frame] = c
	}
	if client != 0 {
		s.byClient[client] = c
	}
	if kind == Desktop {
		s.desktop = c
	}
	return c
}

// FindByFrame looks up the Canvas owning frame window w.
func (s *Store) FindByFrame(w xproto.Window) (*Canvas, bool) {
	c, ok := s.byFrame[w]
	return c, ok
}

// FindByClient looks up the Canvas that reparented client window w.
func (s *Store) FindByClient(w xproto.Window) (*Canvas, bool) {
	c, ok := s.byClient[w]
	return c, ok
}

// Desktop returns the distinguished Desktop canvas, which exists for the
// entire session (spec.md §3 invariant).
func (s *Store) Desktop() *Canvas { return s.desktop }

// All returns every live canvas in insertion order. The slice is a copy;
// callers may not mutate the store while iterating, so iteration snapshots
// the current set.
func (s *Store) All() []*Canvas {
	out := make([]*Canvas, len(s.canvases))
	copy(out, s.canvases)
	return out
}

// Windows returns live Window- and Dialog-kind canvases, up to
// MaxCycleWindows, for focus-cycle lists (spec.md §4.B, §4.D).
func (s *Store) Windows() []*Canvas {
	var out []*Canvas
	for _, c := range s.canvases {
		if c.destroyed {
			continue
		}
		if c.Kind == Window || c.Kind == Dialog {
			out = append(out, c)
			if len(out) >= MaxCycleWindows {
				break
			}
		}
	}
	return out
}

// Destroy removes c from the store. It is idempotent: calling it twice on
// the same Canvas is a no-op the second time (spec.md §4.B). It does not
// free any X resources itself — that is the caller's job, in the strict
// order required by spec.md §5 (flush, free pictures, free pixmaps, free
// damage, destroy windows).
func (s *Store) Destroy(c *Canvas) {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true

	idx := -1
	for i, other := range s.canvases {
		if other == c {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.canvases = append(s.canvases[:idx], s.canvases[idx+1:]...)
	}
	if c.Frame != 0 {
		delete(s.byFrame, c.Frame)
	}
	if c.ClientWindow != 0 {
		delete(s.byClient, c.ClientWindow)
	}
	if s.desktop == c {
		s.desktop = nil
	}
}

// Len reports the number of live canvases.
func (s *Store) Len() int { return len(s.canvases) }

// String is used by diagnostics/tests, not shown to the user.
func (s *Store) String() string {
	return fmt.Sprintf("Store{%d canvases}", len(s.canvases))
}
