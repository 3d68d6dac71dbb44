// Package canvas defines the universal drawable unit of amiwb — the
// desktop, every framed window, every menu popup, and every dialog are all
// a Canvas — and the store that owns them, per spec.md §3 and §4.B.
package canvas

import (
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
)

// Kind tags what a Canvas represents. Behavior is routed on Kind with a
// switch rather than virtual dispatch, per spec.md §9.
type Kind int

const (
	Desktop Kind = iota
	Window
	Menu
	Dialog
)

func (k Kind) String() string {
	switch k {
	case Desktop:
		return "Desktop"
	case Window:
		return "Window"
	case Menu:
		return "Menu"
	case Dialog:
		return "Dialog"
	default:
		return "Unknown"
	}
}

// ViewMode selects workbench window content layout (spec.md §3, §4.E).
type ViewMode int

const (
	Icons ViewMode = iota
	Names
)

// Borders describes the four decoration widths around a canvas's content
// area, which differ between client and workbench frames (spec.md §3).
type Borders struct {
	Left, Right, Top, Bottom int
}

// ClientBorders is the narrow decoration used when client_window is set:
// 8 px left/right, 20 px top/bottom.
var ClientBorders = Borders{Left: 8, Right: 8, Top: 20, Bottom: 20}

// WorkbenchBorders is the wider decoration used for AmiWB's own directory
// windows, reserving the extra 12 px on the right for the scrollbar.
var WorkbenchBorders = Borders{Left: 8, Right: 20, Top: 20, Bottom: 20}

// SizeHints captures ICCCM WM_NORMAL_HINTS as used by the resize machinery.
type SizeHints struct {
	MinW, MinH     int
	MaxW, MaxH     int
	ResizeXAllowed bool
	ResizeYAllowed bool
}

// RenderSurfaces holds the canvas's own offscreen buffer and the two
// render targets drawn onto it: one for painting into the buffer, one for
// blitting the buffer onto the frame window (spec.md §3).
type RenderSurfaces struct {
	BufferPixmap xproto.Pixmap
	BW, BH       int // backing buffer size, may exceed W,H for resize amortization
	BufferTarget render.Picture
	FrameTarget  render.Picture
}

// CompositorState is the subset of per-canvas state owned by the
// compositor (spec.md §3, §4.C).
type CompositorState struct {
	Pixmap       xproto.Pixmap // XCompositeNameWindowPixmap result
	Picture      render.Picture
	Damage       damage.Damage
	Depth        byte // window depth; selects Over (32-bit) vs Src (24-bit) compositing
	NeedsRepaint bool
	Visible      bool
	Mapped       bool
	HiddenByApp  bool
	DamageBounds Rect
}

// Rect is an integer rectangle in root coordinates.
type Rect struct {
	X, Y, W, H int
}

// Union returns the smallest rectangle containing both r and o. A zero-area
// r is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 || r.H == 0 {
		return o
	}
	if o.W == 0 || o.H == 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Gadgets tracks which top-border/scrollbar controls are currently
// pressed (armed), per spec.md §3.
type Gadgets struct {
	Close, Iconify, Maximize, Lower, Resize bool
	ScrollUp, ScrollDown, ScrollLeft, ScrollRight bool
}

// WMState is the window-manager-owned subset of canvas state (spec.md §3).
type WMState struct {
	Active      bool
	Gadgets     Gadgets
	Fullscreen  bool
	Maximized   bool
	PreStateX   int
	PreStateY   int
	PreStateW   int
	PreStateH   int
	Hints       SizeHints
	Transient   *Canvas // parent canvas, for dialogs
}

// ViewState is Window-kind-only content state (spec.md §3).
type ViewState struct {
	Path         string
	TitleBase    string
	TitleChange  string
	ScrollX      int
	ScrollY      int
	ContentW     int
	ContentH     int
	MaxScrollX   int
	MaxScrollY   int
	ViewMode     ViewMode
	ShowHidden   bool
}

// ClampScroll enforces spec.md §3's invariant
// scroll ∈ [0, max_scroll], max_scroll = max(0, content - visible).
func (v *ViewState) ClampScroll(visibleW, visibleH int) {
	v.MaxScrollX = maxInt(0, v.ContentW-visibleW)
	v.MaxScrollY = maxInt(0, v.ContentH-visibleH)
	v.ScrollX = clamp(v.ScrollX, 0, v.MaxScrollX)
	v.ScrollY = clamp(v.ScrollY, 0, v.MaxScrollY)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Canvas is the universal drawable unit described in spec.md §3.
type Canvas struct {
	ID   int // insertion index, stable for the canvas's lifetime
	Kind Kind

	X, Y, W, H int

	Frame        xproto.Window
	ClientWindow xproto.Window // zero if none

	Surfaces RenderSurfaces
	Comp     CompositorState
	WM       WMState
	View     ViewState // meaningful only for Kind == Window

	destroyed bool
}

// Borders returns the decoration widths for this canvas, which depend on
// whether it hosts a foreign client (spec.md §3 invariant).
func (c *Canvas) Borders() Borders {
	if c.Kind == Desktop {
		return Borders{}
	}
	if c.ClientWindow != 0 {
		return ClientBorders
	}
	return WorkbenchBorders
}

// ContentRect returns the client/content area in frame-relative coordinates.
func (c *Canvas) ContentRect() Rect {
	b := c.Borders()
	return Rect{
		X: b.Left,
		Y: b.Top,
		W: c.W - b.Left - b.Right,
		H: c.H - b.Top - b.Bottom,
	}
}

// Rect returns the canvas's geometry in root coordinates.
func (c *Canvas) Rect() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// Destroyed reports whether Destroy has already run on this canvas,
// letting store.Destroy be idempotent (spec.md §4.B).
func (c *Canvas) Destroyed() bool { return c.destroyed }
