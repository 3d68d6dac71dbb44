package intuition

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

// Gadget identifies a hit region of the frame decoration, per spec.md
// §4.D's "Hit test function".
type Gadget int

const (
	GadgetNone Gadget = iota
	GadgetClose
	GadgetDrag
	GadgetIconify
	GadgetMaximize
	GadgetLower
	GadgetResizeSE
	GadgetResizeNW
	GadgetResizeNE
	GadgetResizeSW
	GadgetResizeN
	GadgetResizeS
	GadgetResizeW
	GadgetResizeE
	GadgetScrollTrackV
	GadgetScrollTrackH
	GadgetScrollArrowUp
	GadgetScrollArrowDown
	GadgetScrollArrowLeft
	GadgetScrollArrowRight
	GadgetScrollKnobV
	GadgetScrollKnobH
	GadgetClient
)

// topGadgetAt resolves which top-border gadget a local x falls into, for
// a frame of width w, per spec.md §4.D's rectangle table.
func topGadgetAt(x, w int) Gadget {
	switch {
	case x >= 0 && x < 30:
		return GadgetClose
	case x >= 30 && x < w-91:
		return GadgetDrag
	case x >= w-91 && x < w-61:
		return GadgetIconify
	case x >= w-61 && x < w-31:
		return GadgetMaximize
	case x >= w-31 && x <= w:
		return GadgetLower
	default:
		return GadgetDrag
	}
}

const resizeSEZone = 17
const clientCornerZone = 20

// HitTest implements spec.md §4.D's hit-test function, given a pointer
// position in canvas-local coordinates.
func HitTest(cv *canvas.Canvas, x, y int) Gadget {
	if cv.Kind == canvas.Desktop {
		return GadgetClient
	}
	if cv.WM.Fullscreen {
		return GadgetClient
	}

	b := cv.Borders()
	if y < b.Top {
		return topGadgetAt(x, cv.W)
	}
	if x >= cv.W-resizeSEZone && y >= cv.H-resizeSEZone {
		return GadgetResizeSE
	}

	if cv.ClientWindow != 0 {
		if g, ok := clientEdgeHit(cv, x, y); ok {
			return g
		}
	} else if g, ok := scrollbarHit(cv, x, y); ok {
		return g
	}

	return GadgetClient
}

// clientEdgeHit resolves the 20-pixel corner/edge resize zones that only
// apply to client windows (spec.md §4.D).
func clientEdgeHit(cv *canvas.Canvas, x, y int) (Gadget, bool) {
	w, h := cv.W, cv.H
	nearLeft := x < clientCornerZone
	nearRight := x >= w-clientCornerZone
	nearTop := y < clientCornerZone
	nearBottom := y >= h-clientCornerZone

	switch {
	case nearLeft && nearTop:
		return GadgetResizeNW, true
	case nearRight && nearTop:
		return GadgetResizeNE, true
	case nearLeft && nearBottom:
		return GadgetResizeSW, true
	case nearRight && nearBottom:
		return GadgetResizeSE, true
	case nearTop:
		return GadgetResizeN, true
	case nearBottom:
		return GadgetResizeS, true
	case nearLeft:
		return GadgetResizeW, true
	case nearRight:
		return GadgetResizeE, true
	default:
		return GadgetNone, false
	}
}

// ScrollbarGeometry describes the on-screen layout of a workbench window's
// scrollbars, per spec.md §4.D "Scrollbars".
type ScrollbarGeometry struct {
	VTrackX, VTrackY, VTrackW, VTrackH int
	HTrackX, HTrackY, HTrackW, HTrackH int
	ArrowSize                         int
}

const scrollArrowSize = 20
const scrollArrowReserve = 54 // two 20px arrows + padding

// Scrollbars computes the vertical and horizontal scrollbar track
// rectangles for a workbench (non-client) window, per spec.md §4.D.
func Scrollbars(cv *canvas.Canvas) ScrollbarGeometry {
	b := cv.Borders()
	return ScrollbarGeometry{
		VTrackX: cv.W - b.Right + 4,
		VTrackY: b.Top + 10,
		VTrackW: b.Right - 8,
		VTrackH: cv.H - b.Top - b.Bottom - scrollArrowReserve - 10,

		HTrackX: b.Left + 4,
		HTrackY: cv.H - b.Bottom + 4,
		HTrackW: cv.W - b.Left - b.Right - scrollArrowReserve - 10,
		HTrackH: b.Bottom - 8,

		ArrowSize: scrollArrowSize,
	}
}

// KnobLen returns the scrollbar knob's length along its track, per
// spec.md §4.D: max(10, track_len*track_len/content_len).
func KnobLen(trackLen, contentLen int) int {
	if contentLen <= 0 {
		return trackLen
	}
	l := trackLen * trackLen / contentLen
	if l < 10 {
		l = 10
	}
	if l > trackLen {
		l = trackLen
	}
	return l
}

// KnobPos returns the knob's offset within its track, proportional to
// scroll/maxScroll.
func KnobPos(trackLen, knobLen, scroll, maxScroll int) int {
	if maxScroll <= 0 {
		return 0
	}
	avail := trackLen - knobLen
	if avail <= 0 {
		return 0
	}
	return avail * scroll / maxScroll
}

// scrollbarHit resolves clicks in the track/arrow/knob regions of a
// workbench window's scrollbars.
func scrollbarHit(cv *canvas.Canvas, x, y int) (Gadget, bool) {
	sb := Scrollbars(cv)
	b := cv.Borders()

	if x >= sb.VTrackX && x < sb.VTrackX+sb.VTrackW && y >= sb.VTrackY && y < sb.VTrackY+sb.VTrackH {
		knobLen := KnobLen(sb.VTrackH, cv.View.ContentH)
		knobPos := sb.VTrackY + KnobPos(sb.VTrackH, knobLen, cv.View.ScrollY, cv.View.MaxScrollY)
		if y >= knobPos && y < knobPos+knobLen {
			return GadgetScrollKnobV, true
		}
		return GadgetScrollTrackV, true
	}
	arrowY := cv.H - b.Bottom - scrollArrowReserve + 10
	if x >= sb.VTrackX && x < sb.VTrackX+sb.VTrackW {
		if y >= arrowY && y < arrowY+scrollArrowSize {
			return GadgetScrollArrowUp, true
		}
		if y >= arrowY+scrollArrowSize && y < arrowY+2*scrollArrowSize {
			return GadgetScrollArrowDown, true
		}
	}

	if y >= sb.HTrackY && y < sb.HTrackY+sb.HTrackH && x >= sb.HTrackX && x < sb.HTrackX+sb.HTrackW {
		knobLen := KnobLen(sb.HTrackW, cv.View.ContentW)
		knobPos := sb.HTrackX + KnobPos(sb.HTrackW, knobLen, cv.View.ScrollX, cv.View.MaxScrollX)
		if x >= knobPos && x < knobPos+knobLen {
			return GadgetScrollKnobH, true
		}
		return GadgetScrollTrackH, true
	}

	return GadgetNone, false
}
