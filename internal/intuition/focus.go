package intuition

import (
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
)

// focusList keeps window-kind canvases in most-recently-activated order,
// per SPEC_FULL.md §12's MRU focus supplement: Alt-Tab style cycling walks
// this list instead of stacking order.
type focusList struct {
	mru []*canvas.Canvas
}

func newFocusList() *focusList {
	return &focusList{}
}

// touch moves cv to the front of the MRU list, inserting it if absent.
func (f *focusList) touch(cv *canvas.Canvas) {
	f.remove(cv)
	f.mru = append([]*canvas.Canvas{cv}, f.mru...)
}

// remove drops cv from the MRU list, used on destroy.
func (f *focusList) remove(cv *canvas.Canvas) {
	for i, c := range f.mru {
		if c == cv {
			f.mru = append(f.mru[:i], f.mru[i+1:]...)
			return
		}
	}
}

// next returns the canvas one step back in MRU order from cur, wrapping
// from the oldest entry to the most recent one (also the result when cur
// is not tracked), or nil if fewer than two windows are tracked.
func (f *focusList) next(cur *canvas.Canvas) *canvas.Canvas {
	if len(f.mru) < 2 {
		return nil
	}
	for i, c := range f.mru {
		if c == cur {
			return f.mru[(i+1)%len(f.mru)]
		}
	}
	return f.mru[0]
}

// SetActive deactivates the current active canvas and activates cv, raising
// its frame, updating its MRU position, and setting _NET_ACTIVE_WINDOW and
// input focus, per spec.md §4.D.
func (wm *WM) SetActive(cv *canvas.Canvas) {
	if wm.active == cv {
		return
	}
	prev := wm.active
	wm.DeactivateAll()
	wm.repaint(prev)
	if cv == nil {
		return
	}
	cv.WM.Active = true
	wm.active = cv

	if cv.Kind == canvas.Window || cv.Kind == canvas.Dialog {
		wm.focus.touch(cv)
	}

	wm.RaiseCanvas(cv)
	wm.repaint(cv)

	target := cv.ClientWindow
	if target == 0 {
		target = cv.Frame
	}
	if err := icccm.WmStateSet(wm.conn.XU, target, &icccm.WmState{State: icccm.StateNormal}); err != nil {
		logging.L.Printf("WM.SetActive: WmStateSet: %v", err)
	}
	if err := ewmh.ActiveWindowSet(wm.conn.XU, target); err != nil {
		logging.L.Printf("WM.SetActive: ActiveWindowSet: %v", err)
	}
	setInputFocus(wm, target)
}

// DeactivateAll clears the active flag on every tracked canvas, per
// spec.md §4.D's "deactivate all, then activate one" rule.
func (wm *WM) DeactivateAll() {
	for _, cv := range wm.store.All() {
		cv.WM.Active = false
	}
	wm.active = nil
}

// eligibleForCycle reports whether cv is a candidate for focus cycling: a
// Window- or Dialog-kind canvas that's either user-iconified (restorable)
// or both mapped and not app-hidden, per spec.md §4.D's Focus cycling rule.
func eligibleForCycle(cv *canvas.Canvas) bool {
	if cv.Kind != canvas.Window && cv.Kind != canvas.Dialog {
		return false
	}
	if _, iconified := iconHandles[cv]; iconified {
		return true
	}
	return cv.Comp.Mapped && !cv.Comp.HiddenByApp
}

// CycleFocus activates the next eligible window or dialog in MRU order,
// restoring it first if it's iconified, per spec.md §4.D's Focus cycling
// rule and SPEC_FULL.md §12's MRU-order supplement.
func (wm *WM) CycleFocus() {
	eligible := make([]*canvas.Canvas, 0, len(wm.focus.mru))
	for _, cv := range wm.focus.mru {
		if eligibleForCycle(cv) {
			eligible = append(eligible, cv)
		}
	}
	if len(eligible) < 2 {
		return
	}

	idx := 0
	for i, cv := range eligible {
		if cv == wm.active {
			idx = i
			break
		}
	}
	next := eligible[(idx+1)%len(eligible)]

	if _, iconified := iconHandles[next]; iconified {
		wm.Restore(next)
		return
	}
	wm.SetActive(next)
}

// OnDestroy drops cv from focus tracking and activates the next-MRU window
// if cv was active, per spec.md §4.D.
func (wm *WM) OnDestroy(cv *canvas.Canvas) {
	wasActive := wm.active == cv
	wm.focus.remove(cv)
	if cv == wm.menubar {
		wm.menubar = nil
	}
	if !wasActive {
		return
	}
	wm.active = nil
	if len(wm.focus.mru) > 0 {
		wm.SetActive(wm.focus.mru[0])
	} else if desktop := wm.store.Desktop(); desktop != nil {
		wm.SetActive(desktop)
	}
}
