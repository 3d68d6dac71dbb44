package intuition

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

// DestroyClient tears down cv after its client window is gone (DestroyNotify
// or UnmapNotify for a withdrawing client): releases compositor resources,
// updates focus, and removes it from the store, per spec.md §4.B/§4.D.
func (wm *WM) DestroyClient(cv *canvas.Canvas) {
	if cv.Destroyed() {
		return
	}
	delete(iconHandles, cv)
	wm.OnDestroy(cv)
	wm.comp.DestroyCanvas(cv)
	wm.store.Destroy(cv)
}
