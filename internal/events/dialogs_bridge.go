package events

import (
	"fmt"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/dialogs"
)

const (
	dialogW = 360
	dialogH = 120
)

// openDialog creates the Dialog-kind canvas d needs, centers it on the
// active canvas's screen, and installs d as the loop's single modal
// dialog, per spec.md §4.H. Only one dialog is ever open at a time.
func (l *Loop) openDialog(kind dialogs.Kind, onOK func(string), onCancel func()) *dialogs.Dialog {
	if l.dialog != nil {
		return l.dialog
	}
	x := l.conn.ScreenW/2 - dialogW/2
	y := l.conn.ScreenH/2 - dialogH/2
	cv := l.createSyntheticFrame(canvas.Dialog, x, y, dialogW, dialogH)
	if cv == nil {
		return nil
	}
	d := dialogs.New(cv, kind, onOK, onCancel)
	l.dialog = d
	return d
}

// closeDialog tears down the loop's current dialog, if any.
func (l *Loop) closeDialog() {
	if l.dialog == nil {
		return
	}
	l.destroySyntheticFrame(l.dialog.Canvas)
	l.dialog = nil
}

// showJobError opens a read-only dialog reporting a failed child job's
// stderr tail, per spec.md §7's "Copy/delete/archive exits non-zero" row.
func (l *Loop) showJobError(r jobResult) {
	l.closeDialog()
	desktop := l.store.Desktop()
	if desktop == nil {
		return
	}
	summary := fmt.Sprintf("job failed: %v\n%s", r.err, r.stderr)
	x := l.conn.ScreenW/2 - dialogW/2
	y := l.conn.ScreenH/2 - dialogH/2
	cv := l.createSyntheticFrame(canvas.Dialog, x, y, dialogW, dialogH)
	if cv == nil {
		return
	}
	l.dialog = dialogs.NewIconInfo(cv, summary)
}
