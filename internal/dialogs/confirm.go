package dialogs

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

// NewConfirm builds a yes/no confirmation dialog, used before delete's
// recursive unlink/rmdir, per spec.md §4.E/§4.H.
func NewConfirm(cv *canvas.Canvas, prompt string, onYes func()) *Dialog {
	d := New(cv, Confirm, func(string) { onYes() }, nil)
	d.input = prompt
	return d
}

// NewRename builds a rename dialog seeded with the current name.
func NewRename(cv *canvas.Canvas, currentName string, onRename func(newName string)) *Dialog {
	d := New(cv, Rename, onRename, nil)
	d.input = currentName
	return d
}

// NewIconInfo builds a read-only icon-information dialog.
func NewIconInfo(cv *canvas.Canvas, summary string) *Dialog {
	d := New(cv, IconInfo, nil, nil)
	d.input = summary
	return d
}
