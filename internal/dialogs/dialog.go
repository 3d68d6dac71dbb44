// Package dialogs implements amiwb's modal-advisory dialog windows
// (rename, execute, confirm, icon info), each a Dialog-kind canvas reusing
// intuition's focus/drag machinery, per spec.md §4.H.
package dialogs

import "github.com/nsklaus/amiwb-sub000/internal/canvas"

// Kind distinguishes the dialog's content and callback shape.
type Kind int

const (
	Rename Kind = iota
	Execute
	Confirm
	IconInfo
)

// Dialog pairs a Dialog-kind canvas with the typed callback spec.md §4.H
// says it invokes on OK/Cancel.
type Dialog struct {
	Canvas *canvas.Canvas
	Kind   Kind

	OnOK     func(result string)
	OnCancel func()

	input string
}

// New creates a Dialog, transient to parent, per spec.md §4.D's transient
// centering and §4.H's "reuses §4.D's focus, drag, and drawing machinery".
func New(cv *canvas.Canvas, kind Kind, onOK func(string), onCancel func()) *Dialog {
	return &Dialog{Canvas: cv, Kind: kind, OnOK: onOK, OnCancel: onCancel}
}

// SetInput updates the dialog's single text field (rename's new name,
// execute's command line).
func (d *Dialog) SetInput(s string) { d.input = s }

// Input returns the current text field contents.
func (d *Dialog) Input() string { return d.input }

// Confirm invokes OnOK with the current input; it does not tear the dialog
// down itself, the caller (event dispatcher) removes the canvas from the
// store afterward.
func (d *Dialog) Confirm() {
	if d.OnOK != nil {
		d.OnOK(d.input)
	}
}

// Cancel invokes OnCancel without applying any change.
func (d *Dialog) Cancel() {
	if d.OnCancel != nil {
		d.OnCancel()
	}
}
