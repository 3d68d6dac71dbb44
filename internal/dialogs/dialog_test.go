package dialogs

import "testing"

func TestConfirmInvokesOnYes(t *testing.T) {
	ran := false
	d := NewConfirm(nil, "Delete foo?", func() { ran = true })
	d.Confirm()
	if !ran {
		t.Fatal("expected onYes to run")
	}
}

func TestRenameCarriesNewName(t *testing.T) {
	var got string
	d := NewRename(nil, "old.txt", func(newName string) { got = newName })
	d.SetInput("new.txt")
	d.Confirm()
	if got != "new.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestCancelDoesNotInvokeOnOK(t *testing.T) {
	ran := false
	d := New(nil, Execute, func(string) { ran = true }, func() {})
	d.Cancel()
	if ran {
		t.Fatal("expected OnOK not to run on cancel")
	}
}
