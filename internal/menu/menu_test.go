package menu

import "testing"

func TestToggleModeTogglesAndClosesOnReturnToLogo(t *testing.T) {
	b := NewBar(nil, []*Item{{Label: "Workbench"}}, nil)
	if b.Mode != Logo {
		t.Fatalf("expected initial Logo mode")
	}
	b.ToggleMode()
	if b.Mode != Menu {
		t.Fatalf("expected Menu mode after toggle")
	}
	b.OpenDropdown(b.System, nil)
	b.ToggleMode()
	if b.Mode != Logo || b.open != nil {
		t.Fatalf("expected Logo mode and closed dropdown")
	}
}

func TestAppMenuSubstitutesTopLevel(t *testing.T) {
	b := NewBar(nil, []*Item{{Label: "Workbench"}}, nil)
	b.SetAppMenu([]*Item{{Label: "File"}})
	top := b.TopLevel()
	if len(top) != 1 || top[0].Label != "File" {
		t.Fatalf("expected app menu substitution, got %+v", top)
	}
	b.ClearAppMenu()
	top = b.TopLevel()
	if len(top) != 1 || top[0].Label != "Workbench" {
		t.Fatalf("expected system menu restored, got %+v", top)
	}
}

func TestActivateRunsActionAndReturnsToLogo(t *testing.T) {
	b := NewBar(nil, nil, nil)
	b.Mode = Menu
	ran := false
	table := DispatchTable{{0, 1}: func() { ran = true }}
	item := &Item{Enabled: true, ParentIndex: 0, ItemIndex: 1}
	b.Activate(item, table)
	if !ran {
		t.Fatal("expected action to run")
	}
	if b.Mode != Logo {
		t.Fatal("expected menubar back in Logo mode")
	}
}

func TestActivateSkipsDisabledItem(t *testing.T) {
	b := NewBar(nil, nil, nil)
	ran := false
	table := DispatchTable{{0, 0}: func() { ran = true }}
	item := &Item{Enabled: false, ParentIndex: 0, ItemIndex: 0}
	b.Activate(item, table)
	if ran {
		t.Fatal("expected disabled item not to run its action")
	}
}
