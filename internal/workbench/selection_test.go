package workbench

import "testing"

func TestSelectReplacesSelection(t *testing.T) {
	a := &Icon{Name: "a"}
	b := &Icon{Name: "b", Selected: true}
	c := &Canvas{Icons: []*Icon{a, b}}

	c.Select(a, false)
	if !a.Selected || b.Selected {
		t.Fatalf("expected only a selected, got a=%v b=%v", a.Selected, b.Selected)
	}
}

func TestSelectShiftToggles(t *testing.T) {
	a := &Icon{Name: "a"}
	c := &Canvas{Icons: []*Icon{a}}
	c.Select(a, true)
	if !a.Selected {
		t.Fatal("expected a selected after shift-click")
	}
	c.Select(a, true)
	if a.Selected {
		t.Fatal("expected a deselected after second shift-click")
	}
}

func TestSelectEmptyClickClearsAll(t *testing.T) {
	a := &Icon{Name: "a", Selected: true}
	c := &Canvas{Icons: []*Icon{a}}
	c.Select(nil, false)
	if a.Selected {
		t.Fatal("expected empty click to clear selection")
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("short"); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateLabel("averylongfilename"); got != "averylongf.." {
		t.Fatalf("got %q", got)
	}
}
