package canvas

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestCreateDesktopIsSingleton(t *testing.T) {
	s := NewStore()
	d := s.Create(Desktop, 0, 0, 1920, 1080, 1, 0, "")
	if s.Desktop() != d {
		t.Fatal("Desktop() did not return the created desktop canvas")
	}
}

func TestFindByFrameAndClient(t *testing.T) {
	s := NewStore()
	c := s.Create(Window, 100, 100, 400, 300, 42, 99, "")
	got, ok := s.FindByFrame(42)
	if !ok || got != c {
		t.Fatalf("FindByFrame failed: %+v %v", got, ok)
	}
	got, ok = s.FindByClient(99)
	if !ok || got != c {
		t.Fatalf("FindByClient failed: %+v %v", got, ok)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	s := NewStore()
	c := s.Create(Window, 0, 0, 100, 100, 7, 0, "")
	s.Destroy(c)
	if s.Len() != 0 {
		t.Fatalf("expected 0 canvases after destroy, got %d", s.Len())
	}
	s.Destroy(c) // must not panic or double-count
	if !c.Destroyed() {
		t.Fatal("canvas should report destroyed")
	}
	if _, ok := s.FindByFrame(7); ok {
		t.Fatal("frame lookup should be gone after destroy")
	}
}

func TestWindowsRespectsCycleCap(t *testing.T) {
	s := NewStore()
	for i := 0; i < MaxCycleWindows+10; i++ {
		s.Create(Window, 0, 0, 10, 10, xproto.Window(i+1), 0, "")
	}
	if got := len(s.Windows()); got != MaxCycleWindows {
		t.Fatalf("expected cap of %d, got %d", MaxCycleWindows, got)
	}
}

func TestClampScroll(t *testing.T) {
	v := &ViewState{ContentW: 1000, ContentH: 800, ScrollX: 5000, ScrollY: -10}
	v.ClampScroll(400, 300)
	if v.MaxScrollX != 600 || v.MaxScrollY != 500 {
		t.Fatalf("bad max scroll: %d %d", v.MaxScrollX, v.MaxScrollY)
	}
	if v.ScrollX != 600 || v.ScrollY != 0 {
		t.Fatalf("scroll not clamped: %d %d", v.ScrollX, v.ScrollY)
	}
}
