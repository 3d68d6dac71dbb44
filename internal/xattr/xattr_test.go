package xattr

import "testing"

func TestGetSetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Geometry{X: 100, Y: 80, W: 640, H: 480}
	if err := Set(dir, want); err != nil {
		t.Skipf("filesystem does not support xattrs: %v", err)
	}
	got, ok := Get(dir)
	if !ok {
		t.Fatal("Get reported absent after Set")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestGetAbsent(t *testing.T) {
	dir := t.TempDir()
	if _, ok := Get(dir); ok {
		t.Fatal("expected absent geometry on fresh directory")
	}
}
