package iconcodec

import (
	"encoding/binary"
	"testing"
)

func TestDecodeBytesBadMagic(t *testing.T) {
	if _, err := DecodeBytes([]byte{0, 0, 0, 1}); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDecodeBytesTruncated(t *testing.T) {
	if _, err := DecodeBytes([]byte{0x01}); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestDefaultIconDistinguishesDrawerAndFile(t *testing.T) {
	drawer := Default(true)
	file := Default(false)
	if drawer.Normal.Bounds() != file.Normal.Bounds() {
		t.Fatal("default icons should share dimensions")
	}
	if drawer.Selected == nil || file.Selected == nil {
		t.Fatal("default icon must synthesize a selected state")
	}
	if drawer.Normal.RGBAAt(12, 4) == file.Normal.RGBAAt(12, 4) {
		t.Fatal("drawer and file default icons should differ")
	}
}

func TestSynthesizeSelectedDarkens(t *testing.T) {
	icon := Default(false)
	nx, ny := icon.Normal.Bounds().Dx()/2, icon.Normal.Bounds().Dy()/2
	n := icon.Normal.RGBAAt(nx, ny)
	s := icon.Selected.RGBAAt(nx, ny)
	if s.A != n.A {
		t.Fatalf("alpha should be preserved: normal=%v selected=%v", n.A, s.A)
	}
	if n.A > 0 && s.R > n.R {
		t.Fatalf("selected should be darker: normal=%v selected=%v", n, s)
	}
}

func TestBytePackBitsDecodeLiteralRun(t *testing.T) {
	// control 2 => copy next 3 bytes verbatim
	data := []byte{2, 10, 20, 30}
	got := bytePackBitsDecode(data, 3)
	want := []byte{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestBytePackBitsDecodeRepeatRun(t *testing.T) {
	// control 254 => repeat next byte (257-254=3) times
	data := []byte{254, 7}
	got := bytePackBitsDecode(data, 3)
	want := []byte{7, 7, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestBitPackBitsDecodeAtByteDepth(t *testing.T) {
	// At depth=8, bit-aligned PackBits degenerates to the byte-level
	// variant, so we can reuse the same control-byte semantics to check
	// the bit reader's framing.
	data := []byte{2, 10, 20, 30} // copy 3 literal bytes
	got := bitPackBitsDecode(data, 8, 3)
	want := []int{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestUnpackRawBitsDepthFour(t *testing.T) {
	// Two nibbles packed into one byte: 0xAB -> [0xA, 0xB]
	got := unpackRawBits([]byte{0xAB}, 4, 2)
	if len(got) != 2 || got[0] != 0xA || got[1] != 0xB {
		t.Fatalf("got %v", got)
	}
}

func TestBe16(t *testing.T) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[2:], 0x1234)
	if be16(buf, 2) != 0x1234 {
		t.Fatalf("be16 mismatch")
	}
}
