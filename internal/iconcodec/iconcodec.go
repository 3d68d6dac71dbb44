// Package iconcodec parses Amiga .info files — classic planar bitmaps and
// the IFF-based truecolor GlowIcon extension — into two premultiplied-alpha
// images (normal and selected state), per spec.md §4.A. It never writes
// .info files.
package iconcodec

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

const (
	magic   = 0xE310
	version = 1
)

// palette is the 8-entry classic Workbench palette (spec.md §4.A).
var palette = [8]color.RGBA{
	{0xA0, 0xA2, 0xA0, 0xFF},
	{0x00, 0x00, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0x66, 0x66, 0xBB, 0xFF},
	{0x99, 0x99, 0x99, 0xFF},
	{0xBB, 0xBB, 0xBB, 0xFF},
	{0xBB, 0xAA, 0x99, 0xFF},
	{0xFF, 0xAA, 0x22, 0xFF},
}

// Icon holds the two rendered states of a decoded .info file.
type Icon struct {
	Normal   *image.RGBA
	Selected *image.RGBA
}

// Decode reads and parses the .info file at path. On any structural
// failure — truncated file, bad magic, unsupported depth, corrupt IFF
// chunk sizes — it returns (nil, err); callers substitute the default
// drawer/tool icon and log a warning, per spec.md §4.A "never abort".
func Decode(path string) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerr.Wrap(err, "iconcodec.Decode", "open %s", path)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, xerr.Wrap(err, "iconcodec.Decode", "read %s", path)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses an already-loaded .info file's bytes.
func DecodeBytes(data []byte) (*Icon, error) {
	if len(data) < 4 {
		return nil, xerr.New("iconcodec.DecodeBytes", "truncated header")
	}
	if be16(data, 0) != magic {
		return nil, xerr.New("iconcodec.DecodeBytes", "bad magic %#x", be16(data, 0))
	}
	if be16(data, 2) != version {
		return nil, xerr.New("iconcodec.DecodeBytes", "unsupported version %d", be16(data, 2))
	}

	r := &reader{data: data}
	icon, classicEnd, err := decodeClassic(r)
	if err != nil {
		return nil, err
	}

	// Look for a trailing FORM...ICON IFF chunk; absence is not an error.
	glow, gerr := findAndDecodeGlowIcon(data[classicEnd:])
	if gerr == nil && glow != nil {
		icon = glow
	}

	if icon.Selected == nil {
		icon.Selected = synthesizeSelected(icon.Normal)
	}
	return icon, nil
}

func be16(d []byte, off int) int {
	if off+2 > len(d) {
		return 0
	}
	return int(binary.BigEndian.Uint16(d[off : off+2]))
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.data) {
		return fmt.Errorf("need %d bytes at %d, have %d", n, r.pos, len(r.data))
	}
	return nil
}

func (r *reader) u16() (int, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int(binary.BigEndian.Uint16(r.data[r.pos : r.pos+2]))
	r.pos += 2
	return v, nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// decodeClassic parses the gadget header and one or two planar bitmap
// images, returning the assembled Icon and the byte offset where classic
// data ends (where DefaultTool/ToolTypes/DrawerData2 and any IFF chunk may
// follow). See spec.md §4.A for the exact layout.
func decodeClassic(r *reader) (*Icon, int, error) {
	// Gadget header: 78 bytes from offset 0. Byte 76-77 (big-endian) holds
	// a type flag; bit distinguishes "has drawer data" (+56 bytes) in the
	// historical format. We only need to skip past the header reliably.
	r.pos = 0
	if err := r.skip(78); err != nil {
		return nil, 0, xerr.New("iconcodec.decodeClassic", "truncated gadget header: %v", err)
	}
	// DrawerData2 block (56 bytes) is present for Drawer-type icons; its
	// presence is signaled by a type byte inside the gadget header at
	// offset 48 (GadgetType high byte == 1 for BOOLGADGET drawer marker in
	// the historical layout). We probe conservatively: if the next 20
	// bytes don't look like an image header (width/height in sane range),
	// assume a drawer block preceded it and skip 56 more bytes.
	save := r.pos
	w1, h1, ok := peekImageDims(r)
	if !ok {
		r.pos = save + 56
		w1, h1, ok = peekImageDims(r)
		if !ok {
			return nil, 0, xerr.New("iconcodec.decodeClassic", "no valid image header found")
		}
	}
	_ = w1
	_ = h1

	img1, err := decodeClassicImage(r)
	if err != nil {
		return nil, 0, err
	}

	icon := &Icon{Normal: img1}

	// A second image (selected state) may follow immediately.
	save2 := r.pos
	if w2, h2, ok := peekImageDims(r); ok && w2 > 0 && h2 > 0 {
		if img2, err := decodeClassicImage(r); err == nil {
			icon.Selected = img2
		} else {
			r.pos = save2
		}
	} else {
		r.pos = save2
	}

	return icon, r.pos, nil
}

// peekImageDims reads width/height at the current offset (offsets 4 and 6
// of a 20-byte image header) without consuming input, sanity-checking
// them against plausible icon sizes.
func peekImageDims(r *reader) (w, h int, ok bool) {
	if err := r.need(20); err != nil {
		return 0, 0, false
	}
	w = be16(r.data, r.pos+4)
	h = be16(r.data, r.pos+6)
	if w == 0 || h == 0 || w > 512 || h > 512 {
		return 0, 0, false
	}
	return w, h, true
}

// decodeClassicImage reads one 20-byte image header followed by
// depth bit-planes of row_bytes*height bytes each, per spec.md §4.A.
func decodeClassicImage(r *reader) (*image.RGBA, error) {
	if err := r.need(20); err != nil {
		return nil, xerr.New("iconcodec.decodeClassicImage", "truncated image header")
	}
	w := be16(r.data, r.pos+4)
	h := be16(r.data, r.pos+6)
	depth := be16(r.data, r.pos+8)
	if depth == 0 || depth > 8 {
		return nil, xerr.New("iconcodec.decodeClassicImage", "unsupported depth %d", depth)
	}
	r.pos += 20

	rowBytes := ((w + 15) / 16) * 2
	planeSize := rowBytes * h
	total := planeSize * depth
	if err := r.need(total); err != nil {
		return nil, xerr.New("iconcodec.decodeClassicImage", "truncated pixel data: %v", err)
	}
	planes := r.data[r.pos : r.pos+total]
	r.pos += total

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := 0
			bitMask := byte(1 << uint(7-(x%8)))
			byteOff := rowBytes*y + x/8
			for p := 0; p < depth; p++ {
				plane := planes[p*planeSize : (p+1)*planeSize]
				if plane[byteOff]&bitMask != 0 {
					idx |= 1 << uint(p)
				}
			}
			if idx > 7 {
				idx = 7
			}
			c := palette[idx]
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// synthesizeSelected darkens a copy of normal by 4/5 on RGB, preserving
// alpha, per spec.md §4.A "If no selected image is present".
func synthesizeSelected(normal *image.RGBA) *image.RGBA {
	b := normal.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := normal.RGBAAt(x, y)
			if c.A == 0 {
				out.SetRGBA(x, y, c)
				continue
			}
			out.SetRGBA(x, y, color.RGBA{
				R: byte(uint32(c.R) * 4 / 5),
				G: byte(uint32(c.G) * 4 / 5),
				B: byte(uint32(c.B) * 4 / 5),
				A: c.A,
			})
		}
	}
	return out
}

// Default returns a synthesized generic drawer or tool icon, used whenever
// decoding fails or no .info sidecar exists (spec.md §4.A, §4.E).
func Default(isDrawer bool) *Icon {
	const w, h = 24, 24
	n := image.NewRGBA(image.Rect(0, 0, w, h))
	body := palette[0]
	outline := palette[1]
	accent := palette[7]
	if isDrawer {
		accent = palette[3]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				n.SetRGBA(x, y, outline)
			case isDrawer && y < h/3:
				n.SetRGBA(x, y, accent)
			default:
				n.SetRGBA(x, y, body)
			}
		}
	}
	return &Icon{Normal: n, Selected: synthesizeSelected(n)}
}
