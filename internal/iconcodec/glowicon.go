package iconcodec

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"

	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// findAndDecodeGlowIcon scans tail (the bytes following the classic
// gadget/bitmap data) for a "FORM"..."ICON" IFF chunk and decodes its
// FACE/IMAG sub-chunks into a truecolor Icon, per spec.md §4.A.
//
// The classic section may be followed by a DefaultTool string, a
// ToolTypes array, and a DrawerData2 block of variable length that this
// package's simplified classic reader does not track byte-for-byte; we
// locate the FORM chunk by signature scan instead of by offset
// arithmetic, which is robust to that imprecision.
func findAndDecodeGlowIcon(tail []byte) (*Icon, error) {
	formAt := bytes.Index(tail, []byte("FORM"))
	if formAt < 0 {
		return nil, xerr.New("iconcodec.findAndDecodeGlowIcon", "no FORM chunk")
	}
	data := tail[formAt:]
	if len(data) < 12 {
		return nil, xerr.New("iconcodec.findAndDecodeGlowIcon", "truncated FORM header")
	}
	formSize := int(binary.BigEndian.Uint32(data[4:8]))
	if string(data[8:12]) != "ICON" {
		return nil, xerr.New("iconcodec.findAndDecodeGlowIcon", "FORM is not type ICON")
	}
	end := 8 + formSize
	if end > len(data) {
		end = len(data)
	}
	body := data[12:end]

	var face *faceChunk
	var images []*imagChunk
	pos := 0
	for pos+8 <= len(body) {
		id := string(body[pos : pos+4])
		size := int(binary.BigEndian.Uint32(body[pos+4 : pos+8]))
		pos += 8
		if pos+size > len(body) {
			return nil, xerr.New("iconcodec.findAndDecodeGlowIcon", "corrupt chunk %s size %d", id, size)
		}
		chunk := body[pos : pos+size]
		switch id {
		case "FACE":
			f, err := parseFace(chunk)
			if err != nil {
				return nil, err
			}
			face = f
		case "IMAG":
			im, err := parseImag(chunk)
			if err != nil {
				return nil, err
			}
			images = append(images, im)
		}
		pos += size
		if size%2 == 1 { // IFF chunks are word-padded
			pos++
		}
	}

	if face == nil || len(images) == 0 {
		return nil, xerr.New("iconcodec.findAndDecodeGlowIcon", "missing FACE or IMAG")
	}

	icon := &Icon{}
	normal, err := renderGlowImage(face, images[0], nil)
	if err != nil {
		return nil, err
	}
	icon.Normal = normal

	if len(images) > 1 {
		selected, err := renderGlowImage(face, images[1], images[0].palette)
		if err != nil {
			return nil, err
		}
		icon.Selected = selected
	}
	return icon, nil
}

type faceChunk struct {
	w, h         int
	flags        byte
	aspect       byte
	maxPalBytes  int
}

func parseFace(d []byte) (*faceChunk, error) {
	if len(d) < 6 {
		return nil, xerr.New("iconcodec.parseFace", "truncated FACE chunk")
	}
	return &faceChunk{
		w:           int(d[0]) + 1,
		h:           int(d[1]) + 1,
		flags:       d[2],
		aspect:      d[3],
		maxPalBytes: int(binary.BigEndian.Uint16(d[4:6])) + 1,
	}, nil
}

type imagChunk struct {
	transparentIdx int
	numColors      int
	flags          byte
	imgCompression byte
	palCompression byte
	depth          int
	imageData      []byte
	palette        []color.RGBA // nil if this IMAG has no palette of its own
}

func parseImag(d []byte) (*imagChunk, error) {
	if len(d) < 10 {
		return nil, xerr.New("iconcodec.parseImag", "truncated IMAG header")
	}
	im := &imagChunk{
		transparentIdx: int(d[0]),
		numColors:      int(d[1]) + 1,
		flags:          d[2],
		imgCompression: d[3],
		palCompression: d[4],
		depth:          int(d[5]),
	}
	imgSize := int(binary.BigEndian.Uint16(d[6:8])) + 1
	palSize := int(binary.BigEndian.Uint16(d[8:10])) + 1
	pos := 10
	if pos+imgSize > len(d) {
		return nil, xerr.New("iconcodec.parseImag", "truncated image data")
	}
	im.imageData = d[pos : pos+imgSize]
	pos += imgSize

	if im.flags&0x02 != 0 { // bit 1: has own palette
		if pos+palSize > len(d) {
			return nil, xerr.New("iconcodec.parseImag", "truncated palette data")
		}
		palBytes := d[pos : pos+palSize]
		if im.palCompression == 1 {
			palBytes = bytePackBitsDecode(palBytes, im.numColors*3)
		}
		im.palette = bytesToPalette(palBytes, im.numColors)
	}
	return im, nil
}

func bytesToPalette(b []byte, numColors int) []color.RGBA {
	pal := make([]color.RGBA, numColors)
	for i := 0; i < numColors && i*3+2 < len(b); i++ {
		pal[i] = color.RGBA{R: b[i*3], G: b[i*3+1], B: b[i*3+2], A: 0xFF}
	}
	return pal
}

// renderGlowImage decodes one IMAG's pixel indices (optionally
// bit-aligned-PackBits compressed) into an RGBA image. fallbackPalette is
// used when im has no palette of its own, per spec.md §4.A: "if the
// second image lacks a palette, reuse the first's".
func renderGlowImage(face *faceChunk, im *imagChunk, fallbackPalette []color.RGBA) (*image.RGBA, error) {
	pal := im.palette
	if pal == nil {
		pal = fallbackPalette
	}
	if pal == nil {
		return nil, xerr.New("iconcodec.renderGlowImage", "no palette available")
	}

	count := face.w * face.h
	var indices []int
	if im.imgCompression == 1 {
		indices = bitPackBitsDecode(im.imageData, im.depth, count)
	} else {
		indices = unpackRawBits(im.imageData, im.depth, count)
	}
	if len(indices) < count {
		return nil, xerr.New("iconcodec.renderGlowImage", "decoded %d of %d pixels", len(indices), count)
	}

	hasTransparency := im.flags&0x01 != 0
	img := image.NewRGBA(image.Rect(0, 0, face.w, face.h))
	for y := 0; y < face.h; y++ {
		for x := 0; x < face.w; x++ {
			idx := indices[y*face.w+x]
			if idx >= len(pal) {
				idx = 0
			}
			c := pal[idx]
			if hasTransparency && idx == im.transparentIdx {
				c.A = 0
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// bitReader reads values of arbitrary bit width, MSB first, from a byte
// slice, used by the bit-aligned PackBits decoder.
type bitReader struct {
	data []byte
	pos  int // bit position
}

func (r *bitReader) bits(n int) (uint32, bool) {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := r.pos / 8
		if byteIdx >= len(r.data) {
			return 0, false
		}
		bit := (r.data[byteIdx] >> uint(7-r.pos%8)) & 1
		v = (v << 1) | uint32(bit)
		r.pos++
	}
	return v, true
}

// bitPackBitsDecode implements the bit-aligned PackBits variant described
// in spec.md §4.A: a control byte c (read as 8 bits from the same stream)
// either repeats the next depth-bit value 257-c times (c>128), copies the
// next c+1 depth-bit values verbatim (c<128), or is a no-op (c==128).
func bitPackBitsDecode(data []byte, depth, want int) []int {
	if depth <= 0 {
		depth = 8
	}
	br := &bitReader{data: data}
	out := make([]int, 0, want)
	for len(out) < want {
		c, ok := br.bits(8)
		if !ok {
			break
		}
		switch {
		case c > 128:
			v, ok := br.bits(depth)
			if !ok {
				return out
			}
			n := 257 - int(c)
			for i := 0; i < n && len(out) < want; i++ {
				out = append(out, int(v))
			}
		case c < 128:
			n := int(c) + 1
			for i := 0; i < n && len(out) < want; i++ {
				v, ok := br.bits(depth)
				if !ok {
					return out
				}
				out = append(out, int(v))
			}
		default: // c == 128: skip
		}
	}
	return out
}

// unpackRawBits reads want depth-bit values with no compression.
func unpackRawBits(data []byte, depth, want int) []int {
	if depth <= 0 {
		depth = 8
	}
	br := &bitReader{data: data}
	out := make([]int, 0, want)
	for len(out) < want {
		v, ok := br.bits(depth)
		if !ok {
			break
		}
		out = append(out, int(v))
	}
	return out
}

// bytePackBitsDecode implements classic byte-level Apple-style PackBits,
// used for compressed GlowIcon palettes (spec.md §4.A: "compressed palette
// uses byte-level PackBits").
func bytePackBitsDecode(data []byte, want int) []byte {
	out := make([]byte, 0, want)
	i := 0
	for i < len(data) && len(out) < want {
		c := data[i]
		i++
		switch {
		case c > 128:
			if i >= len(data) {
				return out
			}
			v := data[i]
			i++
			n := 257 - int(c)
			for k := 0; k < n && len(out) < want; k++ {
				out = append(out, v)
			}
		case c < 128:
			n := int(c) + 1
			for k := 0; k < n && i < len(data) && len(out) < want; k++ {
				out = append(out, data[i])
				i++
			}
		default: // c == 128: skip
		}
	}
	return out
}
