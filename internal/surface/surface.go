// Package surface implements the "offscreen pixel buffer and two render
// targets" half of a Canvas's render surfaces (spec.md §3): a CPU-side
// image.RGBA that amiwb's own drawing code (frame decorations, workbench
// icons, menu items) paints into, and the machinery to get those pixels
// onto the canvas's frame window, where the compositor's own redirection
// pipeline (internal/compositor) picks them up like any other window's
// content.
//
// Every non-Desktop canvas's buffer is premultiplied-alpha ARGB32, per
// spec.md §3's "every canvas except Desktop has an offscreen buffer whose
// pixel format has an alpha channel" invariant — image.RGBA already stores
// premultiplied alpha, which is also what an ARGB32 Picture expects, so no
// conversion is needed between Buffer.Img and the upload in Flush.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
	"github.com/nsklaus/amiwb-sub000/internal/xerr"
)

// Buffer is the software render target a canvas paints its content into
// before Flush uploads it to the X server.
type Buffer struct {
	Img *image.RGBA
}

// NewBuffer allocates a buffer sized w×h.
func NewBuffer(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Ensure grows the buffer in place when it is smaller than w×h, matching
// the backing-buffer resize amortization spec.md §4.D describes (callers
// only call this when cv.Surfaces.BW/BH actually changed, not every frame).
func (b *Buffer) Ensure(w, h int) {
	bounds := b.Img.Bounds()
	if bounds.Dx() >= w && bounds.Dy() >= h {
		return
	}
	b.Img = image.NewRGBA(image.Rect(0, 0, max(w, bounds.Dx()), max(h, bounds.Dy())))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Fill paints r with a solid color; r is clipped to the buffer bounds by
// image/draw.
func (b *Buffer) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(b.Img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawImage composites src onto the buffer at (x, y) using src's own
// alpha, used for icon pictures (internal/iconcodec) and the menubar logo.
func (b *Buffer) DrawImage(src image.Image, x, y int) {
	bounds := src.Bounds()
	dst := image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	draw.Draw(b.Img, dst, src, bounds.Min, draw.Over)
}

// Flush uploads the top-left w×h rectangle of b to cv's frame window.
//
// It names a fresh 32-bit pixmap, PutImages the pixels into it (BGRA byte
// order, the common little-endian X server layout — amiwb does not
// negotiate server byte order, matching spec.md §1's "compile-time
// constants, no theming/portability engine" posture), builds an ARGB32
// Picture over it, and RenderComposites that onto a Picture over cv.Frame,
// then frees the scratch pixmap/picture. A fresh pixmap per flush (rather
// than keeping canvas.RenderSurfaces' BufferPixmap permanently allocated)
// keeps teardown trivial and avoids a stale buffer surviving a resize;
// decoration/icon/menu repaints are infrequent enough relative to frame
// damage that the extra alloc is not a bottleneck.
func Flush(conn *xconn.Conn, cv *canvas.Canvas, b *Buffer, w, h int) error {
	if w <= 0 || h <= 0 || cv.Frame == 0 {
		return nil
	}
	c := conn.XU.Conn()

	pixmap, err := xproto.NewPixmapId(c)
	if err != nil {
		return xerr.Wrap(err, "surface.Flush", "alloc pixmap")
	}
	if err := xproto.CreatePixmapChecked(c, 32, pixmap, xproto.Drawable(conn.Root), uint16(w), uint16(h)).Check(); err != nil {
		return xerr.Wrap(err, "surface.Flush", "create pixmap")
	}
	defer xproto.FreePixmap(c, pixmap)

	data := packBGRA(b.Img, w, h)
	if err := putImageChunked(c, conn.GC, pixmap, w, h, data); err != nil {
		return xerr.Wrap(err, "surface.Flush", "put image")
	}

	format, err := argbFormat(conn)
	if err != nil {
		return xerr.Wrap(err, "surface.Flush", "resolve ARGB32 format")
	}
	srcPic, err := render.NewPictureId(c)
	if err != nil {
		return xerr.Wrap(err, "surface.Flush", "alloc src picture")
	}
	defer render.FreePicture(c, srcPic)
	if err := render.CreatePictureChecked(c, srcPic, xproto.Drawable(pixmap), format, 0, nil).Check(); err != nil {
		return xerr.Wrap(err, "surface.Flush", "create src picture")
	}

	dstFormat, err := windowFormat(conn, cv)
	if err != nil {
		return xerr.Wrap(err, "surface.Flush", "resolve window format")
	}
	dstPic, err := render.NewPictureId(c)
	if err != nil {
		return xerr.Wrap(err, "surface.Flush", "alloc dst picture")
	}
	defer render.FreePicture(c, dstPic)
	if err := render.CreatePictureChecked(c, dstPic, xproto.Drawable(cv.Frame), dstFormat, 0, nil).Check(); err != nil {
		return xerr.Wrap(err, "surface.Flush", "create dst picture")
	}

	render.Composite(c, render.PictOpSrc, srcPic, 0, dstPic,
		0, 0, 0, 0, 0, 0, uint16(w), uint16(h))
	c.Sync()
	return nil
}

// packBGRA converts img's top-left w×h rectangle into the B,G,R,A byte
// order PutImage's ZPixmap format expects on a little-endian server,
// following the same layout xgbutil/xgraphics.CreatePixmap uses.
func packBGRA(img *image.RGBA, w, h int) []byte {
	out := make([]byte, w*h*4)
	stride := img.Stride
	for y := 0; y < h; y++ {
		srcRow := y * stride
		dstRow := y * w * 4
		for x := 0; x < w; x++ {
			si := srcRow + x*4
			di := dstRow + x*4
			out[di+0] = img.Pix[si+2] // B
			out[di+1] = img.Pix[si+1] // G
			out[di+2] = img.Pix[si+0] // R
			out[di+3] = img.Pix[si+3] // A
		}
	}
	return out
}

// putImageMaxRows and putImageChunked keep each PutImage request under the
// X11 request length limit (2^16 words); amiwb's content is small
// (decorations, icon grids, menu rows) but a tall names-mode listing could
// still exceed it in one shot, so PutImage is issued a horizontal strip at
// a time, narrowed below 64 rows when the image is wide.
const putImageMaxRows = 64

func putImageChunked(c *xgb.Conn, gc xproto.Gcontext, pixmap xproto.Pixmap, w, h int, data []byte) error {
	rowBytes := w * 4
	step := putImageMaxRows
	if fit := (65535*4 - 24) / rowBytes; fit < step {
		step = fit
	}
	if step < 1 {
		step = 1
	}
	for y := 0; y < h; y += step {
		rows := step
		if y+rows > h {
			rows = h - y
		}
		chunk := data[y*rowBytes : (y+rows)*rowBytes]
		if err := xproto.PutImageChecked(c, xproto.ImageFormatZPixmap, xproto.Drawable(pixmap), gc,
			uint16(w), uint16(rows), 0, int16(y), 0, 32, chunk).Check(); err != nil {
			return err
		}
	}
	return nil
}

var cachedARGB32 render.Pictformat

func argbFormat(conn *xconn.Conn) (render.Pictformat, error) {
	if cachedARGB32 != 0 {
		return cachedARGB32, nil
	}
	reply, err := render.QueryPictFormats(conn.XU.Conn()).Reply()
	if err != nil {
		return 0, err
	}
	for _, f := range reply.Formats {
		if f.Depth == 32 && f.Type == render.PictTypeDirect && f.Direct.AlphaMask > 0 {
			cachedARGB32 = f.Id
			return f.Id, nil
		}
	}
	return 0, xerr.New("argbFormat", "no 32-bit ARGB PictFormat advertised")
}

var cachedRGB24 render.Pictformat

func rgbFormat(conn *xconn.Conn) (render.Pictformat, error) {
	if cachedRGB24 != 0 {
		return cachedRGB24, nil
	}
	reply, err := render.QueryPictFormats(conn.XU.Conn()).Reply()
	if err != nil {
		return 0, err
	}
	for _, f := range reply.Formats {
		if f.Depth == 24 && f.Type == render.PictTypeDirect && f.Direct.AlphaMask == 0 {
			cachedRGB24 = f.Id
			return f.Id, nil
		}
	}
	return 0, xerr.New("rgbFormat", "no 24-bit RGB PictFormat advertised")
}

// windowFormat picks the Picture format matching cv.Frame's actual depth,
// mirroring the compositor's own per-canvas setup rule (spec.md §4.C).
func windowFormat(conn *xconn.Conn, cv *canvas.Canvas) (render.Pictformat, error) {
	depth := cv.Comp.Depth
	if depth == 0 {
		depth = conn.ScreenDepth
	}
	if depth == 32 {
		return argbFormat(conn)
	}
	return rgbFormat(conn)
}

// UploadStatic uploads img as a w×h ARGB32 Picture that stays valid for the
// life of the process, for content composited every frame rather than
// flushed once per repaint — the desktop and workbench-window wallpapers
// (spec.md §4.C). Unlike Flush's scratch pixmap, the backing pixmap here is
// deliberately never freed: the returned Picture's pixels live in it.
func UploadStatic(conn *xconn.Conn, img image.Image, w, h int) (render.Picture, error) {
	if w <= 0 || h <= 0 {
		return 0, xerr.New("surface.UploadStatic", "empty image")
	}
	c := conn.XU.Conn()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	pixmap, err := xproto.NewPixmapId(c)
	if err != nil {
		return 0, xerr.Wrap(err, "surface.UploadStatic", "alloc pixmap")
	}
	if err := xproto.CreatePixmapChecked(c, 32, pixmap, xproto.Drawable(conn.Root), uint16(w), uint16(h)).Check(); err != nil {
		return 0, xerr.Wrap(err, "surface.UploadStatic", "create pixmap")
	}

	data := packBGRA(rgba, w, h)
	if err := putImageChunked(c, conn.GC, pixmap, w, h, data); err != nil {
		xproto.FreePixmap(c, pixmap)
		return 0, xerr.Wrap(err, "surface.UploadStatic", "put image")
	}

	format, err := argbFormat(conn)
	if err != nil {
		xproto.FreePixmap(c, pixmap)
		return 0, xerr.Wrap(err, "surface.UploadStatic", "resolve ARGB32 format")
	}
	pic, err := render.NewPictureId(c)
	if err != nil {
		xproto.FreePixmap(c, pixmap)
		return 0, xerr.Wrap(err, "surface.UploadStatic", "alloc picture")
	}
	if err := render.CreatePictureChecked(c, pic, xproto.Drawable(pixmap), format, 0, nil).Check(); err != nil {
		xproto.FreePixmap(c, pixmap)
		return 0, xerr.Wrap(err, "surface.UploadStatic", "create picture")
	}
	return pic, nil
}
