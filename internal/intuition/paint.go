package intuition

import (
	"image"
	"image/color"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
	"github.com/nsklaus/amiwb-sub000/internal/logging"
	"github.com/nsklaus/amiwb-sub000/internal/surface"
	"github.com/nsklaus/amiwb-sub000/internal/textmetrics"
	"github.com/nsklaus/amiwb-sub000/internal/xconn"
)

// Paint draws cv's frame decoration — border fill, titlebar with close/
// iconify/maximize/lower gadgets and title text, resize gadget, and (for
// workbench windows) scrollbars — into a software buffer and flushes it
// to cv.Frame, per spec.md §3 and §4.D's gadget-rectangle tables. It is a
// no-op for the Desktop canvas (no frame gadgets) and for a fullscreen
// canvas (its content fills the frame; nothing to decorate).
func (wm *WM) Paint(face *textmetrics.Face, cv *canvas.Canvas) {
	paint(wm.conn, face, cv)
}

func paint(conn *xconn.Conn, face *textmetrics.Face, cv *canvas.Canvas) {
	if cv.Kind == canvas.Desktop || cv.WM.Fullscreen || cv.W <= 0 || cv.H <= 0 {
		return
	}

	buf := surface.NewBuffer(cv.W, cv.H)
	b := cv.Borders()

	buf.Fill(image.Rect(0, 0, cv.W, cv.H), colorGray)

	titleColor := colorDarkGray
	textColor := colorBlack
	if cv.WM.Active {
		titleColor = colorBlue
		textColor = colorWhite
	}
	buf.Fill(image.Rect(0, 0, cv.W, b.Top), titleColor)

	if face != nil {
		title := cv.View.TitleBase
		if cv.View.TitleChange != "" {
			title = cv.View.TitleChange
		}
		if title != "" {
			baseline := b.Top/2 + face.Height()/2 - 2
			if baseline < face.Height() {
				baseline = face.Height()
			}
			face.Draw(buf.Img, 34, baseline, title, &image.Uniform{C: textColor})
		}
	}

	paintGadget(buf, 0, 0, 30, b.Top, colorDarkGray)
	paintGadget(buf, cv.W-91, 0, 30, b.Top, colorDarkGray)
	paintGadget(buf, cv.W-61, 0, 30, b.Top, colorDarkGray)
	paintGadget(buf, cv.W-31, 0, 31, b.Top, colorDarkGray)

	paintGadget(buf, cv.W-resizeSEZone, cv.H-resizeSEZone, resizeSEZone, resizeSEZone, colorDarkGray)

	if cv.ClientWindow == 0 {
		paintScrollbars(buf, cv, b)
	}

	if err := surface.Flush(conn, cv, buf, cv.W, cv.H); err != nil {
		logging.L.Printf("intuition.paint: %v", err)
	}
}

// paintGadget fills a titlebar gadget rectangle with an inset 1px border
// so it reads as a raised button against the titlebar, per the classic
// Workbench chrome look.
func paintGadget(buf *surface.Buffer, x, y, w, h int, c color.Color) {
	if w <= 2 || h <= 2 {
		buf.Fill(image.Rect(x, y, x+w, y+h), c)
		return
	}
	buf.Fill(image.Rect(x+1, y+1, x+w-1, y+h-1), c)
	buf.Fill(image.Rect(x, y, x+w, y+1), colorWhite)
	buf.Fill(image.Rect(x, y, x+1, y+h), colorWhite)
}

func paintScrollbars(buf *surface.Buffer, cv *canvas.Canvas, b canvas.Borders) {
	sb := Scrollbars(cv)

	buf.Fill(image.Rect(sb.VTrackX, sb.VTrackY, sb.VTrackX+sb.VTrackW, sb.VTrackY+sb.VTrackH), colorDarkGray)
	knobLenV := KnobLen(sb.VTrackH, cv.View.ContentH)
	knobPosV := sb.VTrackY + KnobPos(sb.VTrackH, knobLenV, cv.View.ScrollY, cv.View.MaxScrollY)
	buf.Fill(image.Rect(sb.VTrackX, knobPosV, sb.VTrackX+sb.VTrackW, knobPosV+knobLenV), colorGray)

	buf.Fill(image.Rect(sb.HTrackX, sb.HTrackY, sb.HTrackX+sb.HTrackW, sb.HTrackY+sb.HTrackH), colorDarkGray)
	knobLenH := KnobLen(sb.HTrackW, cv.View.ContentW)
	knobPosH := sb.HTrackX + KnobPos(sb.HTrackW, knobLenH, cv.View.ScrollX, cv.View.MaxScrollX)
	buf.Fill(image.Rect(knobPosH, sb.HTrackY, knobPosH+knobLenH, sb.HTrackY+sb.HTrackH), colorGray)
}
