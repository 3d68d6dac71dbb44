package intuition

import "image/color"

// The classic Workbench palette (spec.md §4.A) doubles as amiwb's
// decoration palette: gray for inactive chrome, the Workbench blue for an
// active titlebar, white/black for text, matching the colors every
// classic .info icon already uses.
var (
	colorGray    = color.RGBA{0xA0, 0xA2, 0xA0, 0xFF}
	colorBlue    = color.RGBA{0x66, 0x66, 0xBB, 0xFF}
	colorWhite   = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorBlack   = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorDarkGray = color.RGBA{0x99, 0x99, 0x99, 0xFF}
)
