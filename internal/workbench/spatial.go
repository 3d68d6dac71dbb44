package workbench

import "github.com/nsklaus/amiwb-sub000/internal/xattr"

const (
	cascadeBaseX  = 100
	cascadeBaseY  = 80
	cascadeStep   = 30
	cascadeWrapAt = 8 // wb_spatial.c wraps the cascade every 8 windows
)

// cascadeCount tracks how many windows have been cascaded since startup,
// reproducing wb_spatial.c's wrap-around modulus exactly (spec.md §4.E,
// SPEC_FULL.md §12).
var cascadeCount int

// NextCascadePosition returns the next cascade position and advances the
// counter, used when a directory has no stored spatial geometry.
func NextCascadePosition() (x, y int) {
	slot := cascadeCount % cascadeWrapAt
	cascadeCount++
	return cascadeBaseX + slot*cascadeStep, cascadeBaseY + slot*cascadeStep
}

// Geometry is a directory window's persisted position and size.
type Geometry struct {
	X, Y, W, H int
}

// LoadGeometry reads dir's spatial xattr, falling back to a cascade
// position with a default size when absent, per spec.md §4.E.
func LoadGeometry(dir string, defaultW, defaultH int) Geometry {
	if g, ok := xattr.Get(dir); ok {
		return Geometry{X: int(g.X), Y: int(g.Y), W: int(g.W), H: int(g.H)}
	}
	x, y := NextCascadePosition()
	return Geometry{X: x, Y: y, W: defaultW, H: defaultH}
}

// SaveGeometry persists g on dir's spatial xattr (spec.md §4.E), the same
// attribute intuition writes on drag-end and resize-end.
func SaveGeometry(dir string, g Geometry) error {
	return xattr.Set(dir, xattr.Geometry{X: int32(g.X), Y: int32(g.Y), W: int32(g.W), H: int32(g.H)})
}
