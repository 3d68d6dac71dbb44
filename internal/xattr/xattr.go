// Package xattr persists per-directory window geometry in the
// user.window.geometry extended attribute, per spec.md §4.E and §6.
package xattr

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

const attrName = "user.window.geometry"

// Geometry is the 16-byte on-disk layout: four little-endian int32 fields.
type Geometry struct {
	X, Y, W, H int32
}

// Get reads the spatial geometry xattr from dir. ok is false if the
// attribute is absent (cascade default applies) or malformed.
func Get(dir string) (g Geometry, ok bool) {
	buf := make([]byte, 16)
	n, err := unix.Getxattr(dir, attrName, buf)
	if err != nil || n != 16 {
		return Geometry{}, false
	}
	g.X = int32(binary.LittleEndian.Uint32(buf[0:4]))
	g.Y = int32(binary.LittleEndian.Uint32(buf[4:8]))
	g.W = int32(binary.LittleEndian.Uint32(buf[8:12]))
	g.H = int32(binary.LittleEndian.Uint32(buf[12:16]))
	return g, true
}

// Set writes the spatial geometry xattr on dir. Failures (read-only fs,
// unsupported fs) are non-fatal per spec.md §7 resource-exhaustion policy;
// callers log and continue without the persisted geometry.
func Set(dir string, g Geometry) error {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(g.W))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(g.H))
	if err := unix.Setxattr(dir, attrName, buf, 0); err != nil {
		return fmt.Errorf("xattr.Set %s: %w", dir, err)
	}
	return nil
}
