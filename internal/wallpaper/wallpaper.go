// Package wallpaper decodes and scales background images for the desktop
// and workbench window canvases. This replaces the Imlib2 dependency named
// at spec.md §6's interface boundary: amiwb only needs a decoded,
// screen-sized image.Image handed to the compositor/renderer.
package wallpaper

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

// Load decodes the image at path and scales it to fill (w, h), matching
// amiwb's historical "fill" wallpaper mode. A missing or unreadable path
// yields a nil image and an error; callers fall back to a solid color.
func Load(path string, w, h int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("wallpaper.Load: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wallpaper.Load: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("wallpaper.Load: decode %s: %w", path, err)
	}
	if w <= 0 || h <= 0 {
		return img, nil
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
}
