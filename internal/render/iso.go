package render

import (
	"image"
	"image/color"
)

// IsoPosition returns the top-left pixel of cell (x, y) on an isometric
// canvas for a lattice gridW cells wide. Tiles are tileW wide and step half
// a tile per cell along each diagonal.
func IsoPosition(x, y, gridW, tileW, tileH int) (int, int) {
	px := (y - x + gridW - 1) * tileW / 2
	py := (y + x) * tileH / 2
	return px, py
}

// CanvasSize returns the pixel size needed to draw a w*h lattice.
func CanvasSize(w, h, tileW, tileH int) (int, int) {
	if w <= 0 || h <= 0 {
		return tileW, tileH
	}
	return (w + h) * tileW / 2, (w + h) * tileH / 2
}

// diamond rasterizes a filled isometric diamond of the given size.
func diamond(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / cx
			dy := (float64(y) + 0.5 - cy) / cy
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx+dy <= 1 {
				img.SetRGBA(x, y, col)
			}
		}
	}
	return img
}
