package render

import (
	"image/color"

	"nature-ca/internal/tiles"
)

// Palette maps cell values to colours: index 0 (empty) is transparent and
// index i is the colour of catalog entry i.
func Palette(c *tiles.Catalog) []color.RGBA {
	palette := make([]color.RGBA, c.Len()+1)
	for _, t := range c.Types() {
		if t.HasColor {
			palette[t.Index] = t.Color
		}
	}
	return palette
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
