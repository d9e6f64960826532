//go:build ebiten

package render

import (
	"image/color"

	"nature-ca/internal/core"
	"nature-ca/internal/grid"
	"nature-ca/internal/tiles"

	"github.com/hajimehoshi/ebiten/v2"
)

// TilePainter draws the lattice as isometric tiles.
type TilePainter struct {
	assets       *Assets
	tileW, tileH int

	images   map[*tiles.Type]*ebiten.Image
	swatches map[*tiles.Type]*ebiten.Image
}

// NewTilePainter constructs a painter drawing tileW x tileH tiles.
func NewTilePainter(assets *Assets, tileW, tileH int) *TilePainter {
	return &TilePainter{
		assets:   assets,
		tileW:    tileW,
		tileH:    tileH,
		images:   make(map[*tiles.Type]*ebiten.Image),
		swatches: make(map[*tiles.Type]*ebiten.Image),
	}
}

// Size returns the canvas size for the lattice.
func (p *TilePainter) Size(g *grid.Grid) (int, int) {
	return CanvasSize(g.Width(), g.Height(), p.tileW, p.tileH)
}

// Draw paints every occupied cell back to front.
func (p *TilePainter) Draw(dst *ebiten.Image, g *grid.Grid) {
	w := g.Width()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < w; x++ {
			img := p.imageFor(g.At(x, y))
			if img == nil {
				continue
			}
			px, py := IsoPosition(x, y, w, p.tileW, p.tileH)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(px), float64(py))
			dst.DrawImage(img, op)
		}
	}
}

func (p *TilePainter) imageFor(t *tiles.Type) *ebiten.Image {
	if t == nil {
		return nil
	}
	if img, ok := p.images[t]; ok {
		return img
	}
	if src := p.assets.Image(t); src != nil {
		img := ebiten.NewImageFromImage(src)
		p.images[t] = img
		return img
	}
	if !t.HasColor {
		return nil
	}
	sw, ok := p.swatches[t]
	if !ok {
		sw = ebiten.NewImageFromImage(diamond(p.tileW, p.tileH, t.Color))
		p.swatches[t] = sw
	}
	return sw
}

// GridPainter draws the lattice top-down, one pixel per cell.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter using the given cell palette.
func NewGridPainter(palette []color.RGBA) *GridPainter {
	return &GridPainter{palette: palette}
}

// Blit uploads the provided cells into the painter image and draws it,
// reallocating when the lattice has grown.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, size core.Size, scale int) {
	if len(cells) != size.W*size.H || len(cells) == 0 {
		return
	}
	if gp.img == nil || gp.w != size.W || gp.h != size.H {
		if gp.img != nil {
			gp.img.Dispose()
		}
		gp.w, gp.h = size.W, size.H
		gp.img = ebiten.NewImage(size.W, size.H)
		gp.buf = make([]byte, 4*size.W*size.H)
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
