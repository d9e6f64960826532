//go:build ebiten

package app

import (
	"image/color"
	"time"

	"nature-ca/internal/core"
	"nature-ca/internal/render"
	"nature-ca/internal/sims/nature"
	"nature-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minScreenW = 480
	minScreenH = 360
)

var background = color.RGBA{R: 12, G: 14, B: 20, A: 255}

// Options configures the GUI.
type Options struct {
	Scale        int
	TileWidth    int
	TileHeight   int
	TickInterval time.Duration
	Autostart    bool
	Seed         int64
}

// Game adapts the nature world to the ebiten.Game interface.
type Game struct {
	world  *nature.World
	tiles  *render.TilePainter
	flat   *render.GridPainter
	status *ui.Status
	timer  *core.FixedStep

	scale      int
	flatView   bool
	hideStatus bool
	tickOnce   bool
	seed       int64
}

// New constructs a Game for the provided world.
func New(world *nature.World, assets *render.Assets, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	g := &Game{
		world:  world,
		tiles:  render.NewTilePainter(assets, opts.TileWidth, opts.TileHeight),
		flat:   render.NewGridPainter(render.Palette(world.Catalog())),
		status: ui.NewStatus(world, 0),
		timer:  core.NewFixedStep(opts.TickInterval),
		scale:  opts.Scale,
		seed:   opts.Seed,
	}
	if opts.Autostart {
		g.timer.Start()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation on the timer.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.timer.Running() {
			g.timer.Stop()
		} else {
			g.timer.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.flatView = !g.flatView
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hideStatus = !g.hideStatus
	}

	if g.timer.ShouldStep() || g.tickOnce {
		g.world.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.flatView {
		g.flat.Blit(screen, g.world.Cells(), g.world.Size(), g.scale)
	} else {
		g.tiles.Draw(screen, g.world.Grid())
	}
	if !g.hideStatus {
		g.status.Draw(screen, !g.timer.Running())
	}
}

// Layout returns the logical screen size, which follows the growing lattice.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	var w, h int
	if g.flatView {
		s := g.world.Size()
		w, h = s.W*g.scale, s.H*g.scale
	} else {
		w, h = g.tiles.Size(g.world.Grid())
	}
	return max(w, minScreenW), max(h, minScreenH)
}
