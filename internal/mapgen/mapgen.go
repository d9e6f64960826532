// Package mapgen paints the initial lattice with random-walk terrain features.
package mapgen

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"nature-ca/internal/grid"
	"nature-ca/internal/tiles"
)

// attemptsPerCell bounds the walk starts tried per requested cell so features
// with no acceptable ground terminate.
const attemptsPerCell = 8

var steps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Generate builds a lattice filled with the base tile and paints each feature
// in order.
func Generate(rng *rand.Rand, catalog *tiles.Catalog, cfg Config) (*grid.Grid, error) {
	base, ok := catalog.Lookup(cfg.Base)
	if !ok {
		return nil, fmt.Errorf("mapgen: unknown base tile %q", cfg.Base)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("mapgen: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	g := grid.Filled(cfg.Width, cfg.Height, base)

	maxWalk := cfg.MaxWalk
	if maxWalk < 1 {
		maxWalk = 1
	}
	for _, f := range cfg.Features {
		p, err := newPainter(catalog, f)
		if err != nil {
			return nil, err
		}
		p.paint(rng, g, featureCells(rng, f, cfg.Width*cfg.Height), maxWalk)
	}
	return g, nil
}

// Classic returns the fixed 20x20 grass map with a short water strip.
func Classic(catalog *tiles.Catalog) (*grid.Grid, error) {
	grass, ok := catalog.Lookup("grass")
	if !ok {
		return nil, fmt.Errorf("mapgen: classic map needs a grass tile")
	}
	water, ok := catalog.Lookup("water")
	if !ok {
		return nil, fmt.Errorf("mapgen: classic map needs a water tile")
	}
	g := grid.Filled(20, 20, grass)
	for x := 0; x < 3; x++ {
		g.Set(x, 2, water)
	}
	return g, nil
}

func featureCells(rng *rand.Rand, f Feature, area int) int {
	lo, hi := f.MinPercent, f.MaxPercent
	if hi < lo {
		hi = lo
	}
	pct := lo + rng.Float64()*(hi-lo)
	if pct <= 0 {
		return 0
	}
	return int(float64(area)*pct/100 + 0.5)
}

type painter struct {
	tile *tiles.Type
	over []*tiles.Type
}

func newPainter(catalog *tiles.Catalog, f Feature) (*painter, error) {
	t, ok := catalog.Lookup(f.Tile)
	if !ok {
		return nil, fmt.Errorf("mapgen: unknown feature tile %q", f.Tile)
	}
	p := &painter{tile: t}
	for _, name := range f.Over {
		o, ok := catalog.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("mapgen: feature %q: unknown tile %q", f.Tile, name)
		}
		p.over = append(p.over, o)
	}
	return p, nil
}

func (p *painter) accepts(t *tiles.Type) bool {
	if len(p.over) == 0 {
		return true
	}
	return slices.Contains(p.over, t)
}

// paint lays down roughly want cells as a series of random walks.
func (p *painter) paint(rng *rand.Rand, g *grid.Grid, want, maxWalk int) {
	w, h := g.Width(), g.Height()
	painted := 0
	for attempts := want * attemptsPerCell; painted < want && attempts > 0; attempts-- {
		x, y := rng.IntN(w), rng.IntN(h)
		if !p.accepts(g.At(x, y)) {
			continue
		}
		if g.At(x, y) != p.tile {
			painted++
		}
		g.Set(x, y, p.tile)

		length := 1 + rng.IntN(maxWalk)
		for i := 1; i < length && painted < want; i++ {
			nx, ny, ok := p.next(rng, g, x, y)
			if !ok {
				break
			}
			x, y = nx, ny
			if g.At(x, y) != p.tile {
				painted++
			}
			g.Set(x, y, p.tile)
		}
	}
}

// next picks a random orthogonal step onto an acceptable in-bounds cell,
// trying the remaining directions when the first choice is blocked.
func (p *painter) next(rng *rand.Rand, g *grid.Grid, x, y int) (int, int, bool) {
	first := rng.IntN(len(steps))
	for i := range steps {
		d := steps[(first+i)%len(steps)]
		nx, ny := x+d[0], y+d[1]
		if !g.In(nx, ny) {
			continue
		}
		cur := g.At(nx, ny)
		if cur == p.tile || p.accepts(cur) {
			return nx, ny, true
		}
	}
	return 0, 0, false
}
