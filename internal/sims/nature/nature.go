// Package nature implements the growing tile automaton: occupied cells change
// type under neighbour influence or spread into adjacent empty space, and the
// lattice grows whenever a spread leaves its current bounds.
package nature

import (
	"fmt"
	"math/rand/v2"

	"nature-ca/internal/core"
	"nature-ca/internal/grid"
	"nature-ca/internal/mapgen"
	"nature-ca/internal/tiles"
)

// StepReport summarizes the most recent tick.
type StepReport struct {
	Transitions int
	Spreads     int

	RowsTop    int
	RowsBottom int
	ColsLeft   int
	ColsRight  int
}

// World owns the lattice and advances it one tick per Step.
type World struct {
	cfg     Config
	catalog *tiles.Catalog

	grid    *grid.Grid
	initial *grid.Grid
	tick    int
	cells   []uint8
	last    StepReport

	rng      *rand.Rand
	observer func(*World)

	pending    []pendingSpread
	candidates []candidate
}

// New returns a World using the default configuration.
func New(catalog *tiles.Catalog) (*World, error) {
	return NewWithConfig(DefaultConfig(), catalog)
}

// NewWithConfig returns a World whose initial lattice comes from the map
// generator. The generator configuration is validated against the catalog.
func NewWithConfig(cfg Config, catalog *tiles.Catalog) (*World, error) {
	cfg.Params = cfg.Params.normalize()
	w := &World{cfg: cfg, catalog: catalog}
	if _, err := w.build(core.NewRNG(1)); err != nil {
		return nil, err
	}
	w.Reset(0)
	return w, nil
}

// NewWithGrid returns a World that starts from, and resets to, a copy of g.
func NewWithGrid(cfg Config, catalog *tiles.Catalog, g *grid.Grid) *World {
	cfg.Params = cfg.Params.normalize()
	w := &World{cfg: cfg, catalog: catalog, initial: g.Clone()}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "nature" }

// Size reports the current lattice dimensions.
func (w *World) Size() core.Size {
	return core.Size{W: w.grid.Width(), H: w.grid.Height()}
}

// Cells returns the row-major tile indices of the lattice, 0 for empty.
func (w *World) Cells() []uint8 {
	w.cells = w.grid.Cells(w.cells)
	return w.cells
}

// Grid exposes the live lattice. It must not be modified by callers.
func (w *World) Grid() *grid.Grid { return w.grid }

// Catalog returns the tile catalog the world draws from.
func (w *World) Catalog() *tiles.Catalog { return w.catalog }

// Tick returns the number of completed steps since the last Reset.
func (w *World) Tick() int { return w.tick }

// LastStep reports what the most recent Step did.
func (w *World) LastStep() StepReport { return w.last }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// SetObserver registers fn to run after Reset and after every Step. The
// observer must not keep the lattice beyond the call.
func (w *World) SetObserver(fn func(*World)) { w.observer = fn }

// Reset rebuilds the initial lattice and rewinds the tick counter. A zero
// seed falls back to the configured seed; when both are zero the run is
// randomly seeded.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	g, err := w.build(w.rng)
	if err != nil {
		// NewWithConfig already generated a map from the same inputs.
		panic(fmt.Sprintf("nature: rebuilding initial map: %v", err))
	}
	w.grid = g
	w.tick = 0
	w.last = StepReport{}
	w.notify()
}

// Step advances the simulation by one tick: the transition sweep followed by
// the application of every spread it produced.
func (w *World) Step() {
	w.tick++
	w.last = StepReport{}
	w.transition()
	w.applySpreads(w.pending)
	w.notify()
}

func (w *World) build(rng *rand.Rand) (*grid.Grid, error) {
	switch {
	case w.initial != nil:
		return w.initial.Clone(), nil
	case w.cfg.Classic:
		return mapgen.Classic(w.catalog)
	default:
		return mapgen.Generate(rng, w.catalog, w.cfg.Generator)
	}
}

func (w *World) notify() {
	if w.observer != nil {
		w.observer(w)
	}
}
