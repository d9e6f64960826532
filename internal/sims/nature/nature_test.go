package nature

import (
	"math"
	"slices"
	"testing"

	"nature-ca/internal/grid"
	"nature-ca/internal/tiles"
)

func mustCatalog(t *testing.T, doc string) *tiles.Catalog {
	t.Helper()
	c, err := tiles.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

// gridFrom builds a lattice from rows of tile initials; '.' is empty.
func gridFrom(c *tiles.Catalog, rows ...string) *grid.Grid {
	g := grid.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '.' {
				continue
			}
			g.Set(x, y, c.MustLookup(string(row[x])))
		}
	}
	return g
}

func render(g *grid.Grid) []string {
	out := make([]string, g.Height())
	for y := range out {
		b := make([]byte, g.Width())
		for x := range b {
			if t := g.At(x, y); t != nil {
				b[x] = t.Name[0]
			} else {
				b[x] = '.'
			}
		}
		out[y] = string(b)
	}
	return out
}

func seededConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func TestSingleCellSpreadsIntoAllDirections(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 100}")
	w := NewWithGrid(seededConfig(), c, gridFrom(c, "a"))

	w.Step()

	want := []string{".a.", "aaa", ".a."}
	if got := render(w.Grid()); !slices.Equal(got, want) {
		t.Fatalf("after one step lattice = %q, expected %q", got, want)
	}
	r := w.LastStep()
	if r.RowsTop != 1 || r.RowsBottom != 1 || r.ColsLeft != 1 || r.ColsRight != 1 || r.Spreads != 4 {
		t.Fatalf("unexpected step report %+v", r)
	}
}

func TestCloneProbabilityUsesPerCandidateStayWeight(t *testing.T) {
	c := mustCatalog(t, `
A: {spread: 0}
B: {spread: 0, clone: {A: 100}}
`)
	start := gridFrom(c, "BBB", "BAB", "BBB")
	w := NewWithGrid(seededConfig(), c, start)
	b := c.MustLookup("B")

	const trials = 20000
	became := 0
	for i := 0; i < trials; i++ {
		w.grid = start.Clone()
		w.Step()
		if w.Grid().Width() != 3 || w.Grid().Height() != 3 {
			t.Fatal("lattice must not grow without spread")
		}
		if w.Grid().At(1, 1) == b {
			became++
		}
	}
	// Candidate B has weight 4x100; stay weight is 100 x 1 candidate.
	share := float64(became) / trials
	if math.Abs(share-0.8) > 0.015 {
		t.Fatalf("center became B in %.3f of trials, expected about 0.8", share)
	}
}

func TestIntrinsicTransitionAppliesWithoutNeighbours(t *testing.T) {
	c := mustCatalog(t, `
a: {spread: 0, transition: {b: 5}}
b: {spread: 0}
`)
	cfg := seededConfig()
	cfg.Params.StayWeight = 0
	w := NewWithGrid(cfg, c, gridFrom(c, "a"))

	w.Step()

	if got := render(w.Grid()); !slices.Equal(got, []string{"b"}) {
		t.Fatalf("lattice = %q, expected the cell to decay into b", got)
	}
	if w.LastStep().Transitions != 1 {
		t.Fatalf("transitions = %d, expected 1", w.LastStep().Transitions)
	}
}

func TestSweepModes(t *testing.T) {
	doc := `
a: {spread: 0}
b: {spread: 0, clone: {a: 1}}
`
	cases := []struct {
		sweep Sweep
		want  string
	}{
		{SweepSnapshot, "bba"},
		{SweepInPlace, "bbb"},
	}
	for _, tc := range cases {
		c := mustCatalog(t, doc)
		cfg := seededConfig()
		cfg.Params.StayWeight = 0
		cfg.Params.Sweep = tc.sweep
		w := NewWithGrid(cfg, c, gridFrom(c, "baa"))

		w.Step()

		if got := render(w.Grid()); got[0] != tc.want {
			t.Fatalf("%s sweep produced %q, expected %q", tc.sweep, got[0], tc.want)
		}
	}
}

func TestGrowthCorrectionSharesNewRow(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 0}")
	a := c.MustLookup("a")
	w := NewWithGrid(seededConfig(), c, gridFrom(c, "a.a", "..."))

	w.applySpreads([]pendingSpread{
		{x: 0, y: -1, tile: a},
		{x: 2, y: -1, tile: a},
		{x: 1, y: 1, tile: a},
		{x: -1, y: 0, tile: a},
		{x: 1, y: 2, tile: a},
		{x: -1, y: 1, tile: a},
	})

	want := []string{
		".a.a",
		"aa.a",
		"a.a.",
		"..a.",
	}
	if got := render(w.Grid()); !slices.Equal(got, want) {
		t.Fatalf("lattice = %q, expected %q", got, want)
	}
	r := w.LastStep()
	if r.RowsTop != 1 || r.ColsLeft != 1 || r.RowsBottom != 1 || r.ColsRight != 0 {
		t.Fatalf("unexpected growth %+v", r)
	}
}

func TestGrowthAppendsSharedBottomRow(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 0}")
	a := c.MustLookup("a")
	w := NewWithGrid(seededConfig(), c, gridFrom(c, "aa"))

	w.applySpreads([]pendingSpread{
		{x: 0, y: 1, tile: a},
		{x: 1, y: 1, tile: a},
		{x: 2, y: 0, tile: a},
		{x: 2, y: 0, tile: a},
	})

	want := []string{"aaa", "aa."}
	if got := render(w.Grid()); !slices.Equal(got, want) {
		t.Fatalf("lattice = %q, expected %q", got, want)
	}
	if r := w.LastStep(); r.RowsBottom != 1 || r.ColsRight != 1 {
		t.Fatalf("unexpected growth %+v", r)
	}
}

func TestGrowthTopInsertKeepsOccupiedCells(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 0}\nb: {spread: 0}")
	a, b := c.MustLookup("a"), c.MustLookup("b")
	w := NewWithGrid(seededConfig(), c, gridFrom(c, "a", "."))

	w.applySpreads([]pendingSpread{
		{x: 0, y: -1, tile: a},
		{x: 0, y: 1, tile: b},
		{x: 0, y: 2, tile: b},
	})

	// The in-bounds entries follow the row they were aimed at, so the
	// original cell survives.
	want := []string{"a", "a", "b", "b"}
	if got := render(w.Grid()); !slices.Equal(got, want) {
		t.Fatalf("lattice = %q, expected %q", got, want)
	}
	if r := w.LastStep(); r.RowsTop != 1 || r.RowsBottom != 1 {
		t.Fatalf("unexpected growth %+v", r)
	}
}

func TestStepInvariants(t *testing.T) {
	c := mustCatalog(t, `
a: {spread: 30, clone: {b: 20}}
b: {spread: 20, clone: {a: 30}}
`)
	start := gridFrom(c,
		"a..b....",
		"........",
		"..ab....",
		"........",
		".....b..",
		"........",
	)
	for _, sweep := range []Sweep{SweepSnapshot, SweepInPlace} {
		cfg := seededConfig()
		cfg.Params.Sweep = sweep
		w := NewWithGrid(cfg, c, start)

		for step := 0; step < 25; step++ {
			prev := w.Grid().Clone()
			w.Step()
			g := w.Grid()
			r := w.LastStep()

			if g.Width() < prev.Width() || g.Height() < prev.Height() {
				t.Fatalf("%s step %d: lattice shrank", sweep, step)
			}
			if g.Width() != prev.Width()+r.ColsLeft+r.ColsRight || g.Height() != prev.Height()+r.RowsTop+r.RowsBottom {
				t.Fatalf("%s step %d: size does not match growth report %+v", sweep, step, r)
			}
			if len(w.Cells()) != g.Width()*g.Height() {
				t.Fatalf("%s step %d: snapshot is not rectangular", sweep, step)
			}

			for y := 0; y < prev.Height(); y++ {
				for x := 0; x < prev.Width(); x++ {
					now := g.At(x+r.ColsLeft, y+r.RowsTop)
					if prev.At(x, y) != nil {
						if now == nil {
							t.Fatalf("%s step %d: occupied cell (%d,%d) became empty", sweep, step, x, y)
						}
						continue
					}
					isolated := true
					for _, d := range neighbourOffsets {
						if prev.At(x+d[0], y+d[1]) != nil {
							isolated = false
						}
					}
					if isolated && now != nil {
						t.Fatalf("%s step %d: isolated empty cell (%d,%d) became occupied", sweep, step, x, y)
					}
				}
			}
		}
	}
}

func TestResetRestoresInitialStateAndNotifies(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 50}")
	w := NewWithGrid(seededConfig(), c, gridFrom(c, "a"))

	calls := 0
	ticks := []int{}
	w.SetObserver(func(w *World) {
		calls++
		ticks = append(ticks, w.Tick())
	})

	w.Step()
	w.Step()
	w.Reset(0)

	if calls != 3 || !slices.Equal(ticks, []int{1, 2, 0}) {
		t.Fatalf("observer saw ticks %v over %d calls", ticks, calls)
	}
	if got := render(w.Grid()); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("reset lattice = %q, expected the initial cell", got)
	}
}

func TestSeededRunsAreRepeatable(t *testing.T) {
	cfg := seededConfig()
	cfg.Seed = 7

	run := func() []uint8 {
		w, err := NewWithConfig(cfg, tiles.Default())
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 15; i++ {
			w.Step()
		}
		return append([]uint8(nil), w.Cells()...)
	}

	first, second := run(), run()
	if !slices.Equal(first, second) {
		t.Fatal("same seed produced different lattices")
	}
}

func TestNewWithConfigValidatesGenerator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Base = "lava"
	if _, err := NewWithConfig(cfg, tiles.Default()); err == nil {
		t.Fatal("expected an error for an unknown base tile")
	}

	cfg = DefaultConfig()
	cfg.Classic = true
	w, err := NewWithConfig(cfg, tiles.Default())
	if err != nil {
		t.Fatal(err)
	}
	if s := w.Size(); s.W != 20 || s.H != 20 || w.Tick() != 0 {
		t.Fatalf("classic world size %+v tick %d", s, w.Tick())
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":            "30",
		"h":            "12",
		"seed":         "9",
		"spread_scale": "200",
		"stay_weight":  "-1",
		"sweep":        "inplace",
		"classic":      "true",
	})
	if c.Generator.Width != 30 || c.Generator.Height != 12 || c.Seed != 9 {
		t.Fatalf("unexpected size or seed: %+v", c)
	}
	if c.Params.SpreadScale != 200 || c.Params.StayWeight != DefaultStayWeight {
		t.Fatalf("unexpected weights: %+v", c.Params)
	}
	if c.Params.Sweep != SweepInPlace || !c.Classic {
		t.Fatalf("unexpected sweep or classic flag: %+v", c)
	}
	if FromMap(map[string]string{"sweep": "sideways"}).Params.Sweep != SweepSnapshot {
		t.Fatal("unknown sweep must keep the default")
	}
}

func TestSpreadChanceMatchesDeclaredPercentage(t *testing.T) {
	c := mustCatalog(t, "a: {spread: 30}")
	start := gridFrom(c, "a")

	cases := []struct {
		scale float64
		want  float64
	}{
		{DefaultSpreadScale, 0.30},
		{60, 0.50},
		{20, 1},
	}
	for _, tc := range cases {
		cfg := seededConfig()
		cfg.Params.SpreadScale = tc.scale
		w := NewWithGrid(cfg, c, start)

		const trials = 20000
		spreads := 0
		for i := 0; i < trials; i++ {
			w.grid = start.Clone()
			w.Step()
			spreads += w.LastStep().Spreads
		}
		// Every trial offers four out-of-bounds neighbours.
		share := float64(spreads) / (4 * trials)
		if math.Abs(share-tc.want) > 0.01 {
			t.Fatalf("spread scale %v: spread into %.4f of neighbours, expected about %.2f", tc.scale, share, tc.want)
		}
	}
}

func TestCheckValue(t *testing.T) {
	for _, kv := range [][2]string{{"w", "5"}, {"seed", "-3"}, {"stay_weight", "0"}, {"sweep", "inplace"}, {"classic", "1"}} {
		if err := CheckValue(kv[0], kv[1]); err != nil {
			t.Fatalf("%s=%s rejected: %v", kv[0], kv[1], err)
		}
	}
	for _, kv := range [][2]string{{"h", "0"}, {"seed", "x"}, {"spread_scale", "-1"}, {"stay_weight", "NaN"}, {"sweep", "diagonal"}, {"colour", "red"}} {
		if err := CheckValue(kv[0], kv[1]); err == nil {
			t.Fatalf("%s=%s accepted", kv[0], kv[1])
		}
	}
}
