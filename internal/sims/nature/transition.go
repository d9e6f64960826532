package nature

import (
	"nature-ca/internal/grid"
	"nature-ca/internal/sampler"
	"nature-ca/internal/tiles"
)

type candidate = sampler.Option[*tiles.Type]

// neighbourOffsets lists the orthogonal neighbours in evaluation order.
var neighbourOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// transition sweeps every occupied cell once, replacing its type where the
// draw selects a candidate and queueing spreads into empty neighbours.
func (w *World) transition() {
	g := w.grid
	view := g
	if w.cfg.Params.Sweep != SweepInPlace {
		view = g.Clone()
	}

	w.pending = w.pending[:0]
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cur := view.At(x, y)
			if cur == nil {
				continue
			}
			if next := w.evolveCell(view, x, y, cur); next != nil {
				g.Set(x, y, next)
				w.last.Transitions++
			}
		}
	}
	w.last.Spreads = len(w.pending)
}

// evolveCell returns the new type for the cell at (x, y), or nil when it
// stays the same.
func (w *World) evolveCell(view *grid.Grid, x, y int, cur *tiles.Type) *tiles.Type {
	cands := w.candidates[:0]
	noSpread := w.cfg.Params.SpreadScale - cur.Spread
	if noSpread < 0 {
		noSpread = 0
	}

	for _, d := range neighbourOffsets {
		nx, ny := x+d[0], y+d[1]
		n := view.At(nx, ny)
		if n == nil {
			if sampler.Chance(w.rng, cur.Spread, noSpread) {
				w.pending = append(w.pending, pendingSpread{x: nx, y: ny, tile: cur})
			}
			continue
		}
		if weight, ok := n.CloneWeight(cur.Name); ok {
			cands = addCandidate(cands, n, weight)
		}
	}
	for _, tr := range cur.Transitions {
		cands = addCandidate(cands, tr.To, tr.Weight)
	}
	w.candidates = cands

	if len(cands) == 0 {
		return nil
	}
	next, ok := sampler.Sample(w.rng, cands, w.cfg.Params.StayWeight*float64(len(cands)))
	if !ok || next == cur {
		return nil
	}
	return next
}

// addCandidate accumulates weight for t, keeping first-seen order.
func addCandidate(cands []candidate, t *tiles.Type, weight float64) []candidate {
	for i := range cands {
		if cands[i].Key == t {
			cands[i].Weight += weight
			return cands
		}
	}
	return append(cands, candidate{Key: t, Weight: weight})
}
