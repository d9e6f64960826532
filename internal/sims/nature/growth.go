package nature

import "nature-ca/internal/tiles"

// pendingSpread is a tile propagating into an empty cell that may lie one
// step outside the lattice.
type pendingSpread struct {
	x, y int
	tile *tiles.Type
}

// applySpreads writes every queued spread in sweep order, growing the lattice
// by one row or column whenever a target sits just outside it. Inserting at
// the top or left shifts every later entry along with the lattice, so all
// entries aimed at the same missing edge land in the one new row or column.
//
// This departs from the original program, which bumped only the entries still
// at -1 and so left in-bounds entries one row or column short of their target,
// overwriting the cell they started next to.
func (w *World) applySpreads(pending []pendingSpread) {
	g := w.grid
	for i := range pending {
		e := &pending[i]

		switch {
		case e.y < 0:
			g.InsertRowTop()
			for j := i; j < len(pending); j++ {
				pending[j].y++
			}
			w.last.RowsTop++
		case e.y == g.Height():
			g.AppendRowBottom()
			w.last.RowsBottom++
		}

		switch {
		case e.x < 0:
			g.InsertColumnLeft()
			for j := i; j < len(pending); j++ {
				pending[j].x++
			}
			w.last.ColsLeft++
		case e.x == g.Width():
			g.AppendColumnRight()
			w.last.ColsRight++
		}

		g.Set(e.x, e.y, e.tile)
	}
}
