// Package grid provides the growable rectangular lattice of tile references.
package grid

import "nature-ca/internal/tiles"

// Grid stores a rectangular lattice of optional tile references. A nil entry
// is an empty cell. Rows always share the same length and the lattice never
// shrinks.
type Grid struct {
	w    int
	rows [][]*tiles.Type
}

// New allocates an empty grid with the given dimensions.
func New(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{w: w, rows: make([][]*tiles.Type, h)}
	for y := range g.rows {
		g.rows[y] = make([]*tiles.Type, w)
	}
	return g
}

// Filled allocates a grid with every cell set to t.
func Filled(w, h int, t *tiles.Type) *Grid {
	g := New(w, h)
	for _, row := range g.rows {
		for x := range row {
			row[x] = t
		}
	}
	return g
}

// Width returns the row length.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// In reports whether (x, y) lies inside the current bounds.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < len(g.rows)
}

// At returns the occupant of (x, y); out-of-bounds coordinates read as empty.
func (g *Grid) At(x, y int) *tiles.Type {
	if !g.In(x, y) {
		return nil
	}
	return g.rows[y][x]
}

// Set writes the occupant of (x, y). Callers must stay within bounds.
func (g *Grid) Set(x, y int, t *tiles.Type) { g.rows[y][x] = t }

// InsertRowTop adds an empty row above row 0, shifting every row down.
func (g *Grid) InsertRowTop() {
	g.rows = append(g.rows, nil)
	copy(g.rows[1:], g.rows)
	g.rows[0] = make([]*tiles.Type, g.w)
}

// AppendRowBottom adds an empty row after the last row.
func (g *Grid) AppendRowBottom() {
	g.rows = append(g.rows, make([]*tiles.Type, g.w))
}

// InsertColumnLeft adds an empty column before column 0 of every row.
func (g *Grid) InsertColumnLeft() {
	for y, row := range g.rows {
		row = append(row, nil)
		copy(row[1:], row)
		row[0] = nil
		g.rows[y] = row
	}
	g.w++
}

// AppendColumnRight adds an empty column after the last column of every row.
func (g *Grid) AppendColumnRight() {
	for y, row := range g.rows {
		g.rows[y] = append(row, nil)
	}
	g.w++
}

// Clone returns a copy of the lattice that shares tile references.
func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, rows: make([][]*tiles.Type, len(g.rows))}
	for y, row := range g.rows {
		c.rows[y] = append([]*tiles.Type(nil), row...)
	}
	return c
}

// Occupied counts non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, row := range g.rows {
		for _, t := range row {
			if t != nil {
				n++
			}
		}
	}
	return n
}

// Count returns the number of cells holding each tile type.
func (g *Grid) Count() map[*tiles.Type]int {
	counts := make(map[*tiles.Type]int)
	for _, row := range g.rows {
		for _, t := range row {
			if t != nil {
				counts[t]++
			}
		}
	}
	return counts
}

// Cells writes the row-major tile indices (0 for empty) into dst, growing it
// as needed, and returns the result.
func (g *Grid) Cells(dst []uint8) []uint8 {
	total := g.w * len(g.rows)
	if cap(dst) < total {
		dst = make([]uint8, total)
	}
	dst = dst[:total]
	for y, row := range g.rows {
		base := y * g.w
		for x, t := range row {
			if t == nil {
				dst[base+x] = 0
				continue
			}
			dst[base+x] = t.Index
		}
	}
	return dst
}
