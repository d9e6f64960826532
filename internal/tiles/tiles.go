// Package tiles defines the immutable catalog of tile types that populate the
// lattice.
package tiles

import "image/color"

// MaxTypes is the largest catalog that fits the byte-sized cell snapshot,
// index 0 being reserved for empty cells.
const MaxTypes = 255

// Weight is one entry of an ordered name-to-weight mapping.
type Weight struct {
	Name  string
	Value float64
}

// Weights is a name-to-weight mapping that keeps declaration order.
type Weights []Weight

// Get returns the weight recorded for name.
func (ws Weights) Get(name string) (float64, bool) {
	for _, w := range ws {
		if w.Name == name {
			return w.Value, true
		}
	}
	return 0, false
}

// Transition is an intrinsic candidate resolved to its target type.
type Transition struct {
	To     *Type
	Weight float64
}

// Type is a named tile category. Cells share pointers to catalog entries.
type Type struct {
	Name  string
	Index uint8
	Image string
	Color color.RGBA
	// HasColor is false when the catalog declared no colour.
	HasColor bool

	Spread      float64
	Clone       Weights
	Transitions []Transition
}

// CloneWeight reports the weight with which this type converts a neighbouring
// cell of the named type into itself.
func (t *Type) CloneWeight(target string) (float64, bool) {
	return t.Clone.Get(target)
}

// String returns the tile name.
func (t *Type) String() string {
	if t == nil {
		return "<empty>"
	}
	return t.Name
}

// Catalog is the set of tile types in declaration order.
type Catalog struct {
	types  []*Type
	byName map[string]*Type
}

// Lookup finds a tile type by name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// MustLookup is like Lookup but panics for unknown names.
func (c *Catalog) MustLookup(name string) *Type {
	t, ok := c.byName[name]
	if !ok {
		panic("tiles: unknown tile " + name)
	}
	return t
}

// ByIndex returns the type with the given 1-based index, or nil.
func (c *Catalog) ByIndex(i uint8) *Type {
	if i == 0 || int(i) > len(c.types) {
		return nil
	}
	return c.types[i-1]
}

// Types returns the tile types in declaration order.
func (c *Catalog) Types() []*Type { return c.types }

// Len reports the number of tile types.
func (c *Catalog) Len() int { return len(c.types) }
