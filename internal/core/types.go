package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract the presentation layer drives. Size and Cells may
// change between steps for simulations whose lattice grows.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Cells returns a row-major snapshot of Size().W*Size().H values. The
	// slice is only valid until the next Step or Reset.
	Cells() []uint8
}
