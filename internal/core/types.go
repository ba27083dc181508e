package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// View is a read-only window onto a grid.
type View interface {
	Size() Size
	At(row, col int) Cell
	Count(row, col int) int
	Population() int
}

var _ View = (*Grid)(nil)

// Sim defines the minimal contract a steppable automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Generation() int
	Reset(seed int64)
	Step() error
	Cells() []Cell
}
