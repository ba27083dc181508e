package core

import "fmt"

// Cell is the state of a single grid position.
type Cell uint8

const (
	// Dead marks an empty cell.
	Dead Cell = 0
	// Alive marks a living cell.
	Alive Cell = 1
)

// String returns a readable name for the cell state.
func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

// Grid stores the cell states and the per-cell neighbour counts of a toroidal
// grid in row-major order. Both buffers always hold rows*cols entries.
type Grid struct {
	rows, cols int
	state      []Cell
	counts     []int
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		state:  make([]Cell, rows*cols),
		counts: make([]int, rows*cols),
	}
}

// FromCells builds a grid from a row-major buffer of exactly rows*cols cells.
// The buffer is copied.
func FromCells(rows, cols int, cells []Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("grid %dx%d needs %d cells, got %d", rows, cols, rows*cols, len(cells))
	}
	g := NewGrid(rows, cols)
	copy(g.state, cells)
	return g, nil
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.cols, H: g.rows} }

// Cells exposes the state buffer so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.state }

// Counts exposes the neighbour-count buffer.
func (g *Grid) Counts() []int { return g.counts }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(row, col int) (int, int) {
	row = (row%g.rows + g.rows) % g.rows
	col = (col%g.cols + g.cols) % g.cols
	return row, col
}

// Index returns the linear buffer index for (row, col) after wrapping.
func (g *Grid) Index(row, col int) int {
	row, col = g.Wrap(row, col)
	return row*g.cols + col
}

// At returns the state of the cell at (row, col).
func (g *Grid) At(row, col int) Cell { return g.state[g.Index(row, col)] }

// Set stores the state of the cell at (row, col).
func (g *Grid) Set(row, col int, c Cell) { g.state[g.Index(row, col)] = c }

// Count returns the stored neighbour count of the cell at (row, col).
func (g *Grid) Count(row, col int) int { return g.counts[g.Index(row, col)] }

// SetCount stores the neighbour count of the cell at (row, col).
func (g *Grid) SetCount(row, col, n int) { g.counts[g.Index(row, col)] = n }

// Rows returns the state and count sub-slices covering the rows of rr. The
// slices of two disjoint ranges never overlap, which is what lets workers
// write without locking.
func (g *Grid) Rows(rr RowRange) ([]Cell, []int) {
	lo, hi := rr.Start*g.cols, rr.End*g.cols
	return g.state[lo:hi:hi], g.counts[lo:hi:hi]
}

// Population returns the number of living cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.state {
		if c == Alive {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		state:  append([]Cell(nil), g.state...),
		counts: append([]int(nil), g.counts...),
	}
}

// Equal reports whether both grids have the same dimensions and cell states.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.state {
		if g.state[i] != o.state[i] {
			return false
		}
	}
	return true
}

// Clear kills every cell and zeroes the counts.
func (g *Grid) Clear() {
	for i := range g.state {
		g.state[i] = Dead
		g.counts[i] = 0
	}
}
