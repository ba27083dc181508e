// Package primelife implements the prime/parity automaton rule: a living cell
// survives only on a prime number of live neighbours and a dead cell is born
// on a non-zero even number of live neighbours.
package primelife

import "prime-ca/internal/core"

// Name identifies the automaton.
const Name = "primelife"

// NeighborSum counts the living cells among the eight toroidally wrapped
// Moore neighbours of (row, col).
func NeighborSum(g *core.Grid, row, col int) int {
	size := g.Size()
	w, h := size.W, size.H
	cells := g.Cells()
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		ny := ((row+dy)%h + h) % h
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((col+dx)%w + w) % w
			if cells[ny*w+nx] == core.Alive {
				neighbors++
			}
		}
	}
	return neighbors
}

// SumRows fills the neighbour counts of every cell in rr. It only reads the
// state buffer and only writes the count entries belonging to rr.
func SumRows(g *core.Grid, rr core.RowRange) {
	if rr.Empty() {
		return
	}
	w := g.Size().W
	_, counts := g.Rows(rr)
	for y := rr.Start; y < rr.End; y++ {
		base := (y - rr.Start) * w
		for x := 0; x < w; x++ {
			counts[base+x] = NeighborSum(g, y, x)
		}
	}
}

// Next returns the state a cell moves to given its live-neighbour count.
func Next(c core.Cell, neighbors int) core.Cell {
	if c == core.Alive {
		if core.IsPrime(neighbors) {
			return core.Alive
		}
		return core.Dead
	}
	if neighbors != 0 && neighbors%2 == 0 {
		return core.Alive
	}
	return core.Dead
}

// TransitionRows applies the rule in place to every cell in rr. The counts
// for the whole grid must already be computed for this generation.
func TransitionRows(g *core.Grid, rr core.RowRange) {
	if rr.Empty() {
		return
	}
	state, counts := g.Rows(rr)
	for i, c := range state {
		state[i] = Next(c, counts[i])
	}
}

// Generation advances g by one generation on the calling goroutine.
func Generation(g *core.Grid) {
	all := core.RowRange{Start: 0, End: g.Size().H}
	SumRows(g, all)
	TransitionRows(g, all)
}
