package primelife

import (
	"slices"
	"testing"

	"prime-ca/internal/core"
)

func TestNextRule(t *testing.T) {
	for s := 0; s <= 8; s++ {
		alive := Next(core.Alive, s)
		if want := core.IsPrime(s); (alive == core.Alive) != want {
			t.Errorf("alive cell with %d neighbours -> %v", s, alive)
		}
		born := Next(core.Dead, s)
		if want := s != 0 && s%2 == 0; (born == core.Alive) != want {
			t.Errorf("dead cell with %d neighbours -> %v", s, born)
		}
	}
}

func TestNextRuleTable(t *testing.T) {
	cases := []struct {
		cell core.Cell
		s    int
		want core.Cell
	}{
		{core.Alive, 2, core.Alive},
		{core.Alive, 3, core.Alive},
		{core.Alive, 5, core.Alive},
		{core.Alive, 7, core.Alive},
		{core.Alive, 0, core.Dead},
		{core.Alive, 1, core.Dead},
		{core.Alive, 4, core.Dead},
		{core.Alive, 8, core.Dead},
		{core.Dead, 0, core.Dead},
		{core.Dead, 1, core.Dead},
		{core.Dead, 3, core.Dead},
		{core.Dead, 2, core.Alive},
		{core.Dead, 4, core.Alive},
		{core.Dead, 6, core.Alive},
		{core.Dead, 8, core.Alive},
	}
	for _, tc := range cases {
		if got := Next(tc.cell, tc.s); got != tc.want {
			t.Errorf("Next(%v,%d)=%v, want %v", tc.cell, tc.s, got, tc.want)
		}
	}
}

func TestNeighborSumWrapsCorners(t *testing.T) {
	g := core.NewGrid(4, 4)
	g.Set(3, 3, core.Alive)
	g.Set(0, 3, core.Alive)
	g.Set(3, 0, core.Alive)
	if got := NeighborSum(g, 0, 0); got != 3 {
		t.Fatalf("corner sum=%d, want 3", got)
	}
	if got := NeighborSum(g, 3, 3); got != 2 {
		t.Fatalf("sum at (3,3)=%d, want 2 (self excluded)", got)
	}
}

func TestSumRowsDoesNotMutateState(t *testing.T) {
	g := core.NewGrid(6, 7)
	for i := range g.Cells() {
		if i%3 == 0 || i%5 == 0 {
			g.Cells()[i] = core.Alive
		}
	}
	before := slices.Clone(g.Cells())
	SumRows(g, core.RowRange{Start: 0, End: 6})
	if !slices.Equal(before, g.Cells()) {
		t.Fatal("neighbour pass mutated the state buffer")
	}
	for r := 0; r < 6; r++ {
		for c := 0; c < 7; c++ {
			if g.Count(r, c) != NeighborSum(g, r, c) {
				t.Fatalf("count at (%d,%d) mismatch", r, c)
			}
		}
	}
}

func TestSumRowsOnlyTouchesOwnRange(t *testing.T) {
	g := core.NewGrid(4, 4)
	for i := range g.Cells() {
		g.Cells()[i] = core.Alive
	}
	SumRows(g, core.RowRange{Start: 1, End: 2})
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			want := 0
			if r == 1 {
				want = 8
			}
			if g.Count(r, c) != want {
				t.Fatalf("count at (%d,%d)=%d, want %d", r, c, g.Count(r, c), want)
			}
		}
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	g := core.NewGrid(3, 3)
	for i := 0; i < 10; i++ {
		Generation(g)
	}
	if g.Population() != 0 {
		t.Fatalf("population=%d, want 0", g.Population())
	}
}

func TestSingleCellDies(t *testing.T) {
	g := core.NewGrid(5, 5)
	g.Set(2, 2, core.Alive)
	Generation(g)
	if g.Population() != 0 {
		t.Fatalf("population=%d, want 0", g.Population())
	}
	if g.Count(2, 2) != 0 || g.Count(1, 1) != 1 {
		t.Fatalf("unexpected counts: centre=%d diagonal=%d", g.Count(2, 2), g.Count(1, 1))
	}
}

func TestFullTwoRowGridDies(t *testing.T) {
	g := core.NewGrid(2, 8)
	for i := range g.Cells() {
		g.Cells()[i] = core.Alive
	}
	Generation(g)
	for r := 0; r < 2; r++ {
		for c := 0; c < 8; c++ {
			if g.Count(r, c) != 8 {
				t.Fatalf("count at (%d,%d)=%d, want 8", r, c, g.Count(r, c))
			}
		}
	}
	if g.Population() != 0 {
		t.Fatalf("population=%d, want 0", g.Population())
	}
}

func TestPairOnRowBirthsNeighbours(t *testing.T) {
	g := core.NewGrid(5, 5)
	g.Set(2, 1, core.Alive)
	g.Set(2, 3, core.Alive)
	Generation(g)

	// (2,2) and the cells directly above and below it see both live cells.
	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			alive := g.At(r, c) == core.Alive
			if alive != expects[[2]int{r, c}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", r, c, alive, expects[[2]int{r, c}])
			}
		}
	}
}
