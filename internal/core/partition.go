package core

import "fmt"

// RowRange is the half-open row interval [Start, End).
type RowRange struct {
	Start, End int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int { return r.End - r.Start }

// Empty reports whether the range holds no rows.
func (r RowRange) Empty() bool { return r.End <= r.Start }

func (r RowRange) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// Partition splits [0, rows) into workers contiguous ranges that cover every
// row exactly once. The first workers-1 ranges get rows/workers rows each and
// the last range takes the remainder. With fewer rows than workers the first
// rows workers get a single row and the others get empty ranges.
func Partition(rows, workers int) []RowRange {
	if workers < 1 {
		workers = 1
	}
	if rows < 0 {
		rows = 0
	}
	ranges := make([]RowRange, workers)
	if rows < workers {
		for i := range ranges {
			start := min(i, rows)
			end := min(i+1, rows)
			ranges[i] = RowRange{Start: start, End: end}
		}
		return ranges
	}
	per := rows / workers
	for i := 0; i < workers-1; i++ {
		ranges[i] = RowRange{Start: i * per, End: (i + 1) * per}
	}
	ranges[workers-1] = RowRange{Start: (workers - 1) * per, End: rows}
	return ranges
}
