// Package gridio reads and writes grids in the two-symbol text format: one
// row per line, one symbol per cell.
package gridio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"prime-ca/internal/core"
)

// ErrMalformed is wrapped by every error caused by bad grid input.
var ErrMalformed = errors.New("malformed grid")

// Symbols maps cell states to characters.
type Symbols struct {
	Alive byte
	Dead  byte
}

// DefaultSymbols returns the standard 'O' / '.' alphabet.
func DefaultSymbols() Symbols { return Symbols{Alive: 'O', Dead: '.'} }

// Validate reports whether the alphabet can be round-tripped.
func (s Symbols) Validate() error {
	if s.Alive == s.Dead {
		return fmt.Errorf("alive and dead symbols are both %q", s.Alive)
	}
	for _, b := range []byte{s.Alive, s.Dead} {
		if b == '\n' || b == '\r' {
			return fmt.Errorf("symbol %q is a line separator", b)
		}
	}
	return nil
}

func (s Symbols) byteFor(c core.Cell) byte {
	if c == core.Alive {
		return s.Alive
	}
	return s.Dead
}

// ParseError locates a problem in the input.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap lets callers match ErrMalformed.
func (e *ParseError) Unwrap() error { return ErrMalformed }

// Parse reads a grid from r. Every row must have the same length and contain
// only the two symbols. A missing final newline, CRLF endings and blank lines
// after the last row are accepted.
func Parse(r io.Reader, sym Symbols) (*core.Grid, error) {
	if err := sym.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	br := bufio.NewReader(r)
	var cells []core.Cell
	rows, cols := 0, -1
	blank := 0
	for line := 1; ; line++ {
		raw, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		eof := err != nil
		if eof && len(raw) == 0 {
			break
		}
		row := bytes.TrimSuffix(bytes.TrimSuffix(raw, []byte{'\n'}), []byte{'\r'})
		if len(row) == 0 {
			if blank == 0 {
				blank = line
			}
			if eof {
				break
			}
			continue
		}
		if blank != 0 {
			return nil, &ParseError{Line: blank, Msg: "empty row"}
		}
		if cols < 0 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("row has %d cells, expected %d", len(row), cols)}
		}
		for i, b := range row {
			switch b {
			case sym.Alive:
				cells = append(cells, core.Alive)
			case sym.Dead:
				cells = append(cells, core.Dead)
			default:
				return nil, &ParseError{Line: line, Column: i + 1, Msg: fmt.Sprintf("unexpected symbol %q", b)}
			}
		}
		rows++
		if eof {
			break
		}
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}

	g, err := core.FromCells(rows, cols, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return g, nil
}

// Load parses the grid stored at path. The path "-" reads stdin.
func Load(path string, sym Symbols) (*core.Grid, error) {
	if path == "-" {
		return Parse(os.Stdin, sym)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()

	g, err := Parse(f, sym)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write renders v to w, one row per line.
func Write(w io.Writer, v core.View, sym Symbols) error {
	size := v.Size()
	bw := bufio.NewWriter(w)
	row := make([]byte, size.W+1)
	row[size.W] = '\n'
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			row[x] = sym.byteFor(v.At(y, x))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Format returns the text rendering of v.
func Format(v core.View, sym Symbols) string {
	var buf bytes.Buffer
	_ = Write(&buf, v, sym)
	return buf.String()
}

// Save writes v to path through a temporary file in the same directory, so
// a failed write never leaves a partial grid behind. An existing file keeps
// its permissions. The path "-" writes stdout.
func Save(path string, v core.View, sym Symbols) (err error) {
	if path == "-" {
		return Write(os.Stdout, v, sym)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = Write(tmp, v, sym); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
