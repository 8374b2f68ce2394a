package core

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
)

// Grid is the game board: a fixed rows x cols array of token types.
// Cells are stored in row-major order: index = row*cols + col.
// Reads and writes are guarded so a Swap is atomic for concurrent readers;
// exclusive writing is enforced by the engine's phase, not by this lock.
type Grid struct {
	mu    sync.RWMutex
	rows  int
	cols  int
	cells []TokenType
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]TokenType, rows*cols),
	}
}

// GridFromRows builds a grid from row strings of token characters (see TokenType.Char).
// Unknown characters are rejected. Used by level files and tests.
func GridFromRows(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for r, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("match3: row %d has %d cells, want %d", r, len(line), cols)
		}
		for c, ch := range line {
			t, ok := ParseToken(string(ch))
			if !ok {
				return nil, fmt.Errorf("match3: unknown token %q at %s", ch, C(r, c))
			}
			g.cells[r*cols+c] = t
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// InBounds returns true if the coordinate is within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) boundsErr(c Coord) error {
	return &BoundsError{At: c, Rows: g.rows, Cols: g.cols}
}

// Get returns the token at the given coordinate.
// An empty cell is a valid result; only out-of-bounds access fails.
func (g *Grid) Get(c Coord) (TokenType, error) {
	if !g.InBounds(c) {
		return TokenEmpty, g.boundsErr(c)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.index(c)], nil
}

// At is Get without the error, returning TokenEmpty out of bounds.
func (g *Grid) At(c Coord) TokenType {
	t, _ := g.Get(c)
	return t
}

// Set places a token (or TokenEmpty) at the given coordinate.
func (g *Grid) Set(c Coord, t TokenType) error {
	if !g.InBounds(c) {
		return g.boundsErr(c)
	}
	g.mu.Lock()
	g.cells[g.index(c)] = t
	g.mu.Unlock()
	return nil
}

// Swap exchanges the contents of two cells in one locked step.
func (g *Grid) Swap(a, b Coord) error {
	if !g.InBounds(a) {
		return g.boundsErr(a)
	}
	if !g.InBounds(b) {
		return g.boundsErr(b)
	}
	g.mu.Lock()
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
	g.mu.Unlock()
	return nil
}

// snapshot returns a copy of the flat cell array.
func (g *Grid) snapshot() []TokenType {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]TokenType, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: g.snapshot(),
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g == other {
		return true
	}
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	a, b := g.snapshot(), other.snapshot()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsDense returns true if no cell is empty.
func (g *Grid) IsDense() bool {
	_, ok := g.FirstEmpty()
	return !ok
}

// FirstEmpty returns the first empty cell in row-major order.
func (g *Grid) FirstEmpty() (Coord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i, t := range g.cells {
		if t == TokenEmpty {
			return C(i/g.cols, i%g.cols), true
		}
	}
	return Coord{}, false
}

// Row returns a copy of one row, or nil when out of range.
func (g *Grid) Row(r int) []TokenType {
	if r < 0 || r >= g.rows {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]TokenType, g.cols)
	copy(out, g.cells[r*g.cols:(r+1)*g.cols])
	return out
}

// CountByType returns how many cells hold each token type.
func (g *Grid) CountByType() map[TokenType]int {
	counts := make(map[TokenType]int)
	for _, t := range g.snapshot() {
		if t != TokenEmpty {
			counts[t]++
		}
	}
	return counts
}

// Hash returns a hash of the grid contents for determinism checks.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	for _, t := range g.snapshot() {
		h.Write([]byte{byte(t)})
	}
	return h.Sum64()
}

// String renders the grid as rows of token characters.
func (g *Grid) String() string {
	cells := g.snapshot()
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(cells[r*g.cols+c].Char())
		}
	}
	return sb.String()
}
