package core

// Axis is the orientation of a run.
type Axis uint8

const (
	AxisRow Axis = iota // Horizontal, left to right
	AxisCol             // Vertical, top to bottom
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	if a == AxisCol {
		return "col"
	}
	return "row"
}

// Run is a maximal line of identical tokens of at least the minimum length.
type Run struct {
	Token  TokenType
	Axis   Axis
	Start  Coord // Leftmost (row runs) or topmost (column runs) cell
	Length int
}

// Cells returns the coordinates covered by the run.
func (r Run) Cells() []Coord {
	d := DirRight
	if r.Axis == AxisCol {
		d = DirDown
	}
	out := make([]Coord, 0, r.Length)
	c := r.Start
	for i := 0; i < r.Length; i++ {
		out = append(out, c)
		c = c.Step(d)
	}
	return out
}

// Detection is the result of one scan of the grid.
type Detection struct {
	Cleared CoordSet // Union of every run's cells
	Runs    []Run    // Row runs first (top to bottom), then column runs (left to right)
}

// Empty reports whether no run was found.
func (d Detection) Empty() bool {
	return d.Cleared.Empty()
}

// Detect scans every row and column and returns all runs of at least minRun
// identical tokens. Empty cells never take part in a run.
// The result depends only on grid contents; scanning twice yields equal sets.
func Detect(g *Grid, minRun int) Detection {
	cells := g.snapshot()
	rows, cols := g.Rows(), g.Cols()
	at := func(r, c int) TokenType { return cells[r*cols+c] }

	var det Detection

	for r := 0; r < rows; r++ {
		det.Runs = scanLine(det.Runs, cols, minRun, func(i int) TokenType { return at(r, i) },
			func(start, length int, t TokenType) Run {
				return Run{Token: t, Axis: AxisRow, Start: C(r, start), Length: length}
			})
	}
	for c := 0; c < cols; c++ {
		det.Runs = scanLine(det.Runs, rows, minRun, func(i int) TokenType { return at(i, c) },
			func(start, length int, t TokenType) Run {
				return Run{Token: t, Axis: AxisCol, Start: C(start, c), Length: length}
			})
	}

	for _, run := range det.Runs {
		for _, c := range run.Cells() {
			det.Cleared.add(c)
		}
	}
	return det
}

// scanLine walks one line keeping a run-length counter that resets whenever
// the token changes, and records spans that reach minRun at a boundary.
func scanLine(runs []Run, n, minRun int, get func(int) TokenType, mk func(start, length int, t TokenType) Run) []Run {
	if n == 0 {
		return runs
	}
	count := 1
	for i := 1; i <= n; i++ {
		if i < n && get(i) == get(i-1) {
			count++
			continue
		}
		if t := get(i - 1); t != TokenEmpty && count >= minRun {
			runs = append(runs, mk(i-count, count, t))
		}
		count = 1
	}
	return runs
}

// TallyCleared counts cleared cells by token type. Cells in both a row and a
// column run are counted once.
func TallyCleared(g *Grid, cleared CoordSet) map[TokenType]int {
	counts := make(map[TokenType]int)
	for _, c := range cleared.Coords() {
		if t := g.At(c); t != TokenEmpty {
			counts[t]++
		}
	}
	return counts
}
