package core

import (
	"fmt"
	"sort"
)

// Coord addresses a cell by row and column. Row 0 is the top of the board.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent returns true if the two cells share an edge.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// less orders coordinates row-major.
func (c Coord) less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// CoordSet is an immutable set of cell coordinates with value semantics:
// copies never share members, and With returns a new set. The zero value
// is an empty set.
type CoordSet struct {
	m map[Coord]struct{}
}

// NewCoordSet returns a set holding the given coordinates.
func NewCoordSet(coords ...Coord) CoordSet {
	var s CoordSet
	for _, c := range coords {
		s.add(c)
	}
	return s
}

// With returns a new set holding the members of s plus coords.
func (s CoordSet) With(coords ...Coord) CoordSet {
	out := s.Clone()
	for _, c := range coords {
		out.add(c)
	}
	return out
}

// add inserts in place. Only for sets not yet handed out.
func (s *CoordSet) add(c Coord) {
	if s.m == nil {
		s.m = make(map[Coord]struct{})
	}
	s.m[c] = struct{}{}
}

// Contains reports whether the coordinate is in the set.
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s.m[c]
	return ok
}

// Len returns the number of coordinates.
func (s CoordSet) Len() int {
	return len(s.m)
}

// Empty reports whether the set has no coordinates.
func (s CoordSet) Empty() bool {
	return len(s.m) == 0
}

// Coords returns the coordinates sorted row-major.
func (s CoordSet) Coords() []Coord {
	out := make([]Coord, 0, len(s.m))
	for c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].less(out[j])
	})
	return out
}

// Union returns a new set with the members of both sets.
func (s CoordSet) Union(other CoordSet) CoordSet {
	out := s.Clone()
	for c := range other.m {
		out.add(c)
	}
	return out
}

// Clone returns an independent copy.
func (s CoordSet) Clone() CoordSet {
	var out CoordSet
	for c := range s.m {
		out.add(c)
	}
	return out
}

// Equal returns true if both sets hold exactly the same coordinates.
func (s CoordSet) Equal(other CoordSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for c := range s.m {
		if _, ok := other.m[c]; !ok {
			return false
		}
	}
	return true
}
