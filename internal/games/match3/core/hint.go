package core

// Move is a legal swap between two adjacent cells.
type Move struct {
	A, B    Coord
	Cleared int // Cells the swap would clear in its first step
}

// FindMoves returns every adjacent swap that would create at least one run,
// ordered row-major by A with right swaps before down swaps.
// The grid is not modified.
func FindMoves(g *Grid, minRun int) []Move {
	work := g.Clone()
	var moves []Move
	for r := 0; r < work.Rows(); r++ {
		for c := 0; c < work.Cols(); c++ {
			a := C(r, c)
			for _, d := range []Dir{DirRight, DirDown} {
				b := a.Step(d)
				if !work.InBounds(b) || work.At(a) == work.At(b) {
					continue
				}
				//nolint:errcheck // Both cells checked above
				work.Swap(a, b)
				if det := Detect(work, minRun); !det.Empty() {
					moves = append(moves, Move{A: a, B: b, Cleared: det.Cleared.Len()})
				}
				//nolint:errcheck
				work.Swap(a, b)
			}
		}
	}
	return moves
}

// BestMove returns the legal move clearing the most cells, preferring the
// first one found on ties.
func BestMove(g *Grid, minRun int) (Move, bool) {
	moves := FindMoves(g, minRun)
	if len(moves) == 0 {
		return Move{}, false
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Cleared > best.Cleared {
			best = m
		}
	}
	return best, true
}
