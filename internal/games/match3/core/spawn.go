package core

import "fmt"

// Rand is the random source the spawn policy draws from.
// *math/rand.Rand satisfies it; tests can plug in a scripted sequence.
type Rand interface {
	Intn(n int) int
}

// Scan directions whose neighbours are already placed when filling.
var (
	initialFillPlaced = []Dir{DirLeft, DirUp}   // Row-major, top to bottom
	refillPlaced      = []Dir{DirLeft, DirDown} // Per column, bottom to top
)

// SpawnPolicy produces random tokens that never complete a run with the
// neighbours already placed in the fill order.
type SpawnPolicy struct {
	tokens      []TokenType
	rng         Rand
	minRun      int
	maxAttempts int
}

// NewSpawnPolicy creates a policy drawing uniformly from tokens.
func NewSpawnPolicy(tokens []TokenType, rng Rand, minRun, maxAttempts int) *SpawnPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SpawnPolicy{
		tokens:      append([]TokenType(nil), tokens...),
		rng:         rng,
		minRun:      minRun,
		maxAttempts: maxAttempts,
	}
}

// Next draws a token for the cell at, resampling while the candidate would
// complete a run with the minRun-1 tokens behind it in any placed direction.
// Gives up with an InvariantViolation once the resample cap is exceeded.
func (p *SpawnPolicy) Next(g *Grid, at Coord, placed ...Dir) (TokenType, error) {
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		t := p.tokens[p.rng.Intn(len(p.tokens))]
		if !p.completesRun(g, at, t, placed) {
			return t, nil
		}
	}
	return TokenEmpty, &InvariantViolation{
		Op:     "spawn",
		At:     at,
		Detail: fmt.Sprintf("no non-matching token after %d draws from palette of %d", p.maxAttempts, len(p.tokens)),
	}
}

// completesRun reports whether t at the cell would line up with minRun-1
// identical tokens in any of the given directions.
func (p *SpawnPolicy) completesRun(g *Grid, at Coord, t TokenType, dirs []Dir) bool {
	need := p.minRun - 1
	for _, d := range dirs {
		c := at
		same := 0
		for same < need {
			c = c.Step(d)
			if g.At(c) != t {
				break
			}
			same++
		}
		if same == need {
			return true
		}
	}
	return false
}

// Fill populates every cell row-major with no immediate matches.
func (p *SpawnPolicy) Fill(g *Grid) error {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			at := C(r, c)
			if err := g.Set(at, TokenEmpty); err != nil {
				return err
			}
		}
	}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			at := C(r, c)
			t, err := p.Next(g, at, initialFillPlaced...)
			if err != nil {
				return err
			}
			if err := g.Set(at, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// Refill fills every empty cell column by column, bottom to top, and returns
// the spawned cells in placement order.
func (p *SpawnPolicy) Refill(g *Grid) ([]CellsSpawned, error) {
	var spawned []CellsSpawned
	for c := 0; c < g.Cols(); c++ {
		for r := g.Rows() - 1; r >= 0; r-- {
			at := C(r, c)
			if g.At(at) != TokenEmpty {
				continue
			}
			t, err := p.Next(g, at, refillPlaced...)
			if err != nil {
				return spawned, err
			}
			if err := g.Set(at, t); err != nil {
				return spawned, err
			}
			spawned = append(spawned, CellsSpawned{At: at, Type: t})
		}
	}
	return spawned, nil
}
