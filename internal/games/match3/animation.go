package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// boardView is what the renderer draws. It trails the engine while an
// animation replays the events of the last swap.
type boardView struct {
	grid     *core.Grid
	progress int
	goal     int
	percent  int
	currency int
	chain    int

	// Per-frame marks
	swapped  core.CoordSet
	flashing core.CoordSet
	fresh    core.CoordSet
	rejected bool
	shuffled bool
}

func newBoardView(e *core.Engine) boardView {
	p := e.Progress()
	return boardView{
		grid:     e.Grid(),
		progress: p.Progress,
		goal:     p.Goal,
		percent:  p.Percent,
		currency: p.Currency,
	}
}

func (v *boardView) resetMarks() {
	v.swapped = core.CoordSet{}
	v.flashing = core.CoordSet{}
	v.fresh = core.CoordSet{}
	v.rejected = false
	v.shuffled = false
}

// frame is one animation step: apply runs when the frame starts, then the
// view holds for ticks. Zero-tick frames chain into the next frame at once.
type frame struct {
	ticks int
	apply func(v *boardView)
}

// animator replays engine events as timed frames.
type animator struct {
	queue     []frame
	remaining int
}

// Busy reports whether frames are still playing. Input is ignored while busy.
func (a *animator) Busy() bool {
	return a.remaining > 0 || len(a.queue) > 0
}

func (a *animator) push(f frame) {
	a.queue = append(a.queue, f)
}

// Step advances the animation by one tick.
func (a *animator) Step(v *boardView) {
	if a.remaining > 0 {
		a.remaining--
		if a.remaining > 0 {
			return
		}
	}

	v.resetMarks()
	for len(a.queue) > 0 {
		f := a.queue[0]
		a.queue = a.queue[1:]
		f.apply(v)
		if f.ticks > 0 {
			a.remaining = f.ticks
			return
		}
	}
}

// Queue turns the events of one swap into frames. final is the engine's
// board after the swap; the last frame snaps the view to it.
func (a *animator) Queue(ac config.AnimationConfig, x, y core.Coord, events []core.Event, final *core.Grid) {
	a.push(frame{ticks: ac.SwapTicks, apply: func(v *boardView) {
		//nolint:errcheck // Engine validated the swap
		v.grid.Swap(x, y)
		v.swapped = core.NewCoordSet(x, y)
	}})

	for i := 0; i < len(events); i++ {
		switch ev := events[i].(type) {
		case core.SwapReverted:
			a.push(frame{ticks: ac.RejectTicks, apply: func(v *boardView) {
				//nolint:errcheck
				v.grid.Swap(ev.A, ev.B)
				v.swapped = core.NewCoordSet(ev.A, ev.B)
				v.rejected = true
			}})

		case core.CellsCleared:
			a.push(frame{ticks: ac.ClearTicks, apply: func(v *boardView) {
				v.flashing = core.NewCoordSet(ev.Coords...)
				v.chain = ev.Step
			}})
			a.push(frame{apply: func(v *boardView) {
				for _, c := range ev.Coords {
					//nolint:errcheck
					v.grid.Set(c, core.TokenEmpty)
				}
			}})

		case core.CellsMoved:
			// Gravity for one step is a single frame.
			moves := []core.CellsMoved{ev}
			for i+1 < len(events) {
				next, ok := events[i+1].(core.CellsMoved)
				if !ok {
					break
				}
				moves = append(moves, next)
				i++
			}
			a.push(frame{ticks: ac.FallTicks, apply: func(v *boardView) {
				for _, m := range moves {
					//nolint:errcheck
					v.grid.Set(m.To, m.Type)
					//nolint:errcheck
					v.grid.Set(m.From, core.TokenEmpty)
				}
			}})

		case core.CellsSpawned:
			spawns := []core.CellsSpawned{ev}
			for i+1 < len(events) {
				next, ok := events[i+1].(core.CellsSpawned)
				if !ok {
					break
				}
				spawns = append(spawns, next)
				i++
			}
			a.push(frame{ticks: ac.SpawnTicks, apply: func(v *boardView) {
				for _, s := range spawns {
					//nolint:errcheck
					v.grid.Set(s.At, s.Type)
					v.fresh = v.fresh.With(s.At)
				}
			}})

		case core.ProgressChanged:
			a.push(frame{apply: func(v *boardView) {
				v.progress, v.goal, v.percent = ev.Progress, ev.Goal, ev.Percent
			}})

		case core.CurrencyChanged:
			a.push(frame{apply: func(v *boardView) {
				v.currency = ev.Value
			}})

		case core.BoardShuffled:
			a.push(frame{ticks: 2 * ac.SpawnTicks, apply: func(v *boardView) {
				v.grid = final.Clone()
				v.shuffled = true
			}})
		}
	}

	a.push(frame{apply: func(v *boardView) {
		v.grid = final
	}})
}
