package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// coordJSON is a board position on the wire.
type coordJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func toCoord(c core.Coord) coordJSON {
	return coordJSON{Row: c.Row, Col: c.Col}
}

func (c coordJSON) coord() core.Coord {
	return core.C(c.Row, c.Col)
}

// cellJSON is a position with the token that occupies it.
type cellJSON struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Token string `json:"token"`
}

// sessionJSON is the public view of a play session.
type sessionJSON struct {
	ID        string   `json:"id"`
	GameID    string   `json:"gameId"`
	Level     int      `json:"level"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	Board     []string `json:"board"` // One string per row, see tokens
	Progress  int      `json:"progress"`
	Goal      int      `json:"goal"`
	Percent   int      `json:"percent"`
	Currency  int      `json:"currency"`
	Moves     int      `json:"moves"`
	BestChain int      `json:"bestChain"`
	Phase     string   `json:"phase"`
	Finished  bool     `json:"finished"`
}

// moveJSON is a legal swap.
type moveJSON struct {
	A       coordJSON `json:"a"`
	B       coordJSON `json:"b"`
	Cleared int       `json:"cleared"`
}

func toMove(m core.Move) moveJSON {
	return moveJSON{A: toCoord(m.A), B: toCoord(m.B), Cleared: m.Cleared}
}

// eventJSON flattens the engine events into one tagged shape.
type eventJSON struct {
	Type     string     `json:"type"`
	Step     int        `json:"step,omitempty"`
	Cells    []cellJSON `json:"cells,omitempty"`
	From     *coordJSON `json:"from,omitempty"`
	To       *coordJSON `json:"to,omitempty"`
	Token    string     `json:"token,omitempty"`
	Progress int        `json:"progress,omitempty"`
	Goal     int        `json:"goal,omitempty"`
	Percent  int        `json:"percent,omitempty"`
	Currency int        `json:"currency,omitempty"`
	Gained   int        `json:"gained,omitempty"`
	Outcome  string     `json:"outcome,omitempty"`
	Steps    int        `json:"steps,omitempty"`
}

func toEvent(ev core.Event) eventJSON {
	switch e := ev.(type) {
	case core.SwapReverted:
		a, b := toCoord(e.A), toCoord(e.B)
		return eventJSON{Type: "swap_rejected", From: &a, To: &b}

	case core.CellsCleared:
		cells := make([]cellJSON, len(e.Coords))
		for i, c := range e.Coords {
			cells[i] = cellJSON{Row: c.Row, Col: c.Col, Token: e.Types[i].String()}
		}
		return eventJSON{Type: "cells_cleared", Step: e.Step, Cells: cells}

	case core.CellsMoved:
		from, to := toCoord(e.From), toCoord(e.To)
		return eventJSON{Type: "cells_moved", From: &from, To: &to, Token: e.Type.String()}

	case core.CellsSpawned:
		at := toCoord(e.At)
		return eventJSON{Type: "cells_spawned", To: &at, Token: e.Type.String()}

	case core.ProgressChanged:
		return eventJSON{Type: "progress_changed", Progress: e.Progress, Goal: e.Goal, Percent: e.Percent}

	case core.CurrencyChanged:
		return eventJSON{Type: "currency_changed", Currency: e.Value, Gained: e.Gained}

	case core.GoalReached:
		return eventJSON{Type: "goal_reached", Currency: e.Currency}

	case core.CascadeSettled:
		return eventJSON{Type: "cascade_settled", Outcome: e.Outcome.String(), Steps: e.Steps}

	case core.BoardShuffled:
		return eventJSON{Type: "board_shuffled"}

	default:
		return eventJSON{Type: "unknown"}
	}
}

func toEvents(events []core.Event) []eventJSON {
	out := make([]eventJSON, len(events))
	for i, ev := range events {
		out[i] = toEvent(ev)
	}
	return out
}

func boardRows(g *core.Grid) []string {
	if g.Rows() == 0 {
		return []string{}
	}
	return strings.Split(g.String(), "\n")
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorJSON is the body of every error response.
type errorJSON struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorJSON{Error: code, Detail: detail})
}
