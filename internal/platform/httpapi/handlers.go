package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Game IDs under which API sessions are stored, shared with the terminal UI.
const (
	campaignID = "match3"
	endlessID  = "match3_endless"
)

type levelJSON struct {
	Level       int    `json:"level"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Goal        int    `json:"goal"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Layout      bool   `json:"layout"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelJSON, len(s.levels))
	for i, lvl := range s.levels {
		lj := levelJSON{
			Level:       i + 1,
			ID:          lvl.ID,
			Name:        lvl.Name,
			Description: lvl.Description,
			Layout:      lvl.Layout != nil,
		}
		if cfg, err := match3.BoardConfig(s.opts.Settings, s.opts.Preset, &lvl, 0); err == nil {
			lj.Goal, lj.Rows, lj.Cols = cfg.Goal, cfg.Rows, cfg.Cols
		}
		out[i] = lj
	}
	writeJSON(w, http.StatusOK, out)
}

type createReq struct {
	Level int    `json:"level"` // 1-based campaign level; 0 deals an endless board
	Seed  *int64 `json:"seed,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.Level < 0 || req.Level > len(s.levels) {
		writeError(w, http.StatusBadRequest, "bad_level",
			"level must be between 0 and "+strconv.Itoa(len(s.levels)))
		return
	}

	seed := s.opts.Seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	gameID := endlessID
	var lvl *levels.Level
	if req.Level > 0 {
		gameID = campaignID
		lvl = &s.levels[req.Level-1]
	}

	engine, err := match3.NewEngine(s.opts.Settings, s.opts.Preset, lvl, 0, rand.New(rand.NewSource(seed)))
	if err != nil {
		s.logger.Error("cannot deal board", "level", req.Level, "error", err)
		writeError(w, http.StatusInternalServerError, "deal_failed", err.Error())
		return
	}

	sess := &playSession{
		id:     uuid.NewString(),
		gameID: gameID,
		level:  req.Level,
		engine: engine,
	}
	evicted, err := s.sessions.add(sess)
	for _, old := range evicted {
		s.record(old)
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "too_many_sessions", err.Error())
		return
	}

	s.logger.Info("session created", "session", sess.id, "game", gameID, "level", req.Level, "seed", seed)
	w.Header().Set("Location", "/sessions/"+sess.id)
	writeJSON(w, http.StatusCreated, sess.view())
}

// session loads the {id} session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*playSession, bool) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", chi.URLParam(r, "id"))
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.remove(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", chi.URLParam(r, "id"))
		return
	}
	s.record(sess)
	w.WriteHeader(http.StatusNoContent)
}

type swapReq struct {
	A coordJSON `json:"a"`
	B coordJSON `json:"b"`
}

type swapRes struct {
	Outcome string      `json:"outcome"`
	Events  []eventJSON `json:"events"`
	Session sessionJSON `json:"session"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	// A swap in flight on this board drops the request, like the engine does.
	if !sess.mu.TryLock() {
		writeError(w, http.StatusConflict, "busy", core.ErrBusy.Error())
		return
	}
	defer sess.mu.Unlock()

	outcome, err := sess.engine.RequestSwap(req.A.coord(), req.B.coord())
	events := sess.engine.DrainEvents()

	var invalid *core.InvalidSwapError
	var violation *core.InvariantViolation
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, "invalid_swap", invalid.Reason)
		return
	case errors.Is(err, core.ErrBusy):
		writeError(w, http.StatusConflict, "busy", err.Error())
		return
	case errors.Is(err, core.ErrFinished):
		writeError(w, http.StatusConflict, "finished", err.Error())
		return
	case errors.As(err, &violation):
		s.logger.Error("session failed", "session", sess.id, "error", err)
		s.recordLocked(sess)
		writeError(w, http.StatusInternalServerError, "invariant_violation", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "swap_failed", err.Error())
		return
	}

	if sess.engine.Finished() {
		s.logger.Info("goal reached", "session", sess.id, "moves", sess.engine.Moves())
		s.recordLocked(sess)
	}

	writeJSON(w, http.StatusOK, swapRes{
		Outcome: outcome.String(),
		Events:  toEvents(events),
		Session: sess.view(),
	})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	grid := sess.engine.Grid()
	minRun := sess.engine.Config().MinRun
	sess.mu.Unlock()

	moves := core.FindMoves(grid, minRun)
	out := make([]moveJSON, len(moves))
	for i, m := range moves {
		out[i] = toMove(m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": out})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	mv, found := sess.engine.Hint()
	sess.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "no_moves", "")
		return
	}
	writeJSON(w, http.StatusOK, toMove(mv))
}

type scoresRes struct {
	GameID string             `json:"gameId"`
	Top    []scoreJSON        `json:"top"`
	Recent []storedJSON       `json:"recent"`
	Stats  *storage.GameStats `json:"stats,omitempty"`
}

type scoreJSON struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

type storedJSON struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Level     int       `json:"level"`
	Progress  int       `json:"progress"`
	Goal      int       `json:"goal"`
	Currency  int       `json:"currency"`
	Moves     int       `json:"moves"`
	BestChain int       `json:"bestChain"`
	Won       bool      `json:"won"`
	Duration  int       `json:"durationSecs"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", "")
		return
	}
	gameID := chi.URLParam(r, "gameId")
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", v)
			return
		}
		limit = min(n, 100)
	}

	top, err := s.opts.Store.TopScores(gameID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	recent, err := s.opts.Store.RecentSessions(gameID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	stats, err := s.opts.Store.GetGameStats(gameID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	res := scoresRes{
		GameID: gameID,
		Top:    make([]scoreJSON, len(top)),
		Recent: make([]storedJSON, len(recent)),
		Stats:  stats,
	}
	for i, e := range top {
		res.Top[i] = scoreJSON{Score: e.Score, CreatedAt: e.CreatedAt}
	}
	for i, e := range recent {
		res.Recent[i] = toStored(e)
	}
	writeJSON(w, http.StatusOK, res)
}

func toStored(e storage.Session) storedJSON {
	return storedJSON{
		ID:        e.SessionID,
		GameID:    e.GameID,
		Level:     e.Level,
		Progress:  e.Progress,
		Goal:      e.Goal,
		Currency:  e.Currency,
		Moves:     e.Moves,
		BestChain: e.BestChain,
		Won:       e.Won,
		Duration:  e.Duration,
		CreatedAt: e.CreatedAt,
	}
}

// handleResult returns the stored summary of a board that has left memory.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", "")
		return
	}
	id := chi.URLParam(r, "id")
	sess, err := s.opts.Store.SessionByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "result_not_found", id)
		return
	}
	writeJSON(w, http.StatusOK, toStored(*sess))
}

// record locks sess and writes its result.
func (s *Server) record(sess *playSession) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.recordLocked(sess)
}

// recordLocked writes the score and session summary once. Boards without an
// accepted swap are not stored. The caller holds sess.mu.
func (s *Server) recordLocked(sess *playSession) {
	if sess.recorded || s.opts.Store == nil {
		return
	}
	sess.recorded = true
	if sess.engine.Moves() == 0 {
		return
	}

	p := sess.engine.Progress()
	if p.Progress > 0 {
		if _, err := s.opts.Store.SaveScore(sess.gameID, p.Progress); err != nil {
			s.logger.Warn("could not save score", "session", sess.id, "error", err)
		}
	}
	_, err := s.opts.Store.SaveSession(storage.Session{
		SessionID: sess.id,
		GameID:    sess.gameID,
		Level:     sess.level,
		Progress:  p.Progress,
		Goal:      p.Goal,
		Currency:  p.Currency,
		Moves:     sess.engine.Moves(),
		BestChain: sess.engine.BestChain(),
		Won:       p.Progress >= p.Goal,
		Duration:  int(time.Since(sess.started).Seconds()),
	})
	if err != nil {
		s.logger.Warn("could not save session", "session", sess.id, "error", err)
	}
}
