package tui

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// sessionRecord builds the stored summary of a run.
func sessionRecord(gameID string, stats core.SessionStats, played time.Duration) storage.Session {
	return storage.Session{
		SessionID: uuid.NewString(),
		GameID:    gameID,
		Level:     stats.Level,
		Progress:  stats.Progress,
		Goal:      stats.Goal,
		Currency:  stats.Currency,
		Moves:     stats.Moves,
		BestChain: stats.BestChain,
		Won:       stats.Won,
		Duration:  int(played.Seconds()),
	}
}

// recordResult saves the score and, for games that report stats, the
// session summary. Runs without a single accepted move are not stored.
func recordResult(store *storage.Store, game registry.Game, state core.GameState, started time.Time) error {
	if store == nil {
		return nil
	}

	if state.Score > 0 {
		if _, err := store.SaveScore(game.ID(), state.Score); err != nil {
			return err
		}
	}

	sr, ok := game.(registry.StatsReporter)
	if !ok {
		return nil
	}
	stats := sr.Stats()
	if stats.Moves == 0 {
		return nil
	}
	_, err := store.SaveSession(sessionRecord(game.ID(), stats, time.Since(started)))
	return err
}
