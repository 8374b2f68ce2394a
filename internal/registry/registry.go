// Package registry maps game IDs to factories.
// Game packages register their modes in init(), so the platform can list
// and create them without importing a concrete mode.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is the contract between a game mode and the platform.
// Games hold pure logic and never import Bubble Tea; the platform maps input,
// drives the tick loop and turns the screen buffer into terminal output.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage
	// (e.g. "match3", "match3_endless").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick with the actions held this frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score and game-over/pause flags.
	State() core.GameState
}

// StatsReporter is implemented by games that can summarize a finished run
// beyond a single score.
type StatsReporter interface {
	Stats() core.SessionStats
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// LevelSelector is implemented by games with a level list. StartAt takes a
// 1-based level and applies on the next Reset.
type LevelSelector interface {
	StartAt(level int)
}

// ErrorReporter is implemented by games that can end on an internal error.
type ErrorReporter interface {
	Err() error
}

// Controller is implemented by games that describe their own key bindings.
type Controller interface {
	Controls() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. Panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
