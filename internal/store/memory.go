// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer for live game sessions: a game
// only matters while it is being played, so durability is not required.
// Finished games are recorded separately in SQLite.
//
// Characteristics:
//   - Stores *game.State objects keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing game IDs on Get() and Delete().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/baldmike/baseball-game-sub001/internal/game"
)

// ErrNotFound is returned when no game exists under the requested ID.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for live game sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, s *game.State) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game does not exist.
	Get(ctx context.Context, id string) (*game.State, error)

	// Delete removes a finished or abandoned game.
	// Returns ErrNotFound if the game does not exist.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex // guards games map
	games map[string]*game.State
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.State)}
}

// Save adds or updates the game in the map.
func (m *memory) Save(ctx context.Context, s *game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[s.GameID] = s
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.games[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete drops a game from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}
