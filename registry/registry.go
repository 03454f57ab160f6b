// Package registry holds the set of live games the server knows about,
// keyed by an opaque game id. It is the only place a game is looked up by
// id; callers never reach into a Game directly from a map of their own.
package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/rumendamyanov/simchess/game"
)

// ErrNotFound is returned by Get when no game exists for the given id.
var ErrNotFound = errors.New("registry: game not found")

// Registry is a concurrency-safe game_id -> *game.Game map. Each Game
// guards its own state with its own mutex; Registry's mutex only protects
// the map itself, never held across a game operation.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*game.Game
	rules game.Rules
}

// New returns an empty registry that creates games with the default rules.
func New() *Registry {
	return NewWithRules(game.DefaultRules())
}

// NewWithRules returns an empty registry that creates games with the given
// rules parameters.
func NewWithRules(rules game.Rules) *Registry {
	return &Registry{games: make(map[string]*game.Game), rules: rules}
}

// Create allocates a new game with a fresh opaque id and stores it.
func (r *Registry) Create() *game.Game {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	g := game.NewWithRules(id, r.rules)
	r.games[id] = g
	return g
}

// Get looks up a game by id.
func (r *Registry) Get(id string) (*game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Remove deletes a game from the registry, e.g. once it has finished and
// been archived elsewhere. It is a no-op if the id is unknown.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, id)
}

// Len returns the number of games currently tracked.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
