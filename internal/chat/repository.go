package chat

import (
	"context"
	"sync"
)

// Repository holds chat rooms in memory. Rooms are ephemeral and vanish on
// restart along with their message logs.
type Repository struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRepository creates a new chat repository
func NewRepository() *Repository {
	return &Repository{rooms: make(map[string]*Room)}
}

// Create stores a new room
func (r *Repository) Create(ctx context.Context, room *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.ID] = clone(room)
	return nil
}

// GetByID retrieves a room by its ID. Returns nil if not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	return clone(room), nil
}

// Update replaces the stored room with the same ID. Returns false if the ID
// matches nothing.
func (r *Repository) Update(ctx context.Context, room *Room) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; !ok {
		return false, nil
	}
	r.rooms[room.ID] = clone(room)
	return true, nil
}

// clone copies a room with its roster, log, and joined set so callers never
// share a mutable reference with the store.
func clone(room *Room) *Room {
	c := *room
	c.Members = append([]Member(nil), room.Members...)
	c.Messages = append([]Message(nil), room.Messages...)
	c.joined = make(map[string]bool, len(room.joined))
	for name := range room.joined {
		c.joined[name] = true
	}
	return &c
}
