package startup

import (
	"context"
	"sync"
)

// Repository holds startup postings in memory. State is ephemeral and is
// lost on restart; there is no database behind it.
type Repository struct {
	mu       sync.RWMutex
	startups []*Startup
}

// NewRepository creates a new startup repository
func NewRepository() *Repository {
	return &Repository{}
}

// Create appends a new posting
func (r *Repository) Create(ctx context.Context, s *Startup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.startups = append(r.startups, clone(s))
	return nil
}

// GetByID retrieves a posting by its ID. Returns nil if not found.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Startup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.startups {
		if s.ID == id {
			return clone(s), nil
		}
	}
	return nil, nil
}

// List retrieves postings in creation order with the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Startup, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.startups)
	if offset >= total {
		return []*Startup{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*Startup, 0, end-offset)
	for _, s := range r.startups[offset:end] {
		out = append(out, clone(s))
	}
	return out, total, nil
}

// Update replaces the stored posting with the same ID. The whole record is
// swapped in one step, so a read-transform-write cycle never exposes a
// half-updated posting. Returns false if the ID matches nothing.
func (r *Repository) Update(ctx context.Context, s *Startup) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.startups {
		if existing.ID == s.ID {
			r.startups[i] = clone(s)
			return true, nil
		}
	}
	return false, nil
}

// clone copies a posting with its nested slices so callers never share a
// mutable reference with the store.
func clone(s *Startup) *Startup {
	c := *s
	c.Members = append([]TeamMember(nil), s.Members...)
	c.Applications = append([]Application(nil), s.Applications...)
	return &c
}
