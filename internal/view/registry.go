package view

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clive/milestones/internal/milestone"
)

var (
	// ErrNotFound is returned for an unknown view ID.
	ErrNotFound = errors.New("view not found")
	// ErrFull is returned when the registry holds its maximum number of views.
	ErrFull = errors.New("too many views")
)

// Registry holds the views served by one process.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
	max   int
	clock milestone.Clock
}

// NewRegistry creates a registry holding at most max views. max <= 0 means
// no limit.
func NewRegistry(max int, clock milestone.Clock) *Registry {
	return &Registry{
		views: make(map[string]*View),
		max:   max,
		clock: clock,
	}
}

// Create registers a new view seeded with milestones. A nil progress keeps
// the seeded completed flags until the first SetProgress.
func (r *Registry) Create(list []milestone.Milestone, progress *float64) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.views) >= r.max {
		return nil, ErrFull
	}

	v := New(uuid.NewString(), r.clock)
	v.SetMilestones(list)
	if progress != nil {
		v.SetProgress(*progress)
	}
	r.views[v.ID] = v

	slog.Debug("view created", "id", v.ID, "milestones", len(list))
	return v, nil
}

// Get returns the view with id.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Delete removes the view with id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[id]; !ok {
		return ErrNotFound
	}
	delete(r.views, id)
	slog.Debug("view deleted", "id", id)
	return nil
}

// Len returns the number of views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// IDs returns the view IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
