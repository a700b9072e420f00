package analyzer

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry tracks the live views of the server, one per session.
type Registry struct {
	mu    sync.RWMutex
	views map[uuid.UUID]*View
	opts  Options
}

// NewRegistry creates a registry whose views are built with opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		views: make(map[uuid.UUID]*View),
		opts:  opts,
	}
}

// Create registers a new view under a fresh ID.
func (r *Registry) Create() *View {
	v := NewView(uuid.New(), r.opts)

	r.mu.Lock()
	r.views[v.ID()] = v
	r.mu.Unlock()
	return v
}

// Get returns the view for id.
func (r *Registry) Get(id uuid.UUID) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	return v, ok
}

// Remove closes and forgets the view for id.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.Close()
	}
	return ok
}

// Reap closes every view idle for longer than maxIdle and returns how many were removed.
func (r *Registry) Reap(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	var stale []*View
	r.mu.Lock()
	for id, v := range r.views {
		if v.IdleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	return len(stale)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Each calls fn for every live view.
func (r *Registry) Each(fn func(*View)) {
	r.mu.RLock()
	views := make([]*View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	r.mu.RUnlock()

	for _, v := range views {
		fn(v)
	}
}

// Close tears down every view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[uuid.UUID]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}
