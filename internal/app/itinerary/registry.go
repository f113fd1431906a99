package itinerary

import (
	"sync"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Registry holds the one live controller per context id. The in-memory
// document is owned exclusively by that controller; the host application
// drives Load/Mutate/Clear through it.
type Registry struct {
	newController func(domain.ContextID) *Controller

	mu          sync.Mutex
	controllers map[domain.ContextID]*Controller
}

func NewRegistry(newController func(domain.ContextID) *Controller) *Registry {
	return &Registry{
		newController: newController,
		controllers:   make(map[domain.ContextID]*Controller),
	}
}

// GetOrCreate returns the context's controller, creating it on first access.
func (r *Registry) GetOrCreate(id domain.ContextID) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[id]
	if !ok {
		c = r.newController(id)
		r.controllers[id] = c
	}
	return c
}

// Get returns the context's controller if one exists.
func (r *Registry) Get(id domain.ContextID) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[id]
	return c, ok
}

// Clear tears down the context's controller (used when the host navigates
// away from the owning workflow).
func (r *Registry) Clear(id domain.ContextID) {
	r.mu.Lock()
	c, ok := r.controllers[id]
	delete(r.controllers, id)
	r.mu.Unlock()
	if ok {
		c.Clear()
	}
}
