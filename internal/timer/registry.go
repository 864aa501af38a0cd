package timer

import (
	"fmt"
	"sync"
)

// Factory builds the controller for a key the first time it is requested.
type Factory func(key string) (*Controller, error)

// Registry holds one Controller per key, typically a user id.
type Registry struct {
	mu          sync.Mutex
	factory     Factory
	controllers map[string]*Controller
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory:     factory,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for key, creating it on first use. The factory
// runs without the registry lock held; when two callers race on a new key the
// first stored controller wins and the other is disposed.
func (r *Registry) Get(key string) (*Controller, error) {
	r.mu.Lock()
	controller, ok := r.controllers[key]
	r.mu.Unlock()
	if ok {
		return controller, nil
	}

	built, err := r.factory(key)
	if err != nil {
		return nil, fmt.Errorf("create timer for %s: %w", key, err)
	}

	r.mu.Lock()
	controller, ok = r.controllers[key]
	if !ok {
		r.controllers[key] = built
	}
	r.mu.Unlock()

	if ok {
		built.Dispose()
		return controller, nil
	}
	return built, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Close disposes every controller.
func (r *Registry) Close() {
	r.mu.Lock()
	controllers := r.controllers
	r.controllers = make(map[string]*Controller)
	r.mu.Unlock()

	for _, controller := range controllers {
		controller.Dispose()
	}
}
