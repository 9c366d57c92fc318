// Package memory provides in-memory storage implementations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/merchantlab/consult-go/domain/capability"
)

// Registry is an in-memory implementation of capability.Registry.
type Registry struct {
	capabilities map[string]capability.Capability
	mu           sync.RWMutex
}

// NewRegistry creates a new in-memory capability registry.
func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]capability.Capability),
	}
}

// Register adds a capability to the registry.
func (r *Registry) Register(_ context.Context, c capability.Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.capabilities[c.Name()]; exists {
		return capability.ErrAlreadyRegistered
	}

	r.capabilities[c.Name()] = c
	return nil
}

// Get retrieves a capability by name.
func (r *Registry) Get(_ context.Context, name string) (capability.Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.capabilities[name]
	if !ok {
		return nil, capability.ErrNotFound
	}
	return c, nil
}

// List returns all registered capabilities.
func (r *Registry) List(_ context.Context) ([]capability.Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]capability.Capability, 0, len(r.capabilities))
	for _, c := range r.capabilities {
		out = append(out, c)
	}
	return out, nil
}

// Names returns all registered capability names sorted alphabetically.
func (r *Registry) Names(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Count returns the number of registered capabilities.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.capabilities)
}
