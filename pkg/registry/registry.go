// Package registry maps field type tags to whatever builds their editor
// widget. A Registry is created once at startup and handed to the code that
// renders forms.
package registry

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Registry is a set of constructors keyed by type tag, with a fallback for
// tags nobody registered.
type Registry[C any] struct {
	mu       sync.RWMutex
	entries  map[string]C
	fallback C
}

// New returns an empty registry resolving every tag to fallback.
func New[C any](fallback C) *Registry[C] {
	return &Registry[C]{
		entries:  make(map[string]C),
		fallback: fallback,
	}
}

// Register binds tag to c, replacing any earlier binding. It returns r so
// calls can be chained.
func (r *Registry[C]) Register(tag string, c C) *Registry[C] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[tag]; ok {
		log.Warn("field type is being overridden", "type", tag)
	}
	r.entries[tag] = c
	return r
}

// Resolve returns the constructor for tag, or the fallback.
func (r *Registry[C]) Resolve(tag string) C {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.entries[tag]; ok {
		return c
	}
	return r.fallback
}

func (r *Registry[C]) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[tag]
	return ok
}

// Types lists the registered tags in sorted order.
func (r *Registry[C]) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		types = append(types, tag)
	}
	sort.Strings(types)
	return types
}
