package components

import (
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/docrender/pkg/render"
	"github.com/aretw0/docrender/pkg/schema"
)

// Registry manages the component blocks available to a host.
// Safe for concurrent use; renders read a Snapshot.
type Registry[O any] struct {
	mu      sync.RWMutex
	blocks  map[string]render.ComponentBlock[O]
	schemas map[string]schema.Schema
}

// NewRegistry creates a new empty registry.
func NewRegistry[O any]() *Registry[O] {
	return &Registry[O]{
		blocks:  make(map[string]render.ComponentBlock[O]),
		schemas: make(map[string]schema.Schema),
	}
}

// NewDefaultRegistry creates a registry holding the built-in blocks.
func NewDefaultRegistry[O any]() *Registry[O] {
	r := NewRegistry[O]()
	for name, block := range Builtins[O]() {
		r.Register(name, block)
	}
	for name, s := range BuiltinSchemas() {
		r.Describe(name, s)
	}
	return r
}

// Register adds a block to the registry.
// If a block with the same name exists, it is overwritten.
func (r *Registry[O]) Register(name string, block render.ComponentBlock[O]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[name] = block
}

// Describe attaches the prop schema of a component.
func (r *Registry[O]) Describe(name string, s schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
}

// Unregister removes a block and its schema.
func (r *Registry[O]) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, name)
	delete(r.schemas, name)
}

// Lookup returns the block registered under name.
func (r *Registry[O]) Lookup(name string) (render.ComponentBlock[O], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	block, ok := r.blocks[name]
	return block, ok
}

// Names returns the registered names in ascending order.
func (r *Registry[O]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.blocks))
}

// Schemas returns a copy of the described prop schemas.
func (r *Registry[O]) Schemas() map[string]schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.schemas)
}

// Snapshot returns a copy of the registered blocks, fixed for one render call.
func (r *Registry[O]) Snapshot() render.ComponentBlocks[O] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.blocks)
}
