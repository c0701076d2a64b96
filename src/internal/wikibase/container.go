package wikibase

import (
	"context"
	"fmt"
	"sync"
)

// Container is a request-scoped read-through entity cache. Each id is
// loaded at most once per container; create one container per request.
type Container struct {
	loader Loader

	mu       sync.Mutex
	entities map[string]*Entity
}

// NewContainer returns an empty container backed by the loader.
func NewContainer(loader Loader) *Container {
	return &Container{
		loader:   loader,
		entities: make(map[string]*Entity),
	}
}

// Get returns the entity for id, loading it on first access.
func (c *Container) Get(ctx context.Context, id string) (*Entity, error) {
	c.mu.Lock()
	e, ok := c.entities[id]
	c.mu.Unlock()
	if ok {
		if e == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return e, nil
	}

	e, err := c.loader.LoadEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entities[id] = e
	c.mu.Unlock()
	return e, nil
}

// Has reports whether the entity is already cached.
func (c *Container) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entities[id]
	return ok && e != nil
}

// Peek returns a cached entity without loading.
func (c *Container) Peek(id string) (*Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entities[id]
	if !ok || e == nil {
		return nil, false
	}
	return e, true
}

// EnsureLoaded batch-loads any ids not yet cached. Ids the knowledge base
// does not know stay absent; that is not an error.
func (c *Container) EnsureLoaded(ctx context.Context, ids []string) error {
	var missing []string
	c.mu.Lock()
	for _, id := range ids {
		if _, ok := c.entities[id]; !ok {
			missing = append(missing, id)
		}
	}
	c.mu.Unlock()
	if len(missing) == 0 {
		return nil
	}

	loaded, err := c.loader.LoadEntities(ctx, missing)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for _, id := range missing {
		c.entities[id] = loaded[id]
	}
	c.mu.Unlock()
	return nil
}
