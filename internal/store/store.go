// Package store holds one state container per API resource. Each store
// mirrors server responses into guarded in-memory state through a narrow
// mutation API and keeps the error of its last failed operation for the
// surface layer to render. Stores take their API surface as an interface so
// tests substitute fakes.
package store

import (
	"sync"
)

// collection is the guarded list state shared by every store: the mirrored
// items plus the last operation error.
type collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loaded  bool
	lastErr error
}

func (c *collection[T]) set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.loaded = true
	c.lastErr = nil
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *collection[T]) append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// replace swaps the first item matched by eq, or appends when none matches.
func (c *collection[T]) replace(item T, eq func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if eq(c.items[i]) {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *collection[T]) remove(eq func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if eq(c.items[i]) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *collection[T]) find(eq func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if eq(c.items[i]) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

func (c *collection[T]) err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
