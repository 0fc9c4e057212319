// Package state holds session-scoped, in-memory client state. Nothing here
// is persisted; each session gets its own containers and they vanish with
// the process.
package state

import "sync"

// Counter is a session-scoped counter safe for concurrent use.
type Counter struct {
	mu    sync.Mutex
	value int64
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	return c.value
}

// Decrement subtracts one and returns the new value.
func (c *Counter) Decrement() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value--
	return c.value
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = 0
}

// Value returns the current value.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}
