// Package weakref provides a concurrent ordered collection of weak-owned
// references. Entries whose target has been garbage collected are skipped on
// every read and compacted away opportunistically.
package weakref

import (
	"sync"
	"weak"
)

// Collection is an ordered, thread-safe sequence of weak pointers.
// Index 0 is the front. The collection never keeps its targets alive.
type Collection[T any] struct {
	mu      sync.Mutex
	entries []weak.Pointer[T]
}

// New creates an empty collection.
func New[T any]() *Collection[T] {
	return &Collection[T]{}
}

// PushFront inserts v at the front. Nil values are ignored.
func (c *Collection[T]) PushFront(v *T) bool {
	if v == nil {
		return false
	}
	ref := weak.Make(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, weak.Pointer[T]{})
	copy(c.entries[1:], c.entries)
	c.entries[0] = ref
	return true
}

// PushBack appends v at the back. Nil values are ignored.
func (c *Collection[T]) PushBack(v *T) bool {
	if v == nil {
		return false
	}
	ref := weak.Make(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, ref)
	return true
}

// PopFront removes and returns the first live entry, discarding any dead
// entries in front of it. Returns nil when no live entry remains.
func (c *Collection[T]) PopFront() *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.entries) > 0 {
		v := c.entries[0].Value()
		c.entries[0] = weak.Pointer[T]{}
		c.entries = c.entries[1:]
		if v != nil {
			return v
		}
	}
	return nil
}

// PeekAt returns the n-th live entry from the front (0 = front) without
// removing it. Dead entries are compacted first.
func (c *Collection[T]) PeekAt(n int) *T {
	if n < 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.compactLocked()

	if n >= len(c.entries) {
		return nil
	}
	return c.entries[n].Value()
}

// InsertAt inserts v so that it becomes the n-th live entry from the front.
// Dead entries are compacted first, so n counts live entries only. An n past
// the end appends at the back.
func (c *Collection[T]) InsertAt(n int, v *T) bool {
	if v == nil {
		return false
	}
	if n < 0 {
		n = 0
	}
	ref := weak.Make(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.compactLocked()

	if n > len(c.entries) {
		n = len(c.entries)
	}
	c.entries = append(c.entries, weak.Pointer[T]{})
	copy(c.entries[n+1:], c.entries[n:])
	c.entries[n] = ref
	return true
}

// Remove deletes the first occurrence of v scanning from the front.
// Reports whether an occurrence was found.
func (c *Collection[T]) Remove(v *T) bool {
	if v == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, ref := range c.entries {
		if ref.Value() == v {
			c.deleteLocked(i)
			return true
		}
	}
	return false
}

// PopUntil removes live entries from the front one at a time until one
// satisfies match (inclusive). Entries rejected by keep are discarded along
// the way, even when nothing matches. On success the removed entries that
// keep accepted are returned in removal order, so the match is last. When
// nothing matches the accepted entries stay where they were and nil is
// returned.
//
// match and keep run without the lock held and may call back into the
// collection. They can run more than once for the same entry when the
// collection changes while they are evaluated.
func (c *Collection[T]) PopUntil(match func(*T) bool, keep func(*T) bool) []*T {
	for {
		live := c.Snapshot()
		rejected := make([]bool, len(live))
		var popped []*T
		n, found := len(live), false
		for i, v := range live {
			if keep != nil && !keep(v) {
				rejected[i] = true
				continue
			}
			popped = append(popped, v)
			if match(v) {
				n, found = i+1, true
				break
			}
		}
		if !found {
			popped = nil
		}
		if c.commitPop(live[:n], rejected[:n], found) {
			return popped
		}
	}
}

// commitPop applies a PopUntil evaluation if the live entries still start
// with prefix. With a match the whole prefix goes. Without one the prefix
// must still cover every live entry and only rejected entries are dropped.
// Reports false when the collection changed since the snapshot.
func (c *Collection[T]) commitPop(prefix []*T, rejected []bool, matched bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compactLocked()

	if len(c.entries) < len(prefix) || (!matched && len(c.entries) != len(prefix)) {
		return false
	}
	for i, v := range prefix {
		if c.entries[i].Value() != v {
			return false
		}
	}

	if matched {
		n := copy(c.entries, c.entries[len(prefix):])
		clear(c.entries[n:])
		c.entries = c.entries[:n]
		return true
	}
	kept := c.entries[:0]
	for i, ref := range c.entries {
		if !rejected[i] {
			kept = append(kept, ref)
		}
	}
	clear(c.entries[len(kept):])
	c.entries = kept
	return true
}

// Contains reports whether v is a live entry.
func (c *Collection[T]) Contains(v *T) bool {
	if v == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range c.entries {
		if ref.Value() == v {
			return true
		}
	}
	return false
}

// Snapshot returns the live entries front to back.
func (c *Collection[T]) Snapshot() []*T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*T, 0, len(c.entries))
	for _, ref := range c.entries {
		if v := ref.Value(); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of live entries after compaction.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compactLocked()
	return len(c.entries)
}

// IsEmpty reports whether no live entry remains.
func (c *Collection[T]) IsEmpty() bool {
	return c.Len() == 0
}

// Clear drops every entry.
func (c *Collection[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.entries = nil
}

// compactLocked drops dead entries, preserving the order of live ones.
// Caller must hold the lock.
func (c *Collection[T]) compactLocked() {
	kept := c.entries[:0]
	for _, ref := range c.entries {
		if ref.Value() != nil {
			kept = append(kept, ref)
		}
	}
	clear(c.entries[len(kept):])
	c.entries = kept
}

// deleteLocked removes the entry at i. Caller must hold the lock.
func (c *Collection[T]) deleteLocked(i int) {
	copy(c.entries[i:], c.entries[i+1:])
	c.entries[len(c.entries)-1] = weak.Pointer[T]{}
	c.entries = c.entries[:len(c.entries)-1]
}
