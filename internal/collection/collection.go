// Package collection provides the ordered, identity-keyed container the
// ledger is built on. A collection owns its backing list exclusively; all
// mutation goes through Upsert/Remove/Replace so identity and notification
// invariants hold.
package collection

import "strings"

// NotFound is the sentinel returned by FindIndex.
const NotFound = -1

type subscriber struct {
	id int
	fn func()
}

// Collection is a generic ordered container keyed by an identity function.
// The canonical function feeds Hash, the cheap did-anything-change signal
// consumers poll between renders.
//
// Collections are not goroutine-safe: there is one logical writer, the
// event loop.
type Collection[T any] struct {
	items     []T
	key       func(T) string
	canonical func(T) string
	subs      []subscriber
	nextSub   int
	muted     bool
}

// New builds a collection over initial items. key defines identity for
// upsert/remove; canonical defines each item's contribution to Hash.
func New[T any](items []T, key, canonical func(T) string) *Collection[T] {
	c := &Collection[T]{key: key, canonical: canonical}
	c.items = append(c.items, items...)
	return c
}

func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the backing list. Callers never get a handle on
// collection-owned storage.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// At returns the item at position i.
func (c *Collection[T]) At(i int) T { return c.items[i] }

// FindIndex locates an item by identity key, NotFound if absent.
func (c *Collection[T]) FindIndex(item T) int {
	k := c.key(item)
	for i := range c.items {
		if c.key(c.items[i]) == k {
			return i
		}
	}
	return NotFound
}

// Upsert replaces the item with the same identity in place, preserving its
// position, or appends when no such item exists. Fires one notification.
func (c *Collection[T]) Upsert(item T) {
	if i := c.FindIndex(item); i != NotFound {
		c.items[i] = item
	} else {
		c.items = append(c.items, item)
	}
	c.notify()
}

// Remove deletes by identity. Absent items are a silent no-op: no
// notification fires.
func (c *Collection[T]) Remove(item T) {
	i := c.FindIndex(item)
	if i == NotFound {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.notify()
}

// Replace swaps the entire contents in one committed mutation.
func (c *Collection[T]) Replace(items []T) {
	c.items = c.items[:0]
	c.items = append(c.items, items...)
	c.notify()
}

// Subscribe registers a change callback and returns its deregistration
// function. Subscribers are notified in registration order and are
// independent: removing one leaves the rest untouched.
func (c *Collection[T]) Subscribe(fn func()) func() {
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i := range c.subs {
			if c.subs[i].id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Begin suppresses notifications until Commit, which fires exactly one
// reflecting the final state. Used to coalesce fan-out during bulk import;
// it is not an isolation boundary.
func (c *Collection[T]) Begin() { c.muted = true }

// Commit re-enables notifications and fires one.
func (c *Collection[T]) Commit() {
	c.muted = false
	c.notify()
}

func (c *Collection[T]) notify() {
	if c.muted {
		return
	}
	for _, s := range c.subs {
		s.fn()
	}
}

// Hash summarizes current contents in order. Identical contents in
// identical order hash identically; any content or order change changes it.
func (c *Collection[T]) Hash() string {
	parts := make([]string, len(c.items))
	for i, item := range c.items {
		parts[i] = c.canonical(item)
	}
	return strings.Join(parts, ",")
}

// Sum totals a projection over the contents. A not-ok projection
// contributes zero, so sums stay finite when optional inputs are missing.
func (c *Collection[T]) Sum(project func(T) (float64, bool)) float64 {
	var total float64
	for _, item := range c.items {
		if v, ok := project(item); ok {
			total += v
		}
	}
	return total
}
