// Package screen keeps the list each admin management screen shows.
//
// A screen fetches its list when it is opened and then edits that local
// copy: a successful delete drops the item from it without asking the
// backend again. The copy lives in a go-cache entry keyed by client id and
// collection name, so modals and confirmations opened over the list render
// from it, until it expires or a successful save drops it.
package screen

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Identified is anything with a backend id.
type Identified interface {
	GetID() int64
}

// Collection is the ordered list one screen shows.
type Collection[T Identified] struct {
	Items []T
}

// NewCollection copies items into a new Collection.
func NewCollection[T Identified](items []T) *Collection[T] {
	c := &Collection[T]{Items: make([]T, len(items))}
	copy(c.Items, items)
	return c
}

// Find returns the item with id.
func (c *Collection[T]) Find(id int64) (T, bool) {
	for _, it := range c.Items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops every item with id and reports whether one was found.
func (c *Collection[T]) Remove(id int64) bool {
	kept := c.Items[:0:0]
	for _, it := range c.Items {
		if it.GetID() != id {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(c.Items)
	c.Items = kept
	return removed
}

// Cache holds the collections of every client's open screens.
type Cache struct {
	entries *cache.Cache
}

// NewCache returns a Cache whose entries expire ttl after their last write.
func NewCache(ttl time.Duration) *Cache {
	cleanup := ttl * 2
	if ttl <= 0 {
		ttl = cache.NoExpiration
		cleanup = 0
	}
	return &Cache{entries: cache.New(ttl, cleanup)}
}

func key(clientID, collection string) string {
	return clientID + "/" + collection
}

// Put replaces the collection stored for clientID, e.g. after a fetch.
// A copy is stored; stored collections are never modified in place, so two
// tabs of the same browser cannot race on one slice.
func Put[T Identified](c *Cache, clientID, collection string, col *Collection[T]) {
	c.entries.SetDefault(key(clientID, collection), NewCollection(col.Items))
}

// Get returns a copy of the stored collection, or false when none is cached
// or it has a different element type. Changes to the copy are kept only
// once it is Put back.
func Get[T Identified](c *Cache, clientID, collection string) (*Collection[T], bool) {
	v, ok := c.entries.Get(key(clientID, collection))
	if !ok {
		return nil, false
	}
	col, ok := v.(*Collection[T])
	if !ok {
		return nil, false
	}
	return NewCollection(col.Items), true
}

// Drop forgets the stored collection.
func (c *Cache) Drop(clientID, collection string) {
	c.entries.Delete(key(clientID, collection))
}
