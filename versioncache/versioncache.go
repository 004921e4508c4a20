// Package versioncache implements the in-memory, write-through versioning
// cache (spec component C3): a (index, id) -> (version, timestamp) map
// with atomic compare-and-swap updates backing optimistic concurrency.
//
// Grounded on bundoc's mvcc.VersionManager atomic-counter pattern, but
// narrowed to the cache's four total operations (get/add/update/delete) —
// FlexSearch keeps exactly one (version, timestamp) pair per id, not a
// historical version chain, so mvcc's Version.Next linking and
// GarbageCollect have no equivalent here.
package versioncache

import (
	"sync"
	"time"
)

// Cell is the versioning cache's per-document entry.
type Cell struct {
	Version   int
	Timestamp time.Time
}

type key struct {
	index string
	id    string
}

// Cache is a concurrent, process-scope versioning cache. It is
// write-through only: it is never the system of record, and callers must
// fall back to a point query on the index when a lookup misses (§4.3).
type Cache struct {
	mu    sync.RWMutex
	cells map[key]Cell
}

// New returns an empty versioning cache.
func New() *Cache {
	return &Cache{cells: make(map[key]Cell)}
}

// Get returns the cached (version, timestamp) for (index, id), or
// ok == false if absent.
func (c *Cache) Get(index, id string) (Cell, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cell, ok := c.cells[key{index, id}]
	return cell, ok
}

// Add starts tracking (index, id) at version, e.g. 1 for a freshly created
// document. Reports false without modifying the cache if an entry already
// exists.
func (c *Cache) Add(index, id string, version int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{index, id}
	if _, exists := c.cells[k]; exists {
		return false
	}
	c.cells[k] = Cell{Version: version, Timestamp: time.Now()}
	return true
}

// Update atomically replaces the cached cell with newVersion, but only if
// the currently cached (version, timestamp) equals (expectedVersion,
// expectedTS) — the compare-and-swap optimistic-concurrency primitive
// write pipeline updates rely on (§4.5, invariant 4).
func (c *Cache) Update(index, id string, expectedVersion int, expectedTS time.Time, newVersion int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{index, id}
	cur, ok := c.cells[k]
	if !ok || cur.Version != expectedVersion || !cur.Timestamp.Equal(expectedTS) {
		return false
	}
	c.cells[k] = Cell{Version: newVersion, Timestamp: time.Now()}
	return true
}

// Delete removes (index, id) from the cache, if present.
func (c *Cache) Delete(index, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cells, key{index, id})
}

// DeleteIndex removes every cell belonging to index, used by
// DeleteByIndex (§4.5).
func (c *Cache) DeleteIndex(index string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.cells {
		if k.index == index {
			delete(c.cells, k)
		}
	}
}
