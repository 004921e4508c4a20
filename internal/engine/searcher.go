package engine

import (
	"sync"
	"sync/atomic"
)

// segment is an immutable, point-in-time view of a writer's live
// documents at a given generation. SearcherManager swaps in a new segment
// on refresh; handles already holding an older segment keep seeing it
// until they release it, exactly as bundoc's mvcc.Snapshot gives a
// transaction a stable view while newer versions are written concurrently
// — except the visibility axis here is a single generation number, not a
// timestamp plus active/aborted transaction sets.
type segment struct {
	generation uint64
	docs       map[string]*Document
	refCount   atomic.Int32
}

// SearcherManager produces reference-counted, point-in-time SearcherHandle
// views over a WriterHandle's refreshed generations; a refresh sees every
// mutation so far, whether or not it has been committed. Acquire/Release here
// follow the same pin/unpin discipline as storage.BufferPool.FetchPage/
// UnpinPage: every Acquire increments a reference count; the matching
// Release decrements it. There is no disk eviction to trigger, since a
// segment is simply a snapshot of in-memory documents, but the invariant
// ("every acquire pairs with exactly one release on all exit paths") is
// the same one buffer-pool pinning enforces.
type SearcherManager struct {
	writer *WriterHandle

	mu      sync.RWMutex
	current *segment
}

// NewSearcherManager opens a searcher manager over writer, with an
// initial segment at the writer's current generation.
func NewSearcherManager(writer *WriterHandle) *SearcherManager {
	return &SearcherManager{
		writer:  writer,
		current: &segment{generation: writer.Generation(), docs: writer.snapshot()},
	}
}

// MaybeRefresh builds a new segment if the writer has advanced past the
// manager's current generation. Returns whether a refresh occurred.
func (sm *SearcherManager) MaybeRefresh() bool {
	target := sm.writer.Generation()
	sm.mu.RLock()
	cur := sm.current.generation
	sm.mu.RUnlock()
	if target == cur {
		return false
	}
	next := &segment{generation: target, docs: sm.writer.snapshot()}
	sm.mu.Lock()
	sm.current = next
	sm.mu.Unlock()
	return true
}

// CurrentGeneration returns the generation the most recently refreshed
// segment reflects.
func (sm *SearcherManager) CurrentGeneration() uint64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current.generation
}

// Acquire pins the current segment and returns a handle over it.
func (sm *SearcherManager) Acquire() *SearcherHandle {
	sm.mu.RLock()
	seg := sm.current
	sm.mu.RUnlock()
	seg.refCount.Add(1)
	return &SearcherHandle{seg: seg}
}

// SearcherHandle is a reference-counted, read-only view over one segment.
type SearcherHandle struct {
	seg      *segment
	released atomic.Bool
}

// Generation reports the generation this handle's segment reflects.
func (h *SearcherHandle) Generation() uint64 {
	return h.seg.generation
}

// Search evaluates query against every live document in the handle's
// segment, returning up to k matches ordered by sortBy (relevance if nil).
func (h *SearcherHandle) Search(query Query, k int, sortBy *SortField) *TopDocs {
	var hits []ScoreDoc
	for _, doc := range h.seg.docs {
		matched, score := query.eval(doc)
		if matched {
			hits = append(hits, ScoreDoc{Doc: doc, Score: score})
		}
	}
	total := len(hits)
	sortScoreDocs(hits, sortBy)
	if k >= 0 && len(hits) > k {
		hits = hits[:k]
	}
	return &TopDocs{TotalHits: total, ScoreDocs: hits}
}

// Get returns a single document by id from this handle's segment, used
// for term-match point lookups (versioncache cold-lookup fallback, id
// round-trip searches).
func (h *SearcherHandle) Get(id string) (*Document, bool) {
	d, ok := h.seg.docs[id]
	return d, ok
}

// Release unpins the segment this handle references. Safe to call more
// than once; only the first call has effect.
func (h *SearcherHandle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.seg.refCount.Add(-1)
	}
}
