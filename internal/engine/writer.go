package engine

import (
	"sync"
	"sync/atomic"
)

// WriterHandle is the single-owner mutation surface for one shard's
// segment of an index. Generation tracking follows bundoc's
// mvcc.VersionManager: every successful mutation assigns the next
// monotonic generation number (NewTimestamp/GetCurrentTimestamp split),
// which the reopen worker later compares against a refreshed searcher's
// generation to decide whether a reopen is needed.
type WriterHandle struct {
	mu         sync.Mutex
	live       map[string]*Document
	generation atomic.Uint64
	dirty      atomic.Bool
}

// NewWriterHandle opens a fresh, empty writer.
func NewWriterHandle() *WriterHandle {
	return &WriterHandle{live: make(map[string]*Document)}
}

// Generation returns the writer's current monotonic generation number.
func (w *WriterHandle) Generation() uint64 {
	return w.generation.Load()
}

// HasUncommitted reports whether any mutation has occurred since the last
// Commit, for the scheduled commit loop's "only when dirty" mode.
func (w *WriterHandle) HasUncommitted() bool {
	return w.dirty.Load()
}

// AddDocument indexes doc under its own id, replacing any existing
// document with that id. Returns the generation assigned to the mutation.
func (w *WriterHandle) AddDocument(doc *Document) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.live[doc.ID] = doc.Clone()
	w.dirty.Store(true)
	return w.generation.Add(1)
}

// UpdateDocument atomically replaces whatever document matches term with
// doc (delete-then-add under a single lock), avoiding the duplicate-on-
// update window a separate delete+add pair would expose to a concurrent
// reader.
func (w *WriterHandle) UpdateDocument(t Term, doc *Document) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deleteByTermLocked(t)
	w.live[doc.ID] = doc.Clone()
	w.dirty.Store(true)
	return w.generation.Add(1)
}

// DeleteDocument removes whatever document matches term, if any. Returns
// the generation assigned to the mutation.
func (w *WriterHandle) DeleteDocument(t Term) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deleteByTermLocked(t)
	w.dirty.Store(true)
	return w.generation.Add(1)
}

// DeleteAll removes every live document in this writer's segment.
func (w *WriterHandle) DeleteAll() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.live = make(map[string]*Document)
	w.dirty.Store(true)
	return w.generation.Add(1)
}

func (w *WriterHandle) deleteByTermLocked(t Term) {
	if t.Field == "id" {
		delete(w.live, t.Value)
		return
	}
	for id, doc := range w.live {
		if fv, ok := doc.Get(t.Field); ok && fv.String == t.Value {
			delete(w.live, id)
		}
	}
}

// Commit durably persists the segment. The directory kind (filesystem,
// memory-mapped, ram) is a caller-supplied configuration knob external to
// this primitive (§6); Commit here marks the in-memory segment clean,
// which is the visible contract shard/indexmanager depend on.
func (w *WriterHandle) Commit() error {
	w.dirty.Store(false)
	return nil
}

// Close commits and releases the writer.
func (w *WriterHandle) Close() error {
	return w.Commit()
}

// snapshot returns a shallow copy of the writer's live document map, used
// by SearcherManager to build a new, immutable segment on refresh.
func (w *WriterHandle) snapshot() map[string]*Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	cp := make(map[string]*Document, len(w.live))
	for k, v := range w.live {
		cp[k] = v
	}
	return cp
}
