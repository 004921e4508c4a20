// Package shard implements one horizontal partition of an index (spec
// component C2): a writer, a searcher manager, and a reopen worker, owned
// together so the index runtime never has to reach into another shard's
// internals.
//
// Grounded on bundoc/collection.go's Insert/Update/Delete method shape
// (lock, mutate, persist) and internal/wal's split between a buffered
// write and an explicit durable flush.
package shard

import (
	"sync"

	"github.com/Enielezi/FlexSearch/internal/engine"
)

// Shard owns one writer handle, one searcher manager, and (optionally) a
// background reopen worker for a single shard number of an index.
type Shard struct {
	Number int

	writer    *engine.WriterHandle
	searchers *engine.SearcherManager

	mu     sync.Mutex
	reopen *ReopenWorker
}

// Open creates shard number's runtime. path is accepted for interface
// fidelity with spec.md §4.2 (`open(setting, path) -> shard`); the
// directory-kind-specific persistence it would route to is an external
// collaborator (§1), so internal/engine's WriterHandle is opened directly
// regardless of path.
func Open(number int, path string) *Shard {
	w := engine.NewWriterHandle()
	return &Shard{
		Number:    number,
		writer:    w,
		searchers: engine.NewSearcherManager(w),
	}
}

// Add indexes doc, pinned to generation N+1. Visible only after the next
// refresh (NRT semantics, §4.2).
func (s *Shard) Add(doc *engine.Document) uint64 {
	return s.writer.AddDocument(doc)
}

// Update replaces whatever document matches term with doc.
func (s *Shard) Update(term engine.Term, doc *engine.Document) uint64 {
	return s.writer.UpdateDocument(term, doc)
}

// Delete removes whatever document matches term.
func (s *Shard) Delete(term engine.Term) uint64 {
	return s.writer.DeleteDocument(term)
}

// DeleteAll removes every document in this shard.
func (s *Shard) DeleteAll() uint64 {
	return s.writer.DeleteAll()
}

// Commit durably flushes the shard's writer.
func (s *Shard) Commit() error {
	return s.writer.Commit()
}

// HasUncommitted reports whether the shard has buffered, uncommitted
// mutations, for the scheduled commit loop's "only when dirty" mode.
func (s *Shard) HasUncommitted() bool {
	return s.writer.HasUncommitted()
}

// MaybeRefresh opens a new searcher generation if the writer has advanced
// since the last refresh. Returns whether a refresh occurred.
func (s *Shard) MaybeRefresh() bool {
	return s.searchers.MaybeRefresh()
}

// Generation returns the writer's current generation number.
func (s *Shard) Generation() uint64 {
	return s.writer.Generation()
}

// AcquireSearcher pins and returns the shard's current searcher handle.
// Every AcquireSearcher must be paired with exactly one ReleaseSearcher,
// including on error paths (§4.2).
func (s *Shard) AcquireSearcher() *engine.SearcherHandle {
	return s.searchers.Acquire()
}

// ReleaseSearcher unpins a handle previously returned by AcquireSearcher.
func (s *Shard) ReleaseSearcher(h *engine.SearcherHandle) {
	h.Release()
}

// StartReopenWorker starts this shard's background NRT reopen loop,
// targeting the given stale-tolerance period (clamped to [5ms, 25ms] per
// spec.md's shard-runtime stale-tolerance target). The loop terminates
// when stop is closed.
func (s *Shard) StartReopenWorker(stop <-chan struct{}, period DurationMillis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reopen != nil {
		return
	}
	s.reopen = newReopenWorker(s, period)
	s.reopen.start(stop)
}

// Close commits the shard's writer and releases it. Close errors are
// non-fatal per spec.md §7 — callers must still transition index state to
// Offline even if Close returns an error.
func (s *Shard) Close() error {
	return s.writer.Close()
}
