// Package searchexecutor implements the search executor (spec component
// C8): parallel per-shard search, top-k merge, column projection, and
// highlighting.
//
// Grounded on bundoc/iterator.go's TableScanIterator/IndexScanIterator
// fetch pattern, generalized from "one iterator over one B+Tree" to "one
// goroutine per shard, joined before merge."
package searchexecutor

import (
	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/shard"
)

// HighlightRequest asks for highlighted fragments of a single field.
// Terms are the literal query terms to wrap — the search request's
// originating condition values, since the matched terms live in the
// compiled query, not the stored document.
type HighlightRequest struct {
	Field     string
	PreTag    string
	PostTag   string
	Fragments int
	Terms     []string
}

// SearchQuery is the caller-facing request shape of spec.md §4.8.
type SearchQuery struct {
	Columns     []string
	Count       int
	Skip        int
	Highlight   *HighlightRequest
	OrderBy     string
	OrderByDesc bool
}

// Runtime is the slice of an index runtime the search executor needs.
type Runtime interface {
	Name() string
	ShardCount() int
	Shard(i int) *shard.Shard
	Field(name string) (*field.Descriptor, bool)
	Fields() map[string]*field.Descriptor
}

// ResultDocument is one hydrated hit.
type ResultDocument struct {
	ID           string
	Index        string
	LastModified int64
	Score        float32
	Fields       map[string]string
	Highlights   []string
}

// Result is the search executor's output (§4.8 step 8's return shape).
type Result struct {
	Documents       []ResultDocument
	RecordsReturned int
	TotalAvailable  int
}
