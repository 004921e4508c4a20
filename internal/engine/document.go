// Package engine is FlexSearch's low-level search primitive: the
// WriterHandle/SearcherHandle/Term/Document/Query/TopDocs surface that
// spec.md §1 treats as an external, pre-existing inverted-index library.
// Nothing in the retrieval pack ships an embeddable Lucene-equivalent, so
// this package concretely implements it, adapted from bundoc's document
// model (storage/document.go) and buffer-pool pin/unpin discipline
// (storage/buffer_pool.go).
package engine

import (
	"encoding/json"

	"github.com/Enielezi/FlexSearch/field"
)

// FieldValue is one typed, already-parsed value ready for indexing and/or
// storage, produced by the field package's Cell parsing.
type FieldValue struct {
	Name     string
	Kind     field.Kind
	String   string
	Int      int64
	Float    float64
	Bool     bool
	Indexed  bool
	Stored   bool
}

// Document is a document handed to a WriterHandle: an ordered list of
// field values plus the reserved id the writer indexes by.
type Document struct {
	ID     string
	Values []FieldValue
}

// Get returns the named field's value, if present.
func (d *Document) Get(name string) (FieldValue, bool) {
	for _, v := range d.Values {
		if v.Name == name {
			return v, true
		}
	}
	return FieldValue{}, false
}

// Add appends a field value to the document.
func (d *Document) Add(fv FieldValue) {
	d.Values = append(d.Values, fv)
}

// Clone deep-copies the document so a searcher's segment snapshot is never
// aliased by a writer that mutates the same backing template afterward
// (mirrors storage/document.go's Clone/copy-on-Serialize discipline).
func (d *Document) Clone() *Document {
	cp := &Document{ID: d.ID, Values: make([]FieldValue, len(d.Values))}
	copy(cp.Values, d.Values)
	return cp
}

// marshalable is a plain JSON projection of a Document's stored fields,
// used only for Size() accounting.
func (d *Document) marshalable() map[string]interface{} {
	m := make(map[string]interface{}, len(d.Values))
	for _, v := range d.Values {
		if !v.Stored {
			continue
		}
		m[v.Name] = v.String
	}
	return m
}

// Size returns the approximate stored size of the document in bytes.
func (d *Document) Size() int {
	data, err := json.Marshal(d.marshalable())
	if err != nil {
		return 0
	}
	return len(data)
}
