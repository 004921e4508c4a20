package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id, title string) *Document {
	d := &Document{ID: id}
	d.Add(FieldValue{Name: "id", String: id, Indexed: true, Stored: true})
	d.Add(FieldValue{Name: "title", String: title, Indexed: true, Stored: true})
	return d
}

func TestWriterHandleAddAdvancesGeneration(t *testing.T) {
	w := NewWriterHandle()
	g0 := w.Generation()
	g1 := w.AddDocument(doc("1", "hello"))
	assert.Greater(t, g1, g0)
	assert.True(t, w.HasUncommitted())
}

func TestWriterHandleUpdateReplacesDocument(t *testing.T) {
	w := NewWriterHandle()
	w.AddDocument(doc("1", "hello"))
	w.UpdateDocument(Term{Field: "id", Value: "1"}, doc("1", "goodbye"))

	snap := w.snapshot()
	require.Len(t, snap, 1)
	fv, ok := snap["1"].Get("title")
	require.True(t, ok)
	assert.Equal(t, "goodbye", fv.String)
}

func TestWriterHandleDeleteByID(t *testing.T) {
	w := NewWriterHandle()
	w.AddDocument(doc("1", "hello"))
	w.DeleteDocument(Term{Field: "id", Value: "1"})

	assert.Empty(t, w.snapshot())
}

func TestWriterHandleDeleteByOtherField(t *testing.T) {
	w := NewWriterHandle()
	w.AddDocument(doc("1", "hello"))
	w.AddDocument(doc("2", "other"))
	w.DeleteDocument(Term{Field: "title", Value: "hello"})

	snap := w.snapshot()
	require.Len(t, snap, 1)
	_, ok := snap["2"]
	assert.True(t, ok)
}

func TestWriterHandleDeleteAll(t *testing.T) {
	w := NewWriterHandle()
	w.AddDocument(doc("1", "a"))
	w.AddDocument(doc("2", "b"))
	w.DeleteAll()
	assert.Empty(t, w.snapshot())
}

func TestWriterHandleCommitClearsDirty(t *testing.T) {
	w := NewWriterHandle()
	w.AddDocument(doc("1", "a"))
	require.True(t, w.HasUncommitted())
	require.NoError(t, w.Commit())
	assert.False(t, w.HasUncommitted())
}

func TestWriterHandleAddClonesDocument(t *testing.T) {
	w := NewWriterHandle()
	d := doc("1", "hello")
	w.AddDocument(d)

	d.Values[1].String = "mutated-after-add"

	snap := w.snapshot()
	fv, _ := snap["1"].Get("title")
	assert.Equal(t, "hello", fv.String)
}
