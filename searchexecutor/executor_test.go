package searchexecutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/internal/engine"
	"github.com/Enielezi/FlexSearch/shard"
)

type fakeExecRuntime struct {
	shards []*shard.Shard
	fields map[string]*field.Descriptor
}

func (r *fakeExecRuntime) Name() string      { return "products" }
func (r *fakeExecRuntime) ShardCount() int   { return len(r.shards) }
func (r *fakeExecRuntime) Shard(i int) *shard.Shard { return r.shards[i] }
func (r *fakeExecRuntime) Field(name string) (*field.Descriptor, bool) {
	d, ok := r.fields[name]
	return d, ok
}
func (r *fakeExecRuntime) Fields() map[string]*field.Descriptor { return r.fields }

func newExecRuntime(t *testing.T, shardCount int) *fakeExecRuntime {
	t.Helper()
	rt := &fakeExecRuntime{
		fields: map[string]*field.Descriptor{
			"title": {Name: "title", Kind: field.Text},
		},
	}
	for i := 0; i < shardCount; i++ {
		rt.shards = append(rt.shards, shard.Open(i, t.TempDir()))
	}
	return rt
}

func addDoc(t *testing.T, s *shard.Shard, id, title string) {
	t.Helper()
	d := &engine.Document{ID: id}
	d.Add(engine.FieldValue{Name: "id", String: id, Indexed: true, Stored: true})
	d.Add(engine.FieldValue{Name: "type", String: "products", Indexed: false, Stored: true})
	d.Add(engine.FieldValue{Name: "title", String: title, Indexed: true, Stored: true})
	s.Add(d)
	require.True(t, s.MaybeRefresh())
}

func TestExecuteMergesAcrossShards(t *testing.T) {
	rt := newExecRuntime(t, 2)
	defer func() {
		for _, s := range rt.shards {
			s.Close()
		}
	}()

	addDoc(t, rt.shards[0], "1", "hello world")
	addDoc(t, rt.shards[1], "2", "goodbye world")

	res, err := Execute(rt, engine.MatchAllQuery{}, SearchQuery{Count: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalAvailable)
	assert.Equal(t, 2, res.RecordsReturned)
}

func TestExecuteAppliesSkipAndCount(t *testing.T) {
	rt := newExecRuntime(t, 1)
	defer rt.shards[0].Close()

	addDoc(t, rt.shards[0], "1", "a")
	addDoc(t, rt.shards[0], "2", "b")
	addDoc(t, rt.shards[0], "3", "c")

	res, err := Execute(rt, engine.MatchAllQuery{}, SearchQuery{Count: 1, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RecordsReturned)
}

func TestExecuteProjectsNamedColumns(t *testing.T) {
	rt := newExecRuntime(t, 1)
	defer rt.shards[0].Close()

	addDoc(t, rt.shards[0], "1", "hello")

	res, err := Execute(rt, engine.MatchAllQuery{}, SearchQuery{Count: 10, Columns: []string{"title"}})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "hello", res.Documents[0].Fields["title"])
	assert.Equal(t, "1", res.Documents[0].ID)
}

func TestExecuteWildcardColumnsExcludeStoredOnlyAndReservedFields(t *testing.T) {
	rt := newExecRuntime(t, 1)
	rt.fields["summary"] = &field.Descriptor{Name: "summary", Kind: field.Stored, StoredOnly: true}
	defer rt.shards[0].Close()

	d := &engine.Document{ID: "1"}
	d.Add(engine.FieldValue{Name: "id", String: "1", Indexed: true, Stored: true})
	d.Add(engine.FieldValue{Name: "type", String: "products", Indexed: false, Stored: true})
	d.Add(engine.FieldValue{Name: "title", String: "hello", Indexed: true, Stored: true})
	d.Add(engine.FieldValue{Name: "summary", String: "hidden", Indexed: false, Stored: true})
	rt.shards[0].Add(d)
	require.True(t, rt.shards[0].MaybeRefresh())

	res, err := Execute(rt, engine.MatchAllQuery{}, SearchQuery{Count: 10, Columns: []string{"*"}})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "hello", res.Documents[0].Fields["title"])
	_, hasSummary := res.Documents[0].Fields["summary"]
	assert.False(t, hasSummary)
	_, hasID := res.Documents[0].Fields["id"]
	assert.False(t, hasID)
}

func TestExecuteNoColumnsOmitsFields(t *testing.T) {
	rt := newExecRuntime(t, 1)
	defer rt.shards[0].Close()

	addDoc(t, rt.shards[0], "1", "hello")

	res, err := Execute(rt, engine.MatchAllQuery{}, SearchQuery{Count: 10})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Empty(t, res.Documents[0].Fields)
}

func TestHighlightWrapsFirstOccurrence(t *testing.T) {
	doc := &engine.Document{ID: "1"}
	doc.Add(engine.FieldValue{Name: "title", String: "the quick brown fox", Indexed: true, Stored: true})

	frags := highlight(doc, &HighlightRequest{
		Field: "title", PreTag: "<b>", PostTag: "</b>", Terms: []string{"quick"}, Fragments: 1,
	})
	require.Len(t, frags, 1)
	assert.Equal(t, "the <b>quick</b> brown fox", frags[0])
}

func TestHighlightSkipsFragmentWithNoMatch(t *testing.T) {
	doc := &engine.Document{ID: "1"}
	doc.Add(engine.FieldValue{Name: "title", String: "the quick brown fox", Indexed: true, Stored: true})

	frags := highlight(doc, &HighlightRequest{
		Field: "title", PreTag: "<b>", PostTag: "</b>", Terms: []string{"absent"},
	})
	assert.Nil(t, frags)
}

func TestHighlightMissingFieldReturnsNil(t *testing.T) {
	doc := &engine.Document{ID: "1"}
	frags := highlight(doc, &HighlightRequest{Field: "missing", Terms: []string{"x"}})
	assert.Nil(t, frags)
}

func TestIsReservedRecognizesBuiltinFields(t *testing.T) {
	assert.True(t, isReserved("id"))
	assert.True(t, isReserved("type"))
	assert.True(t, isReserved("lastmodified"))
	assert.True(t, isReserved("version"))
	assert.False(t, isReserved("title"))
}
