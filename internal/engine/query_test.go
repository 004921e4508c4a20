package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermQueryMatchesCaseInsensitively(t *testing.T) {
	d := doc("1", "Hello")
	q := &TermQuery{Field: "title", Value: "hello"}
	matched, score := q.eval(d)
	assert.True(t, matched)
	assert.Equal(t, float32(1), score)
}

func TestTermQueryMissesUnindexedField(t *testing.T) {
	d := &Document{ID: "1"}
	d.Add(FieldValue{Name: "title", String: "hello", Indexed: false, Stored: true})
	q := &TermQuery{Field: "title", Value: "hello"}
	matched, _ := q.eval(d)
	assert.False(t, matched)
}

func TestBooleanQueryMustAllMatch(t *testing.T) {
	d := doc("1", "hello")
	q := &BooleanQuery{Clauses: []BooleanClause{
		{Query: &TermQuery{Field: "title", Value: "hello"}, Occur: Must},
		{Query: &TermQuery{Field: "title", Value: "goodbye"}, Occur: Must},
	}}
	matched, _ := q.eval(d)
	assert.False(t, matched)
}

func TestBooleanQueryShouldAnyMatch(t *testing.T) {
	d := doc("1", "hello")
	q := &BooleanQuery{Clauses: []BooleanClause{
		{Query: &TermQuery{Field: "title", Value: "hello"}, Occur: Should},
		{Query: &TermQuery{Field: "title", Value: "goodbye"}, Occur: Should},
	}}
	matched, _ := q.eval(d)
	assert.True(t, matched)
}

func TestNumericRangeQuerySinglePoint(t *testing.T) {
	d := &Document{ID: "1"}
	d.Add(FieldValue{Name: "age", Int: 42, Indexed: true, Stored: true})
	q := &NumericRangeQuery{Field: "age", Lower: 42, Upper: 42, IncludeLower: true, IncludeUpper: true}
	matched, _ := q.eval(d)
	assert.True(t, matched)

	q2 := &NumericRangeQuery{Field: "age", Lower: 43, Upper: 43, IncludeLower: true, IncludeUpper: true}
	matched2, _ := q2.eval(d)
	assert.False(t, matched2)
}

func TestMatchAllQueryAlwaysMatches(t *testing.T) {
	matched, score := MatchAllQuery{}.eval(doc("1", "anything"))
	assert.True(t, matched)
	assert.Equal(t, float32(1), score)
}

func TestConstantScoreQueryOverridesScore(t *testing.T) {
	inner := &TermQuery{Field: "title", Value: "hello", Boost: 5}
	q := &ConstantScoreQuery{Inner: inner, Boost: 2}
	matched, score := q.eval(doc("1", "hello"))
	assert.True(t, matched)
	assert.Equal(t, float32(2), score)
}

func TestMergeCombinesAndTrims(t *testing.T) {
	a := &TopDocs{TotalHits: 2, ScoreDocs: []ScoreDoc{{Doc: doc("1", "a"), Score: 1}, {Doc: doc("2", "b"), Score: 3}}}
	b := &TopDocs{TotalHits: 1, ScoreDocs: []ScoreDoc{{Doc: doc("3", "c"), Score: 2}}}

	merged := Merge(nil, 2, []*TopDocs{a, b})
	assert.Equal(t, 3, merged.TotalHits)
	assert.Len(t, merged.ScoreDocs, 2)
	assert.Equal(t, float32(3), merged.ScoreDocs[0].Score)
	assert.Equal(t, float32(2), merged.ScoreDocs[1].Score)
}
