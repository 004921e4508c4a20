package engine

import "strings"

// Term identifies a single field/value pair, used to locate the document a
// shard update/delete targets (§4.2: update(term, doc), delete(term)).
type Term struct {
	Field string
	Value string
}

// Occur is a boolean clause's required occurrence within its parent query.
type Occur int

const (
	Must Occur = iota
	Should
)

// Query is anything internal/engine can evaluate against a document.
// Concrete implementations are produced by the query compiler (C7); the
// engine only needs to score/match them.
type Query interface {
	eval(doc *Document) (matched bool, score float32)
}

// TermQuery matches an exact token in a field. Like PhraseQuery, tokens
// are the whitespace-separated words of the stored string; a field whose
// whole value equals the term also matches.
type TermQuery struct {
	Field string
	Value string
	Boost float32
}

func (q *TermQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed {
		return false, 0
	}
	if strings.EqualFold(fv.String, q.Value) {
		return true, boostOrOne(q.Boost)
	}
	for _, tok := range strings.Fields(fv.String) {
		if strings.EqualFold(tok, q.Value) {
			return true, boostOrOne(q.Boost)
		}
	}
	return false, 0
}

// BooleanClause pairs a sub-query with its occurrence requirement.
type BooleanClause struct {
	Query Query
	Occur Occur
}

// BooleanQuery combines clauses with Must (AND) / Should (OR) semantics.
type BooleanQuery struct {
	Clauses []BooleanClause
	Boost   float32
}

func (q *BooleanQuery) eval(doc *Document) (bool, float32) {
	var score float32
	anyShould := false
	shouldMatched := false
	for _, c := range q.Clauses {
		matched, s := c.Query.eval(doc)
		switch c.Occur {
		case Must:
			if !matched {
				return false, 0
			}
			score += s
		case Should:
			anyShould = true
			if matched {
				shouldMatched = true
				score += s
			}
		}
	}
	if anyShould && !shouldMatched {
		return false, 0
	}
	return true, score * boostOrOne(q.Boost)
}

// FuzzyQuery matches a term within an edit-distance slop.
type FuzzyQuery struct {
	Field        string
	Value        string
	Slop         int
	PrefixLength int
	Boost        float32
}

func (q *FuzzyQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed {
		return false, 0
	}
	if editDistanceWithinPrefix(fv.String, q.Value, q.PrefixLength) <= q.Slop {
		return true, boostOrOne(q.Boost)
	}
	return false, 0
}

// PhraseQuery matches an ordered sequence of terms within slop positions
// of each other. internal/engine has no real positional postings list, so
// phrase matching is approximated over the field's whitespace-tokenized
// stored string, which is sufficient for the single-field highlighted-text
// fields this strategy targets.
type PhraseQuery struct {
	Field string
	Terms []string
	Slop  int
	Boost float32
}

func (q *PhraseQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed || len(q.Terms) == 0 {
		return false, 0
	}
	tokens := strings.Fields(strings.ToLower(fv.String))
	target := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		target[i] = strings.ToLower(t)
	}
	if phraseWithinSlop(tokens, target, q.Slop) {
		return true, boostOrOne(q.Boost)
	}
	return false, 0
}

// WildcardQuery matches a `*`/`?` glob pattern against a field's value,
// used by the `like` query strategy.
type WildcardQuery struct {
	Field   string
	Pattern string
	Boost   float32
}

func (q *WildcardQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed {
		return false, 0
	}
	if wildcardMatch(strings.ToLower(q.Pattern), strings.ToLower(fv.String)) {
		return true, boostOrOne(q.Boost)
	}
	return false, 0
}

// StringRangeQuery matches string-ordered values between two bounds.
type StringRangeQuery struct {
	Field                       string
	Lower, Upper                string
	IncludeLower, IncludeUpper  bool
	Boost                       float32
}

func (q *StringRangeQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed {
		return false, 0
	}
	lowOK := fv.String > q.Lower || (q.IncludeLower && fv.String == q.Lower)
	highOK := fv.String < q.Upper || (q.IncludeUpper && fv.String == q.Upper)
	if lowOK && highOK {
		return true, boostOrOne(q.Boost)
	}
	return false, 0
}

// NumericRangeQuery matches numeric field values between two bounds. A
// single-point range (Lower == Upper, both inclusive) implements the
// numeric form of term_match.
type NumericRangeQuery struct {
	Field                      string
	Lower, Upper               float64
	IncludeLower, IncludeUpper bool
	Boost                      float32
}

func (q *NumericRangeQuery) eval(doc *Document) (bool, float32) {
	fv, ok := doc.Get(q.Field)
	if !ok || !fv.Indexed {
		return false, 0
	}
	v := numericValue(fv)
	lowOK := v > q.Lower || (q.IncludeLower && v == q.Lower)
	highOK := v < q.Upper || (q.IncludeUpper && v == q.Upper)
	if lowOK && highOK {
		return true, boostOrOne(q.Boost)
	}
	return false, 0
}

// ConstantScoreQuery replaces an inner query's score with a fixed boost,
// used when a non-top-level filter carries constant score > 1 (§4.7.9).
type ConstantScoreQuery struct {
	Inner Query
	Boost float32
}

func (q *ConstantScoreQuery) eval(doc *Document) (bool, float32) {
	matched, _ := q.Inner.eval(doc)
	if !matched {
		return false, 0
	}
	return true, boostOrOne(q.Boost)
}

// MatchAllQuery matches every live document with a constant score.
type MatchAllQuery struct{}

func (MatchAllQuery) eval(*Document) (bool, float32) { return true, 1 }

func boostOrOne(b float32) float32 {
	if b <= 0 {
		return 1
	}
	return b
}

func numericValue(fv FieldValue) float64 {
	if fv.Float != 0 {
		return fv.Float
	}
	return float64(fv.Int)
}
