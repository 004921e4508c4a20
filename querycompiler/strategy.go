package querycompiler

import (
	"strconv"
	"strings"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/internal/engine"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
)

// strategy builds an executable query for one condition against one
// resolved field descriptor. A nil, nil result means the clause
// contributes nothing (e.g. an analyzer producing zero tokens).
type strategy func(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error)

var strategies = map[string]strategy{
	"term_match":    termMatch,
	"fuzzy_match":   fuzzyMatch,
	"phrase_match":  phraseMatch,
	"like":          like,
	"string_range":  stringRange,
	"numeric_range": numericRange,
}

func tokensOf(rt Runtime, desc *field.Descriptor, text string) []string {
	tok, ok := rt.Analyzer(desc.SearchAnalyzer)
	if !ok {
		return strings.Fields(strings.ToLower(text))
	}
	return tok.TokenizeText(text)
}

func boostOf(cond Condition) float32 {
	if cond.Boost > 1 {
		return float32(cond.Boost)
	}
	return 1
}

func termMatch(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	if desc.Kind.IsNumeric() {
		v, err := strconv.ParseFloat(cond.Values[0], 64)
		if err != nil {
			return nil, ferrors.ErrInvalidCondition
		}
		return &engine.NumericRangeQuery{
			Field: desc.Name, Lower: v, Upper: v,
			IncludeLower: true, IncludeUpper: true, Boost: boostOf(cond),
		}, nil
	}

	tokens := tokensOf(rt, desc, cond.Values[0])
	switch len(tokens) {
	case 0:
		return nil, nil
	case 1:
		return &engine.TermQuery{Field: desc.Name, Value: tokens[0], Boost: boostOf(cond)}, nil
	default:
		occur := engine.Must
		if cond.Parameters["clausetype"] == "or" {
			occur = engine.Should
		}
		clauses := make([]engine.BooleanClause, 0, len(tokens))
		for _, t := range tokens {
			clauses = append(clauses, engine.BooleanClause{
				Query: &engine.TermQuery{Field: desc.Name, Value: t},
				Occur: occur,
			})
		}
		return &engine.BooleanQuery{Clauses: clauses, Boost: boostOf(cond)}, nil
	}
}

func fuzzyMatch(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	slop := 1
	if v, ok := cond.Parameters["slop"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			slop = n
		}
	}
	prefixLen := 0
	if v, ok := cond.Parameters["prefixlength"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			prefixLen = n
		}
	}

	tokens := tokensOf(rt, desc, cond.Values[0])
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) == 1 {
		return &engine.FuzzyQuery{Field: desc.Name, Value: tokens[0], Slop: slop, PrefixLength: prefixLen, Boost: boostOf(cond)}, nil
	}
	clauses := make([]engine.BooleanClause, 0, len(tokens))
	for _, t := range tokens {
		clauses = append(clauses, engine.BooleanClause{
			Query: &engine.FuzzyQuery{Field: desc.Name, Value: t, Slop: slop, PrefixLength: prefixLen},
			Occur: engine.Must,
		})
	}
	return &engine.BooleanQuery{Clauses: clauses, Boost: boostOf(cond)}, nil
}

func phraseMatch(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	slop := 0
	if v, ok := cond.Parameters["slop"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			slop = n
		}
	}
	tokens := tokensOf(rt, desc, cond.Values[0])
	if len(tokens) == 0 {
		return nil, nil
	}
	return &engine.PhraseQuery{Field: desc.Name, Terms: tokens, Slop: slop, Boost: boostOf(cond)}, nil
}

func like(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	tokens := tokensOf(rt, desc, cond.Values[0])
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) == 1 {
		return &engine.WildcardQuery{Field: desc.Name, Pattern: tokens[0], Boost: boostOf(cond)}, nil
	}
	clauses := make([]engine.BooleanClause, 0, len(tokens))
	for _, t := range tokens {
		clauses = append(clauses, engine.BooleanClause{
			Query: &engine.WildcardQuery{Field: desc.Name, Pattern: t},
			Occur: engine.Must,
		})
	}
	return &engine.BooleanQuery{Clauses: clauses, Boost: boostOf(cond)}, nil
}

func stringRange(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	if len(cond.Values) < 2 {
		return nil, ferrors.ErrInvalidCondition
	}
	lowerTok := tokensOf(rt, desc, cond.Values[0])
	upperTok := tokensOf(rt, desc, cond.Values[1])
	lower := strings.Join(lowerTok, "")
	upper := strings.Join(upperTok, "")
	if lower == upper {
		return nil, ferrors.ErrInvalidCondition
	}
	return &engine.StringRangeQuery{
		Field: desc.Name, Lower: lower, Upper: upper,
		IncludeLower: cond.Parameters["includelower"] == "true",
		IncludeUpper: cond.Parameters["includeupper"] == "true",
		Boost:        boostOf(cond),
	}, nil
}

func numericRange(rt Runtime, desc *field.Descriptor, cond Condition) (engine.Query, error) {
	if len(cond.Values) < 2 {
		return nil, ferrors.ErrInvalidCondition
	}
	lower, err := strconv.ParseFloat(cond.Values[0], 64)
	if err != nil {
		return nil, ferrors.ErrInvalidCondition
	}
	upper, err := strconv.ParseFloat(cond.Values[1], 64)
	if err != nil {
		return nil, ferrors.ErrInvalidCondition
	}
	if lower == upper {
		return nil, ferrors.ErrInvalidCondition
	}
	return &engine.NumericRangeQuery{
		Field: desc.Name, Lower: lower, Upper: upper,
		IncludeLower: cond.Parameters["includelower"] == "true",
		IncludeUpper: cond.Parameters["includeupper"] == "true",
		Boost:        boostOf(cond),
	}, nil
}
