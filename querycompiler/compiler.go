package querycompiler

import (
	"github.com/Enielezi/FlexSearch/internal/engine"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
)

// Compile compiles filter against rt into an executable engine.Query,
// following spec.md §4.7's nine compilation steps. profileBindings is
// nil outside search-profile mode.
func Compile(rt Runtime, filter *Filter, topLevel bool, profileBindings map[string]string) (engine.Query, error) {
	var clauses []engine.BooleanClause

	for _, cond := range filter.Conditions {
		q, err := compileCondition(rt, cond, profileBindings)
		if err != nil {
			return nil, err
		}
		if q == nil {
			continue
		}
		clauses = append(clauses, engine.BooleanClause{Query: q, Occur: occurFor(filter.Type)})
	}

	for _, sub := range filter.SubFilters {
		q, err := Compile(rt, sub, false, profileBindings)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, engine.BooleanClause{Query: q, Occur: occurFor(filter.Type)})
	}

	var result engine.Query
	if len(clauses) == 0 {
		result = engine.MatchAllQuery{}
	} else {
		result = &engine.BooleanQuery{Clauses: clauses}
	}

	if filter.ConstantScore > 1 && !topLevel {
		result = &engine.ConstantScoreQuery{Inner: result, Boost: float32(filter.ConstantScore)}
	}
	return result, nil
}

func occurFor(t FilterType) engine.Occur {
	if t == Or {
		return engine.Should
	}
	return engine.Must
}

func compileCondition(rt Runtime, cond Condition, profileBindings map[string]string) (engine.Query, error) {
	strat, ok := strategies[cond.Operator]
	if !ok {
		return nil, ferrors.ErrUnknownQueryOperator
	}

	desc, ok := rt.Field(cond.Field)
	if !ok {
		return nil, ferrors.ErrUnknownField
	}
	if desc.StoredOnly {
		return nil, ferrors.ErrStoreOnlyField
	}

	if profileBindings != nil {
		bound, present := profileBindings[cond.Field]
		if present {
			if len(cond.Values) == 0 {
				cond.Values = []string{bound}
			} else {
				cond.Values = append([]string{bound}, cond.Values[1:]...)
			}
		} else {
			switch cond.MissingValueOption {
			case Ignore:
				return nil, nil
			case ThrowError:
				return nil, ferrors.ErrInvalidCondition
			case Default:
				// keep the condition's literal value
			}
		}
	}

	if len(cond.Values) == 0 || cond.Values[0] == "" {
		return nil, ferrors.ErrInvalidCondition
	}

	return strat(rt, desc, cond)
}

// CompileProfile resolves a SearchProfileQuery (§4.7's profile mode):
// either invokes the named selector script with fields to obtain a
// profile name, or uses profileName directly, then compiles that
// profile's filter tree with fields bound as profileBindings.
func CompileProfile(rt Runtime, selectorScript, profileName string, fields map[string]string) (engine.Query, error) {
	resolved := profileName
	if selectorScript != "" {
		fn, ok := rt.SelectorScript(selectorScript)
		if !ok {
			return nil, ferrors.ErrUnknownSearchProfile
		}
		name, err := fn(fields)
		if err != nil {
			return nil, err
		}
		resolved = name
	}
	if resolved == "" {
		return nil, ferrors.ErrUnknownSearchProfile
	}
	profile, ok := rt.Profile(resolved)
	if !ok {
		return nil, ferrors.ErrUnknownSearchProfile
	}
	return Compile(rt, profile, true, fields)
}
