// Package rules compiles and evaluates CEL expressions for FlexSearch's
// two scripted extension points: a field's optional value source (§4.1,
// §9's "Fn(&Map) -> String" capability) and a search profile's selector
// script (§4.7).
//
// Adapted from the original RulesEngine: the compiled-program cache
// (sync.Map keyed by expression text) and cel.Env construction are kept
// as-is. The original Evaluate asserted a bool result for authorization
// decisions; FlexSearch has no authorization layer, and both of its call
// sites need a string result, so EvaluateString asserts a string instead
// and is the only evaluation entry point this package exposes.
package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Engine compiles and caches CEL programs over a single "fields" map
// variable — the input document fields (value sources) or the search
// request's bound fields (profile selectors).
type Engine struct {
	env      *cel.Env
	prgCache sync.Map // map[string]cel.Program
}

// NewEngine builds a CEL environment exposing a single "fields" variable,
// a string-keyed map of string values.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("fields", decls.NewMapType(decls.String, decls.String)),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Engine{env: env}, nil
}

// EvaluateString compiles (or reuses a cached compilation of) expression
// and evaluates it against fields, asserting a string result.
func (e *Engine) EvaluateString(expression string, fields map[string]string) (string, error) {
	if expression == "" {
		return "", nil
	}

	var prg cel.Program
	if cached, ok := e.prgCache.Load(expression); ok {
		prg = cached.(cel.Program)
	} else {
		ast, issues := e.env.Compile(expression)
		if issues != nil && issues.Err() != nil {
			return "", fmt.Errorf("rules: compile error: %w", issues.Err())
		}
		p, err := e.env.Program(ast)
		if err != nil {
			return "", fmt.Errorf("rules: program construction error: %w", err)
		}
		prg = p
		e.prgCache.Store(expression, prg)
	}

	fieldsArg := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		fieldsArg[k] = v
	}

	out, _, err := prg.Eval(map[string]interface{}{"fields": fieldsArg})
	if err != nil {
		return "", fmt.Errorf("rules: eval error: %w", err)
	}

	result, ok := out.Value().(string)
	if !ok {
		return "", fmt.Errorf("rules: expression %q must evaluate to a string", expression)
	}
	return result, nil
}
