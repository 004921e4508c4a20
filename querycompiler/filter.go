// Package querycompiler implements the query compiler (spec component
// C7): a filter tree compiled into an executable internal/engine.Query
// via a registry of named query strategies.
//
// Grounded on bundoc/internal/query/ast.go's Parse/FieldNode/LogicalNode
// shape: FlexSearch generalizes ast.go's fixed $eq/$ne/$gt/... operator
// set into the pluggable named-strategy registry spec.md §4.7 describes,
// and replaces ast.go's in-memory Matches(doc) evaluation with compiled
// internal/engine.Query construction.
package querycompiler

import "github.com/Enielezi/FlexSearch/field"

// FilterType is the boolean combinator a Filter applies to its clauses.
type FilterType int

const (
	And FilterType = iota
	Or
)

// MissingValueOption controls what happens to a profile-bound condition
// when the request supplies no value for its field.
type MissingValueOption int

const (
	ThrowError MissingValueOption = iota
	Default
	Ignore
)

// Condition is a single compiled clause: a field, an operator name
// resolved against the strategy registry, and its operand values.
type Condition struct {
	Field              string
	Operator           string
	Values             []string
	Parameters         map[string]string
	Boost              int
	MissingValueOption MissingValueOption
}

// Filter is a node of the filter tree: a boolean combinator over a set of
// conditions and nested sub-filters, with an optional constant-score
// override.
type Filter struct {
	Type          FilterType
	Conditions    []Condition
	SubFilters    []*Filter
	ConstantScore int
}

// Runtime is the slice of an index runtime the query compiler needs:
// field resolution, analyzer resolution, and search-profile lookup.
// indexmanager.Runtime satisfies this.
type Runtime interface {
	Field(name string) (*field.Descriptor, bool)
	Analyzer(name string) (Tokenizer, bool)
	Profile(name string) (*Filter, bool)
	SelectorScript(name string) (func(fields map[string]string) (string, error), bool)
}

// Tokenizer is the minimal analyzer surface the compiler needs —
// satisfied by *analyzer.Registry-resolved analyzers through a small
// adapter in indexmanager, keeping this package decoupled from the
// analyzer package's TokenStream plumbing.
type Tokenizer interface {
	TokenizeText(text string) []string
}
