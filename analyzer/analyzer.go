// Package analyzer supplies the minimal concrete tokenizers the query
// compiler (C7) needs to exercise its tokenize() contract. spec.md §1
// treats analyzer/tokenizer/filter plugin discovery as an external
// resolver contract; this package is the default, in-process
// implementation of that contract a caller gets unless it registers its
// own, analogous to how internal/engine fills in for the external
// inverted-index primitive.
package analyzer

import "strings"

// TokenStream is opened, reset, drained to exhaustion, ended, and closed
// on every path, per spec.md §4.7's tokenize() contract. Since the
// built-in analyzers are not stateful I/O resources, TokenStream here is
// a thin iterator wrapper rather than a true streaming resource, but it
// preserves the open/reset/drain/end/close call sequence callers rely on.
type TokenStream interface {
	Open()
	Reset()
	Next() (string, bool)
	End()
	Close()
}

// Analyzer produces a TokenStream over a field's text.
type Analyzer interface {
	TokenStream(text string) TokenStream
}

// Tokenize drives a: open, reset, drain to exhaustion, end, close — on
// every path, including if the caller only wants the first token.
func Tokenize(a Analyzer, text string) []string {
	ts := a.TokenStream(text)
	ts.Open()
	defer ts.Close()
	ts.Reset()
	defer ts.End()

	var tokens []string
	for {
		tok, ok := ts.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

type sliceTokenStream struct {
	tokens []string
	pos    int
}

func (s *sliceTokenStream) Open()  {}
func (s *sliceTokenStream) Reset() { s.pos = 0 }
func (s *sliceTokenStream) End()   {}
func (s *sliceTokenStream) Close() {}
func (s *sliceTokenStream) Next() (string, bool) {
	if s.pos >= len(s.tokens) {
		return "", false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// Standard lowercases and splits on runs of non-alphanumeric characters.
type Standard struct{}

func (Standard) TokenStream(text string) TokenStream {
	return &sliceTokenStream{tokens: splitWords(strings.ToLower(text))}
}

// Keyword treats the entire input as a single token, for ExactText
// fields that must not be tokenized.
type Keyword struct{}

func (Keyword) TokenStream(text string) TokenStream {
	if text == "" {
		return &sliceTokenStream{}
	}
	return &sliceTokenStream{tokens: []string{text}}
}

// Whitespace splits only on whitespace, preserving case and punctuation.
type Whitespace struct{}

func (Whitespace) TokenStream(text string) TokenStream {
	return &sliceTokenStream{tokens: strings.Fields(text)}
}

func splitWords(s string) []string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

// Registry resolves a named analyzer, serving settingsbuilder's
// "analyzer references resolve" validation and querycompiler's
// tokenization. Built-ins are pre-registered; callers may register
// additional analyzers (e.g. a custom one backed by an external plugin
// resolver) under a new name.
type Registry struct {
	named map[string]Analyzer
}

// NewRegistry returns a registry pre-populated with the built-in
// "standard", "keyword", and "whitespace" analyzers.
func NewRegistry() *Registry {
	return &Registry{named: map[string]Analyzer{
		"standard":   Standard{},
		"keyword":    Keyword{},
		"whitespace": Whitespace{},
	}}
}

// Register adds or replaces a named analyzer. Names are matched
// case-insensitively, per spec.md's registry lookup convention.
func (r *Registry) Register(name string, a Analyzer) {
	r.named[strings.ToLower(name)] = a
}

// Resolve looks up a named analyzer.
func (r *Registry) Resolve(name string) (Analyzer, bool) {
	a, ok := r.named[strings.ToLower(name)]
	return a, ok
}
