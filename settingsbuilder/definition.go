// Package settingsbuilder validates a user-supplied index definition and
// compiles it into an immutable indexmanager.IndexSetting (spec component
// C9). Grounded on bundoc/collection.go's SetSchema/validate: a compiled
// gojsonschema.Schema gate kept alongside the structural checks a document
// store runs before ever accepting a definition.
package settingsbuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Enielezi/FlexSearch/analyzer"
	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/indexmanager"
	"github.com/Enielezi/FlexSearch/internal/ferrors"
	"github.com/Enielezi/FlexSearch/querycompiler"
)

// FieldDefinition is the raw, user-supplied shape of one field before
// validation (§3's field descriptor, pre-compile).
type FieldDefinition struct {
	Name              string
	Kind              string
	StoredOnly        bool
	IndexAnalyzer     string
	SearchAnalyzer    string
	Postings          field.PostingsOptions
	TermVectors       field.TermVectorOptions
	ValueSourceScript string
	JSONSchema        string // only meaningful for Kind == "Custom"
}

// CustomAnalyzerDefinition describes a user-registered analyzer built from
// named token filters, as opposed to one of the package's built-ins.
type CustomAnalyzerDefinition struct {
	Name         string
	TokenFilters []string
}

// Definition is the full, unvalidated index definition a caller submits to
// Build (§4.9).
type Definition struct {
	Name              string
	Fields            []FieldDefinition
	IndexAnalyzer     string
	SearchAnalyzer    string
	CustomAnalyzers   []CustomAnalyzerDefinition
	Scripts           map[string]string
	SearchProfiles    map[string]*querycompiler.Filter
	ShardCount        int
	Directory         indexmanager.DirectoryKind
	RAMBufferMB       int
	CommitPeriod      time.Duration
	RefreshPeriod     time.Duration
	BaseDirectory     string
}

var validKinds = map[string]bool{
	"Int": true, "Long": true, "Double": true, "Bool": true,
	"Date": true, "DateTime": true, "ExactText": true, "Text": true,
	"Highlight": true, "Custom": true, "Stored": true,
}

// Build validates def against §4.9's rules and, if it passes, compiles an
// immutable indexmanager.IndexSetting plus a Validator for any Custom-kind
// field carrying a JSON schema. The analyzer registry supplies the
// built-in analyzers. Each custom analyzer must list at least one token
// filter; the filter names are not resolved, and the analyzer is
// registered under its name as the built-in standard analyzer.
func Build(def *Definition, analyzers *analyzer.Registry, evalString func(script string, fields map[string]string) (string, error)) (*indexmanager.IndexSetting, *Validator, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, nil, fmt.Errorf("settingsbuilder: index name must not be empty")
	}
	if def.ShardCount < 1 {
		return nil, nil, fmt.Errorf("settingsbuilder: shard count must be >= 1, got %d", def.ShardCount)
	}

	for _, ca := range def.CustomAnalyzers {
		if len(ca.TokenFilters) == 0 {
			return nil, nil, fmt.Errorf("settingsbuilder: custom analyzer %q needs at least one token filter", ca.Name)
		}
		analyzers.Register(ca.Name, analyzer.Standard{})
	}

	if _, ok := analyzers.Resolve(def.IndexAnalyzer); !ok {
		return nil, nil, fmt.Errorf("settingsbuilder: index analyzer %q does not resolve", def.IndexAnalyzer)
	}
	if _, ok := analyzers.Resolve(def.SearchAnalyzer); !ok {
		return nil, nil, fmt.Errorf("settingsbuilder: search analyzer %q does not resolve", def.SearchAnalyzer)
	}

	seen := make(map[string]bool, len(def.Fields))
	descriptors := make([]*field.Descriptor, 0, len(def.Fields))
	fieldMap := make(map[string]*field.Descriptor, len(def.Fields))
	schemas := make(map[string]*gojsonschema.Schema)

	for _, fd := range def.Fields {
		name := strings.TrimSpace(fd.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("settingsbuilder: field name must not be empty")
		}
		lower := strings.ToLower(name)
		if indexmanager.IsReserved(lower) {
			return nil, nil, fmt.Errorf("settingsbuilder: field %q redefines a reserved name", name)
		}
		if seen[lower] {
			return nil, nil, fmt.Errorf("settingsbuilder: duplicate field name %q", name)
		}
		seen[lower] = true

		if !validKinds[fd.Kind] {
			return nil, nil, fmt.Errorf("settingsbuilder: field %q has unrecognized kind %q", name, fd.Kind)
		}

		ia := fd.IndexAnalyzer
		if ia == "" {
			ia = def.IndexAnalyzer
		}
		sa := fd.SearchAnalyzer
		if sa == "" {
			sa = def.SearchAnalyzer
		}
		if _, ok := analyzers.Resolve(ia); !ok {
			return nil, nil, fmt.Errorf("settingsbuilder: field %q index analyzer %q does not resolve", name, ia)
		}
		if _, ok := analyzers.Resolve(sa); !ok {
			return nil, nil, fmt.Errorf("settingsbuilder: field %q search analyzer %q does not resolve", name, sa)
		}

		if fd.Kind == "Custom" && fd.JSONSchema != "" {
			schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(fd.JSONSchema))
			if err != nil {
				return nil, nil, fmt.Errorf("settingsbuilder: field %q has invalid JSON schema: %w", name, err)
			}
			schemas[name] = schema
		}

		desc := &field.Descriptor{
			Name:           name,
			Kind:           parseFieldKind(fd.Kind),
			StoredOnly:     fd.StoredOnly,
			IndexAnalyzer:  ia,
			SearchAnalyzer: sa,
			Postings:       fd.Postings,
			TermVectors:    fd.TermVectors,
		}
		if fd.ValueSourceScript != "" && evalString != nil {
			script := fd.ValueSourceScript
			desc.ValueSource = func(fields map[string]string) (string, error) {
				return evalString(script, fields)
			}
		}
		descriptors = append(descriptors, desc)
		fieldMap[lower] = desc
	}

	setting := &indexmanager.IndexSetting{
		Name:           def.Name,
		Fields:         descriptors,
		FieldMap:       fieldMap,
		IndexAnalyzer:  def.IndexAnalyzer,
		SearchAnalyzer: def.SearchAnalyzer,
		Scripts:        def.Scripts,
		SearchProfiles: def.SearchProfiles,
		ShardCount:     def.ShardCount,
		Directory:      def.Directory,
		RAMBufferMB:    def.RAMBufferMB,
		CommitPeriod:   def.CommitPeriod,
		RefreshPeriod:  def.RefreshPeriod,
		BaseDirectory:  def.BaseDirectory,
	}

	var validator *Validator
	if len(schemas) > 0 {
		validator = &Validator{schemas: schemas}
		setting.Validator = validator
	}
	return setting, validator, nil
}

// Validator holds the compiled JSON schemas for a definition's Custom-kind
// fields, built once at Build time and reused for every document written
// to the index thereafter.
type Validator struct {
	schemas map[string]*gojsonschema.Schema // field name -> compiled schema
}

// ValidateDocument checks values against any Custom-kind field's compiled
// JSON schema (§4.9 supplements §4.1's document validation). A field with
// no schema, or absent from values, is skipped.
func (v *Validator) ValidateDocument(values map[string]string) error {
	if v == nil {
		return nil
	}
	for name, schema := range v.schemas {
		raw, ok := values[name]
		if !ok || raw == "" {
			continue
		}
		result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
		if err != nil {
			return fmt.Errorf("settingsbuilder: field %q is not valid JSON: %w", name, err)
		}
		if !result.Valid() {
			return fmt.Errorf("%w: field %q: %v", ferrors.ErrValidationFailed, name, result.Errors())
		}
	}
	return nil
}

func parseFieldKind(s string) field.Kind {
	switch s {
	case "Int":
		return field.Int
	case "Long":
		return field.Long
	case "Double":
		return field.Double
	case "Bool":
		return field.Bool
	case "Date":
		return field.Date
	case "DateTime":
		return field.DateTime
	case "ExactText":
		return field.ExactText
	case "Text":
		return field.Text
	case "Highlight":
		return field.Highlight
	case "Custom":
		return field.Custom
	case "Stored":
		return field.Stored
	default:
		return field.Text
	}
}
