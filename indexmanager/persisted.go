package indexmanager

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/querycompiler"
)

// PersistedDefinition is the JSON-serializable shape an IPersistenceStore
// implementation (§6, external to this module) would actually store and
// retrieve. Grounded on bundoc/metadata.go's SystemMetadata/CollectionMeta
// flat JSON-file persistence pattern: even though the settings store
// itself is an external collaborator, something concrete has to describe
// what it stores, or IPersistenceStore has nothing to persist.
type PersistedDefinition struct {
	Name                string                      `json:"name"`
	Fields              []PersistedField             `json:"fields"`
	IndexAnalyzer       string                        `json:"indexAnalyzer"`
	SearchAnalyzer      string                        `json:"searchAnalyzer"`
	Scripts             map[string]string             `json:"scripts"`
	SearchProfiles      map[string]json.RawMessage    `json:"searchProfiles"`
	ShardCount          int                           `json:"shardCount"`
	Directory           string                        `json:"directoryKind"`
	RAMBufferMB         int                           `json:"ramBufferMB"`
	CommitPeriodSeconds int                           `json:"commitPeriodSeconds"`
	RefreshPeriodMillis int                           `json:"refreshPeriodMillis"`
	BaseDirectoryPath   string                        `json:"baseDirectoryPath"`
}

// PersistedField is one field descriptor's JSON-safe projection.
// ValueSourceScript holds the CEL expression text that rehydrate evaluates
// directly, rather than carrying the compiled closure (closures are not
// JSON-serializable).
type PersistedField struct {
	Name              string `json:"name"`
	Kind              string `json:"kind"`
	StoredOnly        bool   `json:"storedOnly"`
	IndexAnalyzer     string `json:"indexAnalyzer"`
	SearchAnalyzer    string `json:"searchAnalyzer"`
	Postings          int    `json:"postings"`
	TermVectors       int    `json:"termVectors"`
	ValueSourceScript string `json:"valueSourceScript,omitempty"`
}

func toPersisted(s *IndexSetting) *PersistedDefinition {
	def := &PersistedDefinition{
		Name:                s.Name,
		IndexAnalyzer:       s.IndexAnalyzer,
		SearchAnalyzer:      s.SearchAnalyzer,
		Scripts:             s.Scripts,
		ShardCount:          s.ShardCount,
		Directory:           directoryName(s.Directory),
		RAMBufferMB:         s.RAMBufferMB,
		CommitPeriodSeconds: int(s.CommitPeriod / time.Second),
		RefreshPeriodMillis: int(s.RefreshPeriod / time.Millisecond),
		BaseDirectoryPath:   s.BaseDirectory,
		SearchProfiles:      make(map[string]json.RawMessage, len(s.SearchProfiles)),
	}
	for _, f := range s.Fields {
		def.Fields = append(def.Fields, PersistedField{
			Name:           f.Name,
			Kind:           f.Kind.String(),
			StoredOnly:     f.StoredOnly,
			IndexAnalyzer:  f.IndexAnalyzer,
			SearchAnalyzer: f.SearchAnalyzer,
			Postings:       int(f.Postings),
			TermVectors:    int(f.TermVectors),
		})
	}
	for name, filter := range s.SearchProfiles {
		if raw, err := json.Marshal(filter); err == nil {
			def.SearchProfiles[name] = raw
		}
	}
	return def
}

// rehydrate reconstructs a runtime-ready IndexSetting from a persisted
// definition, wiring each computed field's ValueSource back to its named
// script via evalString (a closure over the manager's rules engine).
func rehydrate(def *PersistedDefinition, evalString func(script string, fields map[string]string) (string, error)) (*IndexSetting, error) {
	s := &IndexSetting{
		Name:           def.Name,
		IndexAnalyzer:  def.IndexAnalyzer,
		SearchAnalyzer: def.SearchAnalyzer,
		Scripts:        def.Scripts,
		ShardCount:     def.ShardCount,
		Directory:      parseDirectory(def.Directory),
		RAMBufferMB:    def.RAMBufferMB,
		CommitPeriod:   time.Duration(def.CommitPeriodSeconds) * time.Second,
		RefreshPeriod:  time.Duration(def.RefreshPeriodMillis) * time.Millisecond,
		BaseDirectory:  def.BaseDirectoryPath,
		FieldMap:       make(map[string]*field.Descriptor),
		SearchProfiles: make(map[string]*querycompiler.Filter),
	}

	for _, pf := range def.Fields {
		desc := &field.Descriptor{
			Name:           pf.Name,
			Kind:           parseKind(pf.Kind),
			StoredOnly:     pf.StoredOnly,
			IndexAnalyzer:  pf.IndexAnalyzer,
			SearchAnalyzer: pf.SearchAnalyzer,
			Postings:       field.PostingsOptions(pf.Postings),
			TermVectors:    field.TermVectorOptions(pf.TermVectors),
		}
		if pf.ValueSourceScript != "" {
			script := pf.ValueSourceScript
			desc.ValueSource = func(fields map[string]string) (string, error) {
				return evalString(script, fields)
			}
		}
		s.Fields = append(s.Fields, desc)
		s.FieldMap[strings.ToLower(pf.Name)] = desc
	}

	for name, raw := range def.SearchProfiles {
		var filter querycompiler.Filter
		if err := json.Unmarshal(raw, &filter); err != nil {
			return nil, err
		}
		s.SearchProfiles[name] = &filter
	}

	return s, nil
}

func directoryName(d DirectoryKind) string {
	switch d {
	case MemoryMapped:
		return "memory-mapped"
	case Ram:
		return "ram"
	default:
		return "filesystem"
	}
}

func parseDirectory(s string) DirectoryKind {
	switch s {
	case "memory-mapped":
		return MemoryMapped
	case "ram":
		return Ram
	default:
		return FileSystem
	}
}

func parseKind(s string) field.Kind {
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
