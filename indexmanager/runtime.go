package indexmanager

import (
	"strings"

	"github.com/Enielezi/FlexSearch/analyzer"
	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/querycompiler"
	"github.com/Enielezi/FlexSearch/rules"
	"github.com/Enielezi/FlexSearch/shard"
	"github.com/Enielezi/FlexSearch/versioncache"
)

// State is an index's lifecycle state (§4.6's state machine diagram).
type State int

const (
	Opening State = iota
	Online
	Offline
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "Opening"
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Runtime is one index's live runtime: its setting, shard array, and
// versioning cache, plus a cancellation channel for its schedulers (§3's
// "Index runtime"). It satisfies writepipeline.IndexRuntime,
// querycompiler.Runtime, and searchexecutor.Runtime.
type Runtime struct {
	setting    *IndexSetting
	shards     []*shard.Shard
	versioning *versioncache.Cache
	analyzers  *analyzer.Registry
	rulesEng   *rules.Engine
	cancel     chan struct{}
}

func (r *Runtime) Name() string { return r.setting.Name }

func (r *Runtime) ShardCount() int { return len(r.shards) }

func (r *Runtime) Shard(i int) *shard.Shard { return r.shards[i] }

func (r *Runtime) Fields() map[string]*field.Descriptor { return r.setting.FieldMap }

func (r *Runtime) Field(name string) (*field.Descriptor, bool) {
	lower := strings.ToLower(name)
	if d, ok := r.setting.FieldMap[lower]; ok {
		return d, ok
	}
	d, ok := reservedDescriptors[lower]
	return d, ok
}

func (r *Runtime) Versioning() *versioncache.Cache { return r.versioning }

// ValidateDocument runs the index's JSON-Schema gate, if any Custom-kind
// field carries one, against values (§4.9). An index with no such field
// has no validator and every document passes.
func (r *Runtime) ValidateDocument(values map[string]string) error {
	if r.setting.Validator == nil {
		return nil
	}
	return r.setting.Validator.ValidateDocument(values)
}

// Analyzer resolves name against the index's analyzer registry, adapting
// analyzer.Analyzer into querycompiler's minimal Tokenizer surface.
func (r *Runtime) Analyzer(name string) (querycompiler.Tokenizer, bool) {
	a, ok := r.analyzers.Resolve(name)
	if !ok {
		return nil, false
	}
	return tokenizerAdapter{a}, true
}

func (r *Runtime) Profile(name string) (*querycompiler.Filter, bool) {
	f, ok := r.setting.SearchProfiles[name]
	return f, ok
}

// SelectorScript resolves a named CEL script into a callable that binds
// the search request's fields and returns a profile name.
func (r *Runtime) SelectorScript(name string) (func(fields map[string]string) (string, error), bool) {
	expr, ok := r.setting.Scripts[name]
	if !ok {
		return nil, false
	}
	return func(fields map[string]string) (string, error) {
		return r.rulesEng.EvaluateString(expr, fields)
	}, true
}

type tokenizerAdapter struct {
	a analyzer.Analyzer
}

func (t tokenizerAdapter) TokenizeText(text string) []string {
	return analyzer.Tokenize(t.a, text)
}
