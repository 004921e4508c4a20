// Package indexmanager implements the index manager (spec component C6):
// the per-index lifecycle state machine, its process-wide registries, and
// the commit/refresh schedulers that keep a shard's durability and
// freshness moving forward without caller intervention.
//
// Grounded on bundoc/database.go's Open/Close lifecycle and
// internal/wal/group_commit.go's timer-driven batching, adapted from
// "batch writes" to "batch per-shard commit/refresh ticks."
package indexmanager

import (
	"strings"
	"time"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/querycompiler"
)

// DirectoryKind selects the backing storage for a shard's native index.
type DirectoryKind int

const (
	FileSystem DirectoryKind = iota
	MemoryMapped
	Ram
)

// DocumentValidator gates a document's field values before it is written,
// typically backed by settingsbuilder's compiled JSON schemas for any
// Custom-kind field (§4.9). Declared here, not in settingsbuilder, since
// settingsbuilder already imports indexmanager for IndexSetting/IsReserved
// and indexmanager importing back would cycle; *settingsbuilder.Validator
// satisfies this interface structurally.
type DocumentValidator interface {
	ValidateDocument(values map[string]string) error
}

// IndexSetting is the immutable-per-open-cycle index definition (§3),
// produced by settingsbuilder (C9) from a user-supplied Definition.
type IndexSetting struct {
	Name           string
	Fields         []*field.Descriptor
	FieldMap       map[string]*field.Descriptor // lower-cased name -> descriptor
	IndexAnalyzer  string
	SearchAnalyzer string
	Scripts        map[string]string // selector-script name -> CEL expression
	SearchProfiles map[string]*querycompiler.Filter
	ShardCount     int
	Directory      DirectoryKind
	RAMBufferMB    int
	CommitPeriod   time.Duration
	RefreshPeriod  time.Duration
	BaseDirectory  string
	Validator      DocumentValidator
}

// reserved are the document field names a definition may never redefine
// (§3, §6).
var reserved = map[string]bool{"id": true, "type": true, "lastmodified": true, "version": true}

// IsReserved reports whether name is a reserved document field name.
func IsReserved(name string) bool {
	return reserved[strings.ToLower(name)]
}

// reservedDescriptors describes the four reserved document fields the way
// writepipeline's template writes them: id/type as exact-match indexed
// text, lastmodified as an indexed long, version as store-only so it is
// never a searchable condition target. settingsbuilder refuses to let a
// definition redefine any of these in FieldMap (§3, §6), so Runtime.Field
// falls back to this table instead of treating them as unknown fields —
// otherwise a term_match on id, required by §8's ingest/search round-trip,
// could never resolve.
var reservedDescriptors = map[string]*field.Descriptor{
	"id":           {Name: "id", Kind: field.ExactText},
	"type":         {Name: "type", Kind: field.ExactText},
	"lastmodified": {Name: "lastmodified", Kind: field.Long},
	"version":      {Name: "version", Kind: field.Int, StoredOnly: true},
}
