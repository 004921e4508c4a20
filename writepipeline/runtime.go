package writepipeline

import (
	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/shard"
	"github.com/Enielezi/FlexSearch/versioncache"
)

// IndexRuntime is the slice of an online index's runtime state the write
// pipeline needs: its shard array, field map, and versioning cache.
// indexmanager's Runtime satisfies this; the interface lives here (the
// consumer) rather than in indexmanager, to avoid a dependency cycle
// between the two packages.
type IndexRuntime interface {
	Name() string
	ShardCount() int
	Shard(i int) *shard.Shard
	Fields() map[string]*field.Descriptor
	Versioning() *versioncache.Cache
	ValidateDocument(values map[string]string) error
}

// Resolver resolves a live index runtime by name. It returns ok == false
// if the index is not currently Online — the write pipeline never builds
// or caches runtimes itself; that is indexmanager's responsibility (C6).
type Resolver func(index string) (IndexRuntime, bool)
