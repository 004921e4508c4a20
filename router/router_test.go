package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardOfIsDeterministic(t *testing.T) {
	a := ShardOf("document-42", 8)
	b := ShardOf("document-42", 8)
	assert.Equal(t, a, b)
}

func TestShardOfWithinRange(t *testing.T) {
	for _, id := range []string{"a", "some-long-id", "", "unicode-éè"} {
		shard := ShardOf(id, 4)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, 4)
	}
}

func TestShardOfMatchesCodepointSum(t *testing.T) {
	sum := 0
	for _, r := range "ab" {
		sum += int(r)
	}
	assert.Equal(t, sum%3, ShardOf("ab", 3))
}

func TestShardOfZeroShardsIsSafe(t *testing.T) {
	assert.Equal(t, 0, ShardOf("anything", 0))
}
