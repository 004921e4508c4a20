package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistanceWithinPrefix(t *testing.T) {
	assert.Equal(t, 0, editDistanceWithinPrefix("hello", "hello", 0))
	assert.Equal(t, 1, editDistanceWithinPrefix("hello", "hallo", 0))
	// shared prefix "hel" is free; only the "lo" vs "p" tail is scored
	assert.Equal(t, 2, editDistanceWithinPrefix("hello", "help", 3))
}

func TestPhraseWithinSlop(t *testing.T) {
	tokens := []string{"the", "quick", "brown", "fox"}
	assert.True(t, phraseWithinSlop(tokens, []string{"quick", "brown"}, 0))
	assert.True(t, phraseWithinSlop(tokens, []string{"quick", "fox"}, 1))
	assert.False(t, phraseWithinSlop(tokens, []string{"quick", "fox"}, 0))
	assert.False(t, phraseWithinSlop(tokens, []string{}, 0))
}

func TestWildcardMatch(t *testing.T) {
	assert.True(t, wildcardMatch("h*o", "hello"))
	assert.True(t, wildcardMatch("h?llo", "hello"))
	assert.False(t, wildcardMatch("h?llo", "heello"))
	assert.True(t, wildcardMatch("*", "anything"))
	assert.False(t, wildcardMatch("abc", "abcd"))
}
