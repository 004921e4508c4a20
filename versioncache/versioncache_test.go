package versioncache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenGet(t *testing.T) {
	c := New()
	require.True(t, c.Add("idx", "1", 1))

	cell, ok := c.Get("idx", "1")
	require.True(t, ok)
	assert.Equal(t, 1, cell.Version)
}

func TestAddTwiceFailsSecondTime(t *testing.T) {
	c := New()
	require.True(t, c.Add("idx", "1", 1))
	assert.False(t, c.Add("idx", "1", 1))
}

func TestUpdateCASSucceedsOnMatch(t *testing.T) {
	c := New()
	c.Add("idx", "1", 1)
	cell, _ := c.Get("idx", "1")

	ok := c.Update("idx", "1", cell.Version, cell.Timestamp, 2)
	require.True(t, ok)

	updated, _ := c.Get("idx", "1")
	assert.Equal(t, 2, updated.Version)
}

func TestUpdateCASFailsOnStaleVersion(t *testing.T) {
	c := New()
	c.Add("idx", "1", 1)
	cell, _ := c.Get("idx", "1")

	// simulate a racing updater winning first
	require.True(t, c.Update("idx", "1", cell.Version, cell.Timestamp, 2))

	// the loser retries with the now-stale (version, timestamp) pair
	assert.False(t, c.Update("idx", "1", cell.Version, cell.Timestamp, 2))
}

func TestUpdateCASFailsWhenAbsent(t *testing.T) {
	c := New()
	assert.False(t, c.Update("idx", "missing", 1, time.Now(), 2))
}

func TestDeleteRemovesEntry(t *testing.T) {
	c := New()
	c.Add("idx", "1", 1)
	c.Delete("idx", "1")
	_, ok := c.Get("idx", "1")
	assert.False(t, ok)
}

func TestDeleteIndexRemovesOnlyThatIndex(t *testing.T) {
	c := New()
	c.Add("idx1", "1", 1)
	c.Add("idx2", "1", 1)
	c.DeleteIndex("idx1")

	_, ok1 := c.Get("idx1", "1")
	_, ok2 := c.Get("idx2", "1")
	assert.False(t, ok1)
	assert.True(t, ok2)
}
