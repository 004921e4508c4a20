package indexmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enielezi/FlexSearch/querycompiler"
)

func TestRuntimeExposesSettingDerivedAccessors(t *testing.T) {
	m := newTestManager(t)
	setting := testSetting(t, "products")
	setting.ShardCount = 2
	setting.Scripts = map[string]string{"pick": `"default"`}
	setting.SearchProfiles = map[string]*querycompiler.Filter{"default": {Type: querycompiler.And}}
	require.NoError(t, m.Add(setting, true))

	rt, ok := m.Resolve("products")
	require.True(t, ok)

	assert.Equal(t, "products", rt.Name())
	assert.Equal(t, 2, rt.ShardCount())
	require.NotNil(t, rt.Shard(0))
	require.NotNil(t, rt.Shard(1))

	desc, ok := rt.Field("TITLE")
	require.True(t, ok)
	assert.Equal(t, "title", desc.Name)

	assert.NotNil(t, rt.Versioning())

	tok, ok := rt.Analyzer("standard")
	require.True(t, ok)
	assert.Equal(t, []string{"hello"}, tok.TokenizeText("Hello"))

	_, ok = rt.Analyzer("nonexistent")
	assert.False(t, ok)

	profile, ok := rt.Profile("default")
	require.True(t, ok)
	assert.Equal(t, querycompiler.And, profile.Type)

	fn, ok := rt.SelectorScript("pick")
	require.True(t, ok)
	out, err := fn(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "default", out)

	_, ok = rt.SelectorScript("missing")
	assert.False(t, ok)
}

func TestRuntimeFieldResolvesReservedFields(t *testing.T) {
	m := newTestManager(t)
	setting := testSetting(t, "products")
	require.NoError(t, m.Add(setting, true))

	rt, ok := m.Resolve("products")
	require.True(t, ok)

	desc, ok := rt.Field("id")
	require.True(t, ok)
	assert.False(t, desc.StoredOnly)

	desc, ok = rt.Field("TYPE")
	require.True(t, ok)
	assert.False(t, desc.StoredOnly)

	desc, ok = rt.Field("lastmodified")
	require.True(t, ok)
	assert.False(t, desc.StoredOnly)

	desc, ok = rt.Field("version")
	require.True(t, ok)
	assert.True(t, desc.StoredOnly)

	_, ok = rt.Field("nonexistent")
	assert.False(t, ok)
}
