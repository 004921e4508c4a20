package settingsbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enielezi/FlexSearch/analyzer"
	"github.com/Enielezi/FlexSearch/field"
)

func validDefinition() *Definition {
	return &Definition{
		Name:           "products",
		ShardCount:     1,
		IndexAnalyzer:  "standard",
		SearchAnalyzer: "standard",
		Fields: []FieldDefinition{
			{Name: "title", Kind: "Text"},
		},
	}
}

func TestBuildAcceptsValidDefinition(t *testing.T) {
	setting, validator, err := Build(validDefinition(), analyzer.NewRegistry(), nil)
	require.NoError(t, err)
	require.Nil(t, validator)
	assert.Equal(t, "products", setting.Name)
	require.Contains(t, setting.FieldMap, "title")
}

func TestBuildRejectsEmptyName(t *testing.T) {
	def := validDefinition()
	def.Name = "  "
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsZeroShardCount(t *testing.T) {
	def := validDefinition()
	def.ShardCount = 0
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsCustomAnalyzerWithNoFilters(t *testing.T) {
	def := validDefinition()
	def.CustomAnalyzers = []CustomAnalyzerDefinition{{Name: "custom1"}}
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRegistersValidCustomAnalyzer(t *testing.T) {
	def := validDefinition()
	def.CustomAnalyzers = []CustomAnalyzerDefinition{{Name: "custom1", TokenFilters: []string{"lowercase"}}}
	reg := analyzer.NewRegistry()
	_, _, err := Build(def, reg, nil)
	require.NoError(t, err)

	_, ok := reg.Resolve("custom1")
	assert.True(t, ok)
}

func TestBuildRejectsUnresolvedIndexAnalyzer(t *testing.T) {
	def := validDefinition()
	def.IndexAnalyzer = "nope"
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsUnresolvedSearchAnalyzer(t *testing.T) {
	def := validDefinition()
	def.SearchAnalyzer = "nope"
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsUnrecognizedFieldKind(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{{Name: "title", Kind: "Weird"}}
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsReservedFieldName(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{{Name: "id", Kind: "Text"}}
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsDuplicateFieldNames(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "title", Kind: "Text"},
		{Name: "Title", Kind: "Text"},
	}
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildRejectsInvalidJSONSchema(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "meta", Kind: "Custom", JSONSchema: "not json"},
	}
	_, _, err := Build(def, analyzer.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestBuildCompilesSchemaAndReturnsValidator(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "meta", Kind: "Custom", JSONSchema: `{"type": "object", "required": ["sku"]}`},
	}
	setting, validator, err := Build(def, analyzer.NewRegistry(), nil)
	require.NoError(t, err)
	require.NotNil(t, setting)
	require.NotNil(t, validator)
	require.NotNil(t, setting.Validator)
	assert.Error(t, setting.Validator.ValidateDocument(map[string]string{"meta": `{}`}))
}

func TestBuildWiresValueSourceScript(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "title", Kind: "Text", ValueSourceScript: "some_script"},
	}
	evalString := func(script string, fields map[string]string) (string, error) {
		assert.Equal(t, "some_script", script)
		return "computed", nil
	}
	setting, _, err := Build(def, analyzer.NewRegistry(), evalString)
	require.NoError(t, err)

	desc := setting.FieldMap["title"]
	require.NotNil(t, desc.ValueSource)
	out, err := desc.ValueSource(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "computed", out)
}

func TestValidatorValidateDocumentNilReceiverIsSafe(t *testing.T) {
	var v *Validator
	assert.NoError(t, v.ValidateDocument(map[string]string{"meta": "{}"}))
}

func TestValidatorValidateDocumentPassesValidDocument(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "meta", Kind: "Custom", JSONSchema: `{"type": "object", "required": ["sku"]}`},
	}
	_, validator, err := Build(def, analyzer.NewRegistry(), nil)
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateDocument(map[string]string{"meta": `{"sku": "abc"}`}))
}

func TestValidatorValidateDocumentFailsInvalidDocument(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "meta", Kind: "Custom", JSONSchema: `{"type": "object", "required": ["sku"]}`},
	}
	_, validator, err := Build(def, analyzer.NewRegistry(), nil)
	require.NoError(t, err)

	err = validator.ValidateDocument(map[string]string{"meta": `{}`})
	assert.Error(t, err)
}

func TestValidatorValidateDocumentSkipsAbsentField(t *testing.T) {
	def := validDefinition()
	def.Fields = []FieldDefinition{
		{Name: "meta", Kind: "Custom", JSONSchema: `{"type": "object", "required": ["sku"]}`},
	}
	_, validator, err := Build(def, analyzer.NewRegistry(), nil)
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateDocument(map[string]string{}))
}

func TestParseFieldKindDefaultsToText(t *testing.T) {
	assert.Equal(t, field.Text, parseFieldKind("bogus"))
	assert.Equal(t, field.Bool, parseFieldKind("Bool"))
}
