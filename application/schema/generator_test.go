package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type SimpleConfig struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	schema, err := GenerateSchema(SimpleConfig{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(schema, &decoded))

	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "host")
	assert.Contains(t, props, "port")
}

func TestManifestSchema(t *testing.T) {
	schema, err := ManifestSchema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(schema, &decoded))

	assert.Equal(t, SchemaID, decoded["$id"])
	assert.Equal(t, "monero-ts export manifest", decoded["title"])

	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"module", "exports", "version"} {
		assert.Contains(t, props, key)
	}

	// Kinds are closed; the schema lists them.
	assert.Contains(t, string(schema), `"handle"`)
	assert.Contains(t, string(schema), `"void"`)

	// Module groups are open: extra exports may use any label.
	exports := props["exports"].(map[string]any)
	item := exports["items"].(map[string]any)
	if ref, ok := item["$ref"].(string); ok {
		defs := decoded["$defs"].(map[string]any)
		item = defs[ref[len("#/$defs/"):]].(map[string]any)
	}
	itemProps := item["properties"].(map[string]any)
	module := itemProps["module"].(map[string]any)
	assert.NotContains(t, module, "enum")
	assert.Contains(t, itemProps["result"], "enum")
}
