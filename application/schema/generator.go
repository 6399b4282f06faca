// Package schema generates JSON schemas for the bridge's wire documents.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/wireformat"
	"github.com/invopop/jsonschema"
)

// SchemaID is the $id stamped on the manifest schema.
const SchemaID = "https://github.com/0-don/monero-ts/schemas/manifest.json"

// GenerateSchema creates a JSON schema (Draft 2020-12) from a Go struct.
func GenerateSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, &errors.SchemaError{Type: reflect.TypeOf(v).String(), Err: fmt.Errorf("failed to marshal schema: %w", err)}
	}

	return jsonBytes, nil
}

// ManifestSchema returns the schema of wireformat.Manifest, the document
// served by GET /exports and printed by -list.
func ManifestSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&wireformat.Manifest{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "monero-ts export manifest"

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, &errors.SchemaError{Type: "wireformat.Manifest", Err: err}
	}
	return jsonBytes, nil
}
