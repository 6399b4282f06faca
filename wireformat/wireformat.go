// Package wireformat defines the JSON structures exchanged with hosts that talk
// to the export table as data (the HTTP surface, manifests, guest log records).
// These types must remain stable and backward compatible.
package wireformat

import (
	"encoding/json"
	"time"
)

// ManifestVersion is bumped on any incompatible change to Manifest.
const ManifestVersion = 1

// Manifest describes the complete export table.
type Manifest struct {
	Module  string             `json:"module" jsonschema:"description=Host module name the exports are installed under"`
	Exports []ExportDescriptor `json:"exports"`
	Version int                `json:"version"`
}

// ExportDescriptor describes one export entry.
type ExportDescriptor struct {
	Name   string   `json:"name"`
	Module string   `json:"module" jsonschema:"description=Logical group; wallet and utils are built in and extra exports may add others"`
	Result string   `json:"result" jsonschema:"enum=void,enum=bool,enum=i32,enum=i64,enum=f64,enum=string,enum=bytes,enum=handle"`
	Params []string `json:"params"`
}

// InvokeRequest is the JSON body of a call. Each argument is decoded
// according to the export's parameter kind.
type InvokeRequest struct {
	Args []json.RawMessage `json:"args,omitempty"`
}

// InvokeResponse is the JSON body of a successful call.
type InvokeResponse struct {
	Result any    `json:"result,omitempty"`
	Kind   string `json:"kind"`
}

// GuestLogWire is the JSON record a WASM guest passes to log_message.
type GuestLogWire struct {
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
}
