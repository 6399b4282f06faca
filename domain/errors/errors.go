// Package errors provides domain-specific error types for the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/0-don/monero-ts/domain/entities"
)

// Sentinel errors. Typed errors below match these through Is.
var (
	// ErrNotInitialized is returned when the export table is queried before Init.
	ErrNotInitialized = stdErrors.New("export table not initialized")

	// ErrAlreadyInitialized is returned by a second Init in the same process.
	ErrAlreadyInitialized = stdErrors.New("export table already initialized")

	// ErrNotFound matches any NotFoundError.
	ErrNotFound = stdErrors.New("export not found")

	// ErrDuplicateExport matches any DuplicateExportError.
	ErrDuplicateExport = stdErrors.New("duplicate export name")

	// ErrUnknownHandle matches any HandleError.
	ErrUnknownHandle = stdErrors.New("unknown handle")
)

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	switch {
	case stdErrors.Is(err, ErrNotInitialized):
		return &entities.ErrorDetail{Message: err.Error(), Type: "registration", Code: "not_initialized"}
	case stdErrors.Is(err, ErrAlreadyInitialized):
		return &entities.ErrorDetail{Message: err.Error(), Type: "registration", Code: "already_initialized"}
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// DuplicateExportError is a registration-time defect: two entries share a name.
type DuplicateExportError struct {
	Name string
}

func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("duplicate export name: %q", e.Name)
}

func (e *DuplicateExportError) Is(target error) bool {
	return target == ErrDuplicateExport
}

// ToErrorDetail implements DetailedError.
func (e *DuplicateExportError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "registration", Code: e.Name}
}

// SignatureError is a registration-time defect in a single entry
// (bad name, missing function, illegal kind).
type SignatureError struct {
	Name   string
	Reason string
}

func (e *SignatureError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid export: %s", e.Reason)
	}
	return fmt.Sprintf("invalid export %q: %s", e.Name, e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *SignatureError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "registration", Code: e.Name}
}

// NotFoundError is returned when a name is not in the export table.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown export: %s", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Name, IsNotFound: true}
}

// ArgumentError reports a call whose arguments do not match the export signature.
type ArgumentError struct {
	Export string
	Reason string
	Index  int // -1 when the arity itself is wrong
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Export, e.Reason)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Export, e.Index, e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "argument", Code: e.Export}
}

// HandleError is returned by collaborators for handles they did not issue
// or have already released.
type HandleError struct {
	Handle entities.Handle
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("unknown wallet %s", e.Handle)
}

func (e *HandleError) Is(target error) bool {
	return target == ErrUnknownHandle
}

// ToErrorDetail implements DetailedError.
func (e *HandleError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "handle", Code: e.Handle.String()}
}

// PanicError wraps a value recovered from a panicking export.
type PanicError struct {
	Value  any
	Export string
}

func (e *PanicError) Error() string {
	var msg string
	switch v := e.Value.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = "panic recovered"
	}
	if e.Export != "" {
		return fmt.Sprintf("panic in %s: %s", e.Export, msg)
	}
	return "panic: " + msg
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ToErrorDetail implements DetailedError.
func (e *PanicError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "panic", Code: e.Export}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "schema"}
}
