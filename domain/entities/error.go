package entities

import (
	"fmt"
	"strings"
)

// ErrorDetail is the data form of an error reported by the export table.
// Type is one of: registration, not_found, argument, handle, panic, config,
// internal.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// Code narrows Type: the export name, the handle, or the config field.
	Code string `json:"code,omitempty"`

	IsNotFound bool `json:"is_not_found,omitempty"`
}

func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.Type != "" && e.Type != "internal" {
		b.WriteString(e.Type)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	return b.String()
}

// NewErrorDetail returns an ErrorDetail of the given type.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{Type: errorType, Message: message}
}
