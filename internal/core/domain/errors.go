package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a transaction-set code with no
	// registered descriptor or mapper.
	ErrUnsupportedType = errors.New("unsupported message type")

	// ErrFormat indicates the interchange text is too malformed to
	// tokenize. Always fatal: no body is produced.
	ErrFormat = errors.New("format error")

	// ErrMapping indicates a required field was absent during mapping.
	// Fatal for the message; validation messages are still returned.
	ErrMapping = errors.New("mapping error")

	// ErrInternal indicates an unexpected engine fault. Its message
	// never exposes internal state.
	ErrInternal = errors.New("internal error")
)

// FormatError reports unparseable interchange text. It wraps ErrFormat
// so callers can match with errors.Is.
type FormatError struct {
	// Reason describes what made the text unparseable.
	Reason string
}

func (e *FormatError) Error() string {
	return "format error: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// MappingError reports a required field that could not be mapped.
// It wraps ErrMapping so callers can match with errors.Is.
type MappingError struct {
	// Field is the semantic field that could not be populated.
	Field string

	// Reason describes why, typically a missing source segment.
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping error: field %s: %s", e.Field, e.Reason)
}

func (e *MappingError) Unwrap() error {
	return ErrMapping
}
