// Package errors provides custom error types for the feet system.
// These errors enable programmatic error checking with errors.Is and
// errors.As while keeping messages readable for the person running the tool.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As mirror the standard library so callers need a single import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the feet system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchema indicates that a document does not match the expected table layout
	ErrSchema = errors.New("document schema violation")

	// ErrMisaligned indicates a court that has no place in the court ordering
	ErrMisaligned = errors.New("court misaligned")

	// ErrFetch indicates that a fixtures page could not be retrieved
	ErrFetch = errors.New("fetch failed")

	// ErrPageTooLarge indicates a fetched page exceeded the size limit
	ErrPageTooLarge = errors.New("page too large")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// SchemaError reports a worksheet row found in a shape the reconciler
// cannot interpret, such as an unparsable time cell. It is always fatal.
type SchemaError struct {
	Sheet   string
	Cell    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("schema violation in sheet %q at %s: %s", e.Sheet, e.Cell, e.Message)
	}
	return fmt.Sprintf("schema violation in sheet %q: %s", e.Sheet, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(sheet, cell, message string, err error) *SchemaError {
	return &SchemaError{
		Sheet:   sheet,
		Cell:    cell,
		Message: message,
		Err:     err,
	}
}

// CourtError reports a court number outside the known court range.
type CourtError struct {
	Venue string
	Court int
}

// Error implements the error interface
func (e *CourtError) Error() string {
	if e.Venue != "" {
		return fmt.Sprintf("court %d at %s has no defined ordinal", e.Court, e.Venue)
	}
	return fmt.Sprintf("court %d has no defined ordinal", e.Court)
}

// Is implements errors.Is support
func (e *CourtError) Is(target error) bool {
	return target == ErrMisaligned
}

// NewCourtError creates a new CourtError
func NewCourtError(venue string, court int) *CourtError {
	return &CourtError{Venue: venue, Court: court}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "html", "time", ...
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "save"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// FetchError represents a failed request for a fixtures page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Retryable reports whether another attempt could succeed.
func (e *FetchError) Retryable() bool {
	if errors.Is(e.Err, ErrPageTooLarge) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSchemaError checks if an error is a document schema violation
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsMisaligned checks if an error is a court misalignment
func IsMisaligned(err error) bool {
	return errors.Is(err, ErrMisaligned)
}

// IsFetchError checks if an error came from fetching a page
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetch)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSchema wraps an error as a SchemaError
func WrapSchema(sheet, cell string, err error) error {
	if err == nil {
		return nil
	}
	return NewSchemaError(sheet, cell, err.Error(), err)
}
