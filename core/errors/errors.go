// Package errors provides the error kinds raised by the CDL parsers, writers and registry.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for each error kind. Every typed error below unwraps to one of these.
var (
	// ErrStructural indicates file content that violates the shape of its format
	ErrStructural = errors.New("structural parse error")
	// ErrValue indicates a numeric field that cannot be interpreted as a number
	ErrValue = errors.New("value parse error")
	// ErrUnsupported indicates no parser or writer exists for a format
	ErrUnsupported = errors.New("unsupported format")
	// ErrDuplicateID indicates a color correction id that is already registered
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnresolved indicates a reference or lookup whose target does not exist
	ErrUnresolved = errors.New("unresolved reference")
	// ErrInvalidValue indicates a value outside the range a CDL field accepts
	ErrInvalidValue = errors.New("invalid value")
	// ErrWrongChild indicates a child that does not fit a collection's mode
	ErrWrongChild = errors.New("wrong collection child")
)

// StructuralError represents file content that does not match the required shape of a format.
type StructuralError struct {
	Format  string // Format being parsed (e.g., "CC", "ALE", "RNH")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *StructuralError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *StructuralError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrStructural, e.Err}
	}
	return []error{ErrStructural}
}

// ValueError represents a field whose text is not a number.
type ValueError struct {
	Field string // Field being converted (e.g., "slope")
	Value string // Offending text
	Err   error  // Underlying conversion error, if any
}

func (e *ValueError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cannot convert %s value %q to a number", e.Field, e.Value)
	}
	return fmt.Sprintf("cannot convert %q to a number", e.Value)
}

func (e *ValueError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValue, e.Err}
	}
	return []error{ErrValue}
}

// UnsupportedError represents an unsupported format or format/entity combination.
type UnsupportedError struct {
	Feature string // Format or feature that is unsupported
	Reason  string // Why it's not supported
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// DuplicateIDError represents a second color correction registered under an existing id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("color correction id %q is already registered", e.ID)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}

// UnresolvedError represents a reference id with no registered color correction.
type UnresolvedError struct {
	ID string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no color correction registered with id %q", e.ID)
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolved
}

// InvalidValueError represents a value rejected by a field's range check.
type InvalidValueError struct {
	Field   string // Field name (e.g., "power")
	Value   string // Value as written
	Message string // Human-readable reason
}

func (e *InvalidValueError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s value %s: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid value: %s", e.Message)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewStructural creates a StructuralError
func NewStructural(format, path, message string) *StructuralError {
	return &StructuralError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewValue creates a ValueError
func NewValue(field, value string, err error) *ValueError {
	return &ValueError{
		Field: field,
		Value: value,
		Err:   err,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// NewDuplicateID creates a DuplicateIDError
func NewDuplicateID(id string) *DuplicateIDError {
	return &DuplicateIDError{ID: id}
}

// NewUnresolved creates an UnresolvedError
func NewUnresolved(id string) *UnresolvedError {
	return &UnresolvedError{ID: id}
}

// NewInvalidValue creates an InvalidValueError
func NewInvalidValue(field, value, message string) *InvalidValueError {
	return &InvalidValueError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// New wraps errors.New for convenience
func New(text string) error {
	return errors.New(text)
}

// Join wraps errors.Join for convenience
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
