// Package oaserrors provides structured error types for restoas.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the failure kinds of
// the reader and the resolver.
//
// # Error Categories
//
//   - SpecLoadError: specification unreadable, not JSON/YAML, or rejected by the parser
//   - UnknownOperationError: operationId not present in the specification
//   - HostIndeterminateError: no host could be derived for outbound requests
//   - InvalidArgumentError: empty or malformed endpoint options
//   - TypeResolutionError: a referenced type could not be resolved by the class resolver
//   - EnumCoercionError: an allowable value could not be coerced to the array element type
//   - ParseError: YAML/JSON decoding failures and structural issues
//   - ValidationError: generated documents rejected by a conformance check
//   - ConfigError: invalid configuration files or environment overrides
//
// # Usage with errors.Is
//
//	desc, err := res.CreateEndpoint(ctx, "petstore.json", "deletePet", resolver.EndpointOptions{})
//	if errors.Is(err, oaserrors.ErrUnknownOperation) {
//	    var opErr *oaserrors.UnknownOperationError
//	    if errors.As(err, &opErr) {
//	        fmt.Println("available:", opErr.Available)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSpecLoad indicates the specification could not be loaded.
	ErrSpecLoad = errors.New("specification load error")

	// ErrUnknownOperation indicates the requested operationId was not found.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrHostIndeterminate indicates no host could be resolved.
	ErrHostIndeterminate = errors.New("host indeterminate")

	// ErrInvalidArgument indicates an empty or malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeResolution indicates a referenced type could not be resolved.
	ErrTypeResolution = errors.New("type resolution error")

	// ErrEnumCoercion indicates an allowable value could not be coerced.
	ErrEnumCoercion = errors.New("enum coercion error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a document failed a conformance check.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SpecLoadError represents a failure to load a specification from a URI.
type SpecLoadError struct {
	// URI is the specification URI that was requested
	URI string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SpecLoadError) Error() string {
	msg := "the given specification could not be loaded"
	if e.URI != "" {
		msg += " from `" + e.URI + "`"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SpecLoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecLoadError) Is(target error) bool {
	return target == ErrSpecLoad
}

// UnknownOperationError reports an operationId that no path defines.
type UnknownOperationError struct {
	// OperationID is the requested operation
	OperationID string
	// SpecificationURI is where the specification was loaded from
	SpecificationURI string
	// Available lists every operationId found, in traversal order
	Available []string
}

// Error returns a human-readable error message.
func (e *UnknownOperationError) Error() string {
	msg := "the specified operation with ID: `" + e.OperationID + "` cannot be found"
	if e.SpecificationURI != "" {
		msg += " in the specification loaded from `" + e.SpecificationURI + "`"
	}
	msg += ". Operations defined in the specification are: " + strings.Join(e.Available, ", ")
	return msg
}

// Is reports whether target matches this error type.
func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrUnknownOperation
}

// HostIndeterminateError reports that no host could be derived.
type HostIndeterminateError struct {
	// ComponentName is the component name the endpoint was addressed with
	ComponentName string
	// DefaultComponent is the name of the default REST configuration
	DefaultComponent string
}

// Error returns a human-readable error message.
func (e *HostIndeterminateError) Error() string {
	components := "`" + e.DefaultComponent + "` component"
	if e.ComponentName != "" && e.ComponentName != e.DefaultComponent {
		components = "`" + e.ComponentName + "` or `" + e.DefaultComponent + "` components"
	}
	return "unable to determine destination host for requests: the specification does not specify" +
		" `schemes` and `host`, the specification URI is not absolute with `http` or `https` scheme," +
		" and no REST configurations with `scheme`, `host` and `port` were found for " + components +
		" and there is no global REST configuration with those properties"
}

// Is reports whether target matches this error type.
func (e *HostIndeterminateError) Is(target error) bool {
	return target == ErrHostIndeterminate
}

// InvalidArgumentError represents an empty or malformed argument.
type InvalidArgumentError struct {
	// Argument is the name of the argument
	Argument string
	// Value is the rejected value (may be nil)
	Value any
	// Message describes why the value was rejected
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *InvalidArgumentError) Error() string {
	msg := "invalid argument"
	if e.Argument != "" {
		msg += " " + e.Argument
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// TypeResolutionError reports a type name the class resolver could not load.
type TypeResolutionError struct {
	// TypeName is the fully qualified name that was requested
	TypeName string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *TypeResolutionError) Error() string {
	msg := "cannot resolve type"
	if e.TypeName != "" {
		msg += " " + e.TypeName
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TypeResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TypeResolutionError) Is(target error) bool {
	return target == ErrTypeResolution
}

// EnumCoercionError reports an allowable value that does not convert to the
// declared array element type.
type EnumCoercionError struct {
	// Parameter is the parameter name
	Parameter string
	// ElementType is the declared array element type
	ElementType string
	// Value is the allowable value that failed
	Value string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *EnumCoercionError) Error() string {
	msg := "enum coercion error"
	if e.Parameter != "" {
		msg += " for parameter " + e.Parameter
	}
	msg += fmt.Sprintf(": cannot convert %q to %s", e.Value, e.ElementType)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *EnumCoercionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *EnumCoercionError) Is(target error) bool {
	return target == ErrEnumCoercion
}

// ParseError represents a failure to parse a document or route file.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a document rejected by a conformance check.
type ValidationError struct {
	// Path is the location of the problem, when known
	Path string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
