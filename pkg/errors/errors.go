// Package errors provides custom error types for the fredclient system.
// These errors enable programmatic error checking with errors.Is and errors.As,
// and carry enough detail (parameter names, expected types, status codes, raw
// response bodies) to diagnose a failed call without re-running it.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the fredclient system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrTransport indicates that the HTTP layer could not complete a request
	ErrTransport = errors.New("transport failure")

	// ErrHTTPStatus indicates that the upstream answered with a 4xx or 5xx status
	ErrHTTPStatus = errors.New("HTTP error status")

	// ErrMalformedResponse indicates that the upstream body was not valid JSON
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates that the upstream is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// UnknownOperationError is returned when an operation name is not in the registry.
type UnknownOperationError struct {
	Operation string
}

// Error implements the error interface
func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Operation)
}

// Is implements errors.Is support
func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrNotFound
}

// NewUnknownOperationError creates a new UnknownOperationError
func NewUnknownOperationError(operation string) *UnknownOperationError {
	return &UnknownOperationError{Operation: operation}
}

// MissingParameterError is returned when a required parameter is absent or nil.
type MissingParameterError struct {
	Operation string
	Parameter string
}

// Error implements the error interface
func (e *MissingParameterError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: missing required parameter %q", e.Operation, e.Parameter)
	}
	return fmt.Sprintf("missing required parameter %q", e.Parameter)
}

// Is implements errors.Is support
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewMissingParameterError creates a new MissingParameterError
func NewMissingParameterError(operation, parameter string) *MissingParameterError {
	return &MissingParameterError{Operation: operation, Parameter: parameter}
}

// InvalidParameterTypeError is returned when a declared parameter holds a value
// of the wrong primitive type.
type InvalidParameterTypeError struct {
	Operation string
	Parameter string
	Expected  string
	Value     any
}

// Error implements the error interface
func (e *InvalidParameterTypeError) Error() string {
	msg := fmt.Sprintf("parameter %q must be of type %s, got %T (%v)", e.Parameter, e.Expected, e.Value, e.Value)
	if e.Operation != "" {
		return e.Operation + ": " + msg
	}
	return msg
}

// Is implements errors.Is support
func (e *InvalidParameterTypeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidParameterTypeError creates a new InvalidParameterTypeError
func NewInvalidParameterTypeError(operation, parameter, expected string, value any) *InvalidParameterTypeError {
	return &InvalidParameterTypeError{
		Operation: operation,
		Parameter: parameter,
		Expected:  expected,
		Value:     value,
	}
}

// TransportError wraps a failure of the HTTP layer (DNS, connect, timeout).
type TransportError struct {
	Operation string
	Endpoint  string
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Operation, e.Endpoint, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a new TransportError
func NewTransportError(operation, endpoint string, err error) *TransportError {
	return &TransportError{Operation: operation, Endpoint: endpoint, Err: err}
}

// HTTPStatusError represents a 4xx or 5xx answer from the upstream.
// Body holds the raw response text; it is never parsed.
type HTTPStatusError struct {
	Operation  string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s: %s returned status %d (%s)", e.Operation, e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is implements errors.Is support
func (e *HTTPStatusError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrProviderUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// NewHTTPStatusError creates a new HTTPStatusError
func NewHTTPStatusError(operation, endpoint string, statusCode int, body string) *HTTPStatusError {
	return &HTTPStatusError{
		Operation:  operation,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
	}
}

// MalformedResponseError is returned when a successful response body is not JSON.
type MalformedResponseError struct {
	Operation string
	Endpoint  string
	Body      string
	Err       error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: expected JSON from %s, got non-JSON response:\n%s", e.Operation, e.Endpoint, e.Body)
}

// Unwrap implements errors.Unwrap
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// NewMalformedResponseError creates a new MalformedResponseError
func NewMalformedResponseError(operation, endpoint, body string, err error) *MalformedResponseError {
	return &MalformedResponseError{
		Operation: operation,
		Endpoint:  endpoint,
		Body:      body,
		Err:       err,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
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
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
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
	Operation string // "read", "write", "open"
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

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired)
}

// IsTransport checks if an error is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsHTTPStatus checks if an error is an upstream error status
func IsHTTPStatus(err error) bool {
	return errors.Is(err, ErrHTTPStatus)
}

// IsMalformedResponse checks if an error is a non-JSON response
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// StatusCode returns the upstream status code carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Helper wrapping functions for common patterns

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

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
