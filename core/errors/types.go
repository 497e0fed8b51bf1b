// ABOUTME: Custom error types for the marketplace client
// ABOUTME: Provides the full error taxonomy used for retry and recovery decisions

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource that is absent on the server.
// Depending on the operation this is either surfaced or converted to an
// empty result by the caller.
type NotFoundError struct {
	Resource string
	URI      string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.URI)
}

// ServiceUnavailableError represents a server that refused service.
// It is terminal for the current request and is not retried.
type ServiceUnavailableError struct {
	URI     string
	Message string
}

// Error implements the error interface
func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("service unavailable for %s: %s", e.URI, e.Message)
}

// NotAuthorizedError represents an authorization-required or forbidden
// response. It is never retried.
type NotAuthorizedError struct {
	URI     string
	Message string
}

// Error implements the error interface
func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized for %s: %s", e.URI, e.Message)
}

// ConflictError represents an optimistic write collision on a stored blob.
// The mutating favorites operations retry these; nothing else does.
type ConflictError struct {
	Key     string
	Message string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting write on %q: %s", e.Key, e.Message)
}

// MalformedContentError represents a response body that could not be
// decoded. It carries a short preview of the raw response for diagnostics
// and is never retried.
type MalformedContentError struct {
	URI     string
	Preview string
	Cause   error
}

// Error implements the error interface
func (e *MalformedContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed content from %s: %v (preview: %s)", e.URI, e.Cause, e.Preview)
	}
	return fmt.Sprintf("malformed content from %s (preview: %s)", e.URI, e.Preview)
}

// Unwrap returns the underlying decode error
func (e *MalformedContentError) Unwrap() error {
	return e.Cause
}

// CancelledError represents cooperative cancellation observed during an
// operation. It is a dedicated outcome, not a failure: it is never retried
// and never logged as an error.
type CancelledError struct {
	URI string
}

// Error implements the error interface
func (e *CancelledError) Error() string {
	if e.URI == "" {
		return "operation cancelled"
	}
	return fmt.Sprintf("operation cancelled during %s", e.URI)
}

// TransientTransportError represents a recoverable network condition as
// classified by the transport. The request executor retries these up to its
// fixed attempt budget.
type TransientTransportError struct {
	URI   string
	Cause error
}

// Error implements the error interface
func (e *TransientTransportError) Error() string {
	return fmt.Sprintf("transient transport failure for %s: %v", e.URI, e.Cause)
}

// Unwrap returns the underlying transport error
func (e *TransientTransportError) Unwrap() error {
	return e.Cause
}

// ConnectionProblemError is the escalation of a transient transport failure
// that survived every retry attempt.
type ConnectionProblemError struct {
	URI   string
	Cause error
}

// Error implements the error interface
func (e *ConnectionProblemError) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.URI, e.Cause)
}

// Unwrap returns the terminal transient error
func (e *ConnectionProblemError) Unwrap() error {
	return e.Cause
}

// UnexpectedResponseError represents a structurally valid response whose
// shape does not match the operation, such as a wrong entity count. It is
// treated like malformed content and never retried.
type UnexpectedResponseError struct {
	URI     string
	Message string
}

// Error implements the error interface
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.URI, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsServiceUnavailable checks if an error is a ServiceUnavailableError
func IsServiceUnavailable(err error) bool {
	var unavailableErr *ServiceUnavailableError
	return errors.As(err, &unavailableErr)
}

// IsNotAuthorized checks if an error is a NotAuthorizedError
func IsNotAuthorized(err error) bool {
	var authErr *NotAuthorizedError
	return errors.As(err, &authErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsMalformedContent checks if an error is a MalformedContentError
func IsMalformedContent(err error) bool {
	var malformedErr *MalformedContentError
	return errors.As(err, &malformedErr)
}

// IsCancelled checks if an error is a CancelledError
func IsCancelled(err error) bool {
	var cancelledErr *CancelledError
	return errors.As(err, &cancelledErr)
}

// IsTransientTransport checks if an error is a TransientTransportError
func IsTransientTransport(err error) bool {
	var transientErr *TransientTransportError
	return errors.As(err, &transientErr)
}

// IsConnectionProblem checks if an error is a ConnectionProblemError
func IsConnectionProblem(err error) bool {
	var connErr *ConnectionProblemError
	return errors.As(err, &connErr)
}

// IsUnexpectedResponse checks if an error is an UnexpectedResponseError
func IsUnexpectedResponse(err error) bool {
	var unexpectedErr *UnexpectedResponseError
	return errors.As(err, &unexpectedErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
