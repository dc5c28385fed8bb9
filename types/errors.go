package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the smart-task-manager client library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components should use these sentinel errors for known
// error conditions and wrap external errors with context using
// fmt.Errorf("%s: %w", msg, err).

// Request taxonomy - errors surfaced by the remote access layer and the
// operations built on top of it.
var (
	// ErrValidation is returned when a required field is missing. Caught
	// locally, before any request is sent.
	ErrValidation = errors.New("missing required field")

	// ErrOverloadPending is returned when the overload guard is in Warning
	// and the caller has not confirmed the override. This is a gated state
	// requiring confirmation, not a failure; no request is sent.
	ErrOverloadPending = errors.New("selected member is over capacity, confirmation required")

	// ErrTransport indicates a network or connectivity failure. No response
	// was received from the server.
	ErrTransport = errors.New("network request failed")

	// ErrServer indicates a non-2xx response from the server.
	ErrServer = errors.New("server rejected the request")

	// ErrAuth indicates a 401 response or expired credential. Callers
	// should clear the session and redirect to login.
	ErrAuth = errors.New("authentication required")

	// ErrNotFound indicates the referenced team, project, task, or member
	// no longer exists on the server.
	ErrNotFound = errors.New("resource not found")

	// ErrMalformedResponse indicates a 2xx response whose payload failed
	// schema validation. Treated as a server error rather than letting
	// undefined fields propagate.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrInvalidToken is returned when a credential token cannot be parsed
	// for identity display.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrNoSuggestion is returned when the assignment advisor declines to
	// suggest a member.
	ErrNoSuggestion = errors.New("no assignment suggestion available")
)

// Lifecycle errors - public API errors returned by the Client and the
// query cache store.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyStarted is returned when Start is called on an already
	// running client.
	ErrAlreadyStarted = errors.New("client already started")

	// ErrNotStarted is returned when operations require a started client.
	ErrNotStarted = errors.New("client not started")

	// ErrStoreClosed is returned when subscribing to or mutating through a
	// closed query cache store.
	ErrStoreClosed = errors.New("query cache store closed")

	// ErrStorageRequired is returned when the session manager is built
	// without a storage capability.
	ErrStorageRequired = errors.New("session storage is required")

	// ErrRESTClientRequired is returned when a component is built without a
	// remote access client.
	ErrRESTClientRequired = errors.New("rest client is required")

	// ErrStoreRequired is returned when a component is built without a
	// query cache store.
	ErrStoreRequired = errors.New("query cache store is required")
)

// Fixed fallback shown when an error carries no usable message.
const fallbackMessage = "Something went wrong!"

// Generic message for connectivity failures.
const transportMessage = "Network error. Please check your connection and try again."

// RequestError describes a failed request against the backend.
//
// Kind is one of the taxonomy sentinels (ErrTransport, ErrServer, ErrAuth,
// ErrNotFound, ErrMalformedResponse) so callers can branch with
// errors.Is(err, types.ErrAuth) while still reading the structured server
// message for display.
type RequestError struct {
	// Kind is the taxonomy sentinel this error unwraps to.
	Kind error

	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Message is the structured message from the server's error body, when
	// present.
	Message string

	// Cause is the underlying transport or decode error, when any.
	Cause error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%v (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	default:
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
}

// Unwrap supports errors.Is against the taxonomy sentinels and the cause.
func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// UserMessage resolves the single human-readable message for a failed
// operation.
//
// Priority order: the server's structured error message, then a generic
// transport message, then a fixed fallback string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	if errors.Is(err, ErrTransport) {
		return transportMessage
	}

	return fallbackMessage
}
