package smarttask

import "github.com/nhnasim333/smart-task-manager/types"

// Sentinel errors returned by the Client. Aliased from the types package
// so errors.Is works across package boundaries.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrAlreadyStarted is returned when Start is called on an already running client.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on a client that hasn't been started.
	ErrNotStarted = types.ErrNotStarted

	// ErrStoreClosed is returned when using the query cache after shutdown.
	ErrStoreClosed = types.ErrStoreClosed

	// ErrValidation is returned when a required field is missing; caught
	// locally before any request is sent.
	ErrValidation = types.ErrValidation

	// ErrOverloadPending is returned when the overload guard is in Warning
	// and the submission lacks an explicit override.
	ErrOverloadPending = types.ErrOverloadPending

	// ErrTransport indicates a network or connectivity failure.
	ErrTransport = types.ErrTransport

	// ErrServer indicates a non-2xx response from the server.
	ErrServer = types.ErrServer

	// ErrAuth indicates a 401 response or expired credential.
	ErrAuth = types.ErrAuth

	// ErrNotFound indicates the referenced resource no longer exists.
	ErrNotFound = types.ErrNotFound

	// ErrMalformedResponse indicates a 2xx response whose payload failed
	// schema validation.
	ErrMalformedResponse = types.ErrMalformedResponse

	// ErrInvalidToken is returned when a session token cannot be parsed.
	ErrInvalidToken = types.ErrInvalidToken

	// ErrNoSuggestion is returned when the assignment advisor declines to
	// suggest a member.
	ErrNoSuggestion = types.ErrNoSuggestion
)

// UserMessage resolves the single human-readable message for a failed
// operation: the server's structured message first, then a generic
// transport message, then a fixed fallback.
func UserMessage(err error) string {
	return types.UserMessage(err)
}
