// Package rest is the typed HTTP client for the task manager backend.
//
// Every endpoint gets a typed method; request and response bodies are
// JSON. Responses are validated at the decode boundary so malformed
// payloads surface as errors instead of propagating zero values. Failures
// map onto the sentinel taxonomy in the types package (ErrTransport,
// ErrAuth, ErrNotFound, ErrServer, ErrMalformedResponse) via
// *types.RequestError, which also carries the server's structured message
// for display.
//
// The client never retries; retry is always a caller decision.
package rest
