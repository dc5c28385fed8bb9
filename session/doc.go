// Package session persists the authenticated session across process
// restarts.
//
// The Manager holds the bearer token plus the identity claims extracted
// from it for display. It depends only on the types.Storage key-value
// capability; FileStore provides a durable file-backed implementation
// guarded by an advisory file lock, MemoryStore an ephemeral one for
// tests.
//
// The token is stored opaque and is never verified locally: signature
// checking belongs to the server, and the client only decodes the claims
// it needs to show who is logged in.
package session
