// Package testing provides test utilities for the smart-task-manager
// client library.
//
// This package offers helpers for setting up test environments,
// particularly an in-process stub of the task manager backend. It follows
// Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartBackend: In-memory backend speaking the real REST surface,
//     including JWT login, capacity recomputation, the assignment
//     advisor, and cascade semantics on delete
//   - NewTestLogger: Logger writing through testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    stmtest "github.com/nhnasim333/smart-task-manager/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    backend := stmtest.StartBackend(t)
//	    // Point a client at backend.URL()
//	}
package testing
