// Package workflow implements the capacity-aware assignment workflow on
// top of the query cache and the REST client.
//
// The OverloadGuard tracks the current team and member selection and
// raises a Warning as soon as the selected member is at or above
// capacity. A warned submission is gated: without an explicit override it
// is a local no-op and no request is sent. The Workflow builds the fully
// denormalized task payload from the guard's selection and routes every
// write through the cache store so the tag graph invalidates dependent
// reads.
package workflow
