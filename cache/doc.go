// Package cache implements the query cache store and the tag dependency
// graph that together keep every client view consistent with the latest
// committed server state.
//
// # Tag Dependency Graph
//
// Every read operation declares the resource tags it provides; every write
// operation declares the tags it invalidates. The mapping is static and
// resolved at compile time (see graph.go). After a successful write, every
// cached read whose provided tags intersect the write's invalidated tags
// is marked stale; subscribed reads are refetched immediately, unsubscribed
// reads lazily on next subscription. Failed writes invalidate nothing.
//
// # Query Cache Store
//
// The Store keys cached results by (operation, normalized arguments). It
// guarantees:
//
//   - Request de-duplication: concurrent subscribers to one key share a
//     single in-flight fetch.
//   - Last-issued-wins ordering: a response that arrives after a newer
//     request was issued for the same key is discarded.
//   - Subscriber-count lifecycle: entries whose subscriber count drops to
//     zero are retained for a grace window, then evicted.
//   - Write isolation: a failed mutation leaves the store untouched.
//
// The Store is the single mutable shared resource of the client; all
// mutation goes through Subscribe/Unsubscribe and Mutate.
package cache
