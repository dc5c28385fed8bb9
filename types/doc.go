// Package types defines the core types and interfaces shared across the
// smart-task-manager client library.
//
// This is a leaf package with no dependencies on other packages in the
// module. It exists so that internal packages can depend on shared
// definitions without importing the root package, avoiding import cycles.
// The root package re-exports the commonly used definitions via type
// aliases for convenience.
//
// Contents:
//   - Resource model: Team, Member, Project, Task, ActivityLog, and the
//     payload shapes exchanged with the backend
//   - Tag and TagSet: coarse resource categories driving cache invalidation
//   - Sentinel errors and the RequestError taxonomy
//   - Logger, MetricsCollector, and Storage interfaces
package types
