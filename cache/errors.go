package cache

import "errors"

// Sentinel errors returned by the Store.
var (
	// ErrFetchRequired is returned when a Query carries no fetch function.
	ErrFetchRequired = errors.New("query fetch function is required")

	// ErrMutationRequired is returned when a Mutation carries no Do function.
	ErrMutationRequired = errors.New("mutation function is required")
)
