package types

// Storage is a small key-value capability used to persist the session
// across process restarts.
//
// Implementations must be safe for concurrent use. The session component
// depends only on this interface so it carries no hidden dependency on a
// specific storage medium; see session.NewFileStore for a durable
// implementation and session.NewMemoryStore for an ephemeral one.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores the value for key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes the value for key. Removing an absent key is not an
	// error.
	Remove(key string) error
}
