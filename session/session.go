package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nhnasim333/smart-task-manager/internal/logging"
	"github.com/nhnasim333/smart-task-manager/types"
)

// record is the serialized session as persisted under the storage key.
type record struct {
	Token    string         `json:"token"`
	Identity types.Identity `json:"identity"`
}

// Manager owns the current session: the bearer token and the identity
// extracted from it.
//
// Thread Safety: all methods are safe for concurrent use. Token is cheap
// enough to serve as the rest client's TokenFunc directly.
type Manager struct {
	storage types.Storage
	key     string
	logger  types.Logger

	mu       sync.RWMutex
	token    string
	identity types.Identity
}

// NewManager creates a session manager.
//
// Parameters:
//   - storage: Key-value capability holding the serialized session
//   - key: Storage key for the session record, e.g.
//     "smart-task-manager/session"
//   - logger: Logger instance (nop logger if nil)
//
// Returns:
//   - *Manager: Initialized manager with no active session
//   - error: types.ErrStorageRequired when storage is nil
func NewManager(storage types.Storage, key string, logger types.Logger) (*Manager, error) {
	if storage == nil {
		return nil, types.ErrStorageRequired
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Manager{storage: storage, key: key, logger: logger}, nil
}

// Login installs a session from a freshly issued token and persists it.
//
// The token is parsed without signature verification purely to extract
// the display identity (id, name, email). A token that cannot be parsed
// is rejected with types.ErrInvalidToken and nothing is stored.
func (m *Manager) Login(token string) (types.Identity, error) {
	identity, err := decodeIdentity(token)
	if err != nil {
		return types.Identity{}, err
	}

	raw, err := json.Marshal(record{Token: token, Identity: identity})
	if err != nil {
		return types.Identity{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.storage.Set(m.key, string(raw)); err != nil {
		return types.Identity{}, fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.identity = identity
	m.mu.Unlock()

	m.logger.Info("session established", "user", identity.Email)

	return identity, nil
}

// Logout clears the in-memory session and removes the persisted record.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.token = ""
	m.identity = types.Identity{}
	m.mu.Unlock()

	if err := m.storage.Remove(m.key); err != nil {
		return fmt.Errorf("remove persisted session: %w", err)
	}
	m.logger.Info("session cleared")

	return nil
}

// Rehydrate restores the session from storage, typically once at startup
// before any request runs.
//
// Returns:
//   - bool: Whether a persisted session was found and restored
//   - error: Storage failure or a corrupt persisted record
func (m *Manager) Rehydrate() (bool, error) {
	raw, ok, err := m.storage.Get(m.key)
	if err != nil {
		return false, fmt.Errorf("read persisted session: %w", err)
	}
	if !ok {
		return false, nil
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// A corrupt record is unusable; drop it rather than failing every
		// subsequent startup.
		_ = m.storage.Remove(m.key)
		return false, fmt.Errorf("decode persisted session: %w", err)
	}

	m.mu.Lock()
	m.token = rec.Token
	m.identity = rec.Identity
	m.mu.Unlock()

	m.logger.Info("session restored", "user", rec.Identity.Email)

	return true, nil
}

// Token returns the current bearer token, or empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

// Identity returns the identity of the logged-in user and whether a
// session is active.
func (m *Manager) Identity() (types.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.identity, m.token != ""
}

// decodeIdentity extracts the display identity from the token's claims
// without verifying its signature.
func decodeIdentity(token string) (types.Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return types.Identity{}, fmt.Errorf("%w: %w", types.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return types.Identity{}, types.ErrInvalidToken
	}

	identity := types.Identity{
		ID:    claimString(claims, "id"),
		Name:  claimString(claims, "name"),
		Email: claimString(claims, "email"),
	}
	if identity.Email == "" {
		return types.Identity{}, fmt.Errorf("%w: missing email claim", types.ErrInvalidToken)
	}

	return identity, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}

	return ""
}
