package session

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nhnasim333/smart-task-manager/types"
)

const sessionKey = "smart-task-manager/session"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func TestManager_RequiresStorage(t *testing.T) {
	_, err := NewManager(nil, sessionKey, nil)
	require.ErrorIs(t, err, types.ErrStorageRequired)
}

func TestManager_LoginExtractsIdentity(t *testing.T) {
	mgr, err := NewManager(NewMemoryStore(), sessionKey, nil)
	require.NoError(t, err)

	token := signedToken(t, jwt.MapClaims{
		"id":    "u1",
		"name":  "Alice",
		"email": "alice@example.com",
	})

	identity, err := mgr.Login(token)
	require.NoError(t, err)
	require.Equal(t, "u1", identity.ID)
	require.Equal(t, "Alice", identity.Name)
	require.Equal(t, "alice@example.com", identity.Email)

	require.Equal(t, token, mgr.Token())

	got, active := mgr.Identity()
	require.True(t, active)
	require.Equal(t, identity, got)
}

func TestManager_LoginRejectsBadToken(t *testing.T) {
	storage := NewMemoryStore()
	mgr, err := NewManager(storage, sessionKey, nil)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := mgr.Login("not-a-jwt")
		require.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("missing email claim", func(t *testing.T) {
		_, err := mgr.Login(signedToken(t, jwt.MapClaims{"id": "u1"}))
		require.ErrorIs(t, err, types.ErrInvalidToken)
	})

	// Nothing persisted, nothing active.
	_, ok, err := storage.Get(sessionKey)
	require.NoError(t, err)
	require.False(t, ok)

	_, active := mgr.Identity()
	require.False(t, active)
}

func TestManager_RehydrateRoundTrip(t *testing.T) {
	storage := NewMemoryStore()
	token := signedToken(t, jwt.MapClaims{
		"id":    "u1",
		"name":  "Alice",
		"email": "alice@example.com",
	})

	first, err := NewManager(storage, sessionKey, nil)
	require.NoError(t, err)
	_, err = first.Login(token)
	require.NoError(t, err)

	// A second manager over the same storage picks the session up, the way
	// a process restart would.
	second, err := NewManager(storage, sessionKey, nil)
	require.NoError(t, err)

	found, err := second.Rehydrate()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, token, second.Token())

	identity, active := second.Identity()
	require.True(t, active)
	require.Equal(t, "alice@example.com", identity.Email)
}

func TestManager_RehydrateEmptyStorage(t *testing.T) {
	mgr, err := NewManager(NewMemoryStore(), sessionKey, nil)
	require.NoError(t, err)

	found, err := mgr.Rehydrate()
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, mgr.Token())
}

func TestManager_RehydrateCorruptRecord(t *testing.T) {
	storage := NewMemoryStore()
	require.NoError(t, storage.Set(sessionKey, "{{{not json"))

	mgr, err := NewManager(storage, sessionKey, nil)
	require.NoError(t, err)

	found, err := mgr.Rehydrate()
	require.Error(t, err)
	require.False(t, found)

	// The corrupt record is dropped so the next startup is clean.
	_, ok, err := storage.Get(sessionKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManager_Logout(t *testing.T) {
	storage := NewMemoryStore()
	mgr, err := NewManager(storage, sessionKey, nil)
	require.NoError(t, err)

	_, err = mgr.Login(signedToken(t, jwt.MapClaims{"email": "alice@example.com"}))
	require.NoError(t, err)

	require.NoError(t, mgr.Logout())
	require.Empty(t, mgr.Token())

	_, active := mgr.Identity()
	require.False(t, active)

	_, ok, err := storage.Get(sessionKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	t.Run("get on missing document", func(t *testing.T) {
		_, ok, err := store.Get("absent")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("set get remove", func(t *testing.T) {
		require.NoError(t, store.Set("k", "v1"))
		require.NoError(t, store.Set("k", "v2"))

		value, ok, err := store.Get("k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v2", value)

		require.NoError(t, store.Remove("k"))
		require.NoError(t, store.Remove("k"))

		_, ok, err = store.Get("k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("survives reopen", func(t *testing.T) {
		require.NoError(t, store.Set("persisted", "value"))

		reopened, err := NewFileStore(path)
		require.NoError(t, err)

		value, ok, err := reopened.Get("persisted")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "value", value)
	})
}

func TestFileStoreBacksSessionManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	mgr, err := NewManager(store, sessionKey, nil)
	require.NoError(t, err)

	token := signedToken(t, jwt.MapClaims{"id": "u1", "name": "Alice", "email": "alice@example.com"})
	_, err = mgr.Login(token)
	require.NoError(t, err)

	restored, err := NewManager(store, sessionKey, nil)
	require.NoError(t, err)

	found, err := restored.Rehydrate()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, token, restored.Token())
}
