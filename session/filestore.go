package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/nhnasim333/smart-task-manager/types"
)

// FileStore is a file-backed Storage implementation.
//
// All keys live in one JSON document. Writes go through a temp file and
// rename so a crash never leaves a half-written document, and a flock
// sidecar serializes access across processes sharing the same path.
type FileStore struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

var _ types.Storage = (*FileStore)(nil)

// NewFileStore creates a file-backed store at the given path, creating
// parent directories as needed.
//
// Parameters:
//   - path: Document location, e.g. "~/.config/smart-task-manager/session.json"
//
// Returns:
//   - *FileStore: Ready store; the document itself is created lazily on
//     the first Set
//   - error: Directory creation failure
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Get returns the value for key and whether it was present.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("acquire storage lock: %w", err)
	}
	defer s.lock.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}

	value, ok := doc[key]

	return value, ok, nil
}

// Set stores the value for key, replacing any previous value.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire storage lock: %w", err)
	}
	defer s.lock.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = value

	return s.write(doc)
}

// Remove deletes the value for key. Removing an absent key is not an
// error.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire storage lock: %w", err)
	}
	defer s.lock.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)

	return s.write(doc)
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage document: %w", err)
	}

	doc := make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode storage document: %w", err)
		}
	}

	return doc, nil
}

func (s *FileStore) write(doc map[string]string) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}

	// The document holds a credential; keep it owner-only.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write storage document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace storage document: %w", err)
	}

	return nil
}
