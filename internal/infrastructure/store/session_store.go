// Package store persists the client's local state: the session record and
// the guest cart. Both are small JSON documents in the storage directory,
// the file-backed equivalent of the browser's localStorage keys. Access goes
// through an afero.Fs so tests can run on an in-memory filesystem. There is
// no cross-process coordination; concurrent writers race, last write wins.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/brewleaf/client/internal/domain/identity"
)

const sessionFile = "userInfo.json"

// SessionStore reads and writes the locally persisted session record.
type SessionStore struct {
	fs   afero.Fs
	path string
}

// NewSessionStore creates a session store rooted at dir
func NewSessionStore(fs afero.Fs, dir string) *SessionStore {
	return &SessionStore{fs: fs, path: filepath.Join(dir, sessionFile)}
}

// Get returns the persisted session, or nil when none exists
func (s *SessionStore) Get() (*identity.Session, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: failed to read session: %w", err)
	}

	var session identity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("store: corrupt session file: %w", err)
	}
	return &session, nil
}

// Set persists the session, replacing any previous one
func (s *SessionStore) Set(session *identity.Session) error {
	if session == nil || session.Token == "" {
		return fmt.Errorf("store: refusing to persist empty session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("store: failed to encode session: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("store: failed to create storage dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("store: failed to write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *SessionStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: failed to remove session: %w", err)
	}
	return nil
}
