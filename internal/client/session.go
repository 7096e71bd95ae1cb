package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
)

const (
	sessionDirName  = "registro-academico"
	sessionFileName = "session.json"
)

// Session is the locally persisted authenticated state. Only public
// user fields and the bearer token are stored, never the password.
type Session struct {
	Usuario dto.UserResponse `json:"usuario"`
	Token   string           `json:"token,omitempty"`
}

// SessionStore persists the session under a fixed file name in the
// user configuration directory.
type SessionStore struct {
	path string
}

// NewSessionStore resolves the session file location.
func NewSessionStore() (*SessionStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &SessionStore{path: filepath.Join(configDir, sessionDirName, sessionFileName)}, nil
}

// NewSessionStoreAt uses an explicit file path, mainly for tests.
func NewSessionStoreAt(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Save writes the session to disk, creating the directory when needed.
func (s *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load reads a persisted session. A missing or unreadable file yields
// (nil, nil) so startup can fall through to the login view.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// Clear removes the persisted session. Clearing an absent session is
// not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
