// Package session persists the credential pair across client restarts.
//
// Exactly two values survive a restart: the bearer token and the resolved
// role. Everything else is re-fetched on startup. The pair is written
// atomically and with owner-only permissions; multiple client instances
// share the file last-writer-wins, with no cross-instance signal (another
// instance notices a logout only when its own next call fails auth).
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

const (
	sessionDir  = ".local/msgquota"
	sessionFile = "session.json"
)

// FileStore keeps the token/role pair in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore builds a store at the given path. An empty path selects the
// default location under the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(homeDir, sessionDir, sessionFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads the persisted session. A missing or unreadable file yields an
// empty (logged-out) session, never an error: a corrupt credential file is
// equivalent to being logged out.
func (s *FileStore) Load() models.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Session{}
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}
	}
	if sess.Token == "" || sess.Role == "" {
		// Both-or-neither invariant: a half-written pair counts as absent.
		return models.Session{}
	}
	return sess
}

// Save persists the session atomically (write to temp file, then rename).
func (s *FileStore) Save(sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-absent session
// is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
