package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dialpro/apiserver/types"
)

// sessionKey is the fixed, process-wide key the session record is
// persisted under.
const sessionKey = "dialPro_user"

// ErrNoSession is returned when no persisted session record exists.
var ErrNoSession = errors.New("session: no persisted record")

// ErrCorrupt is returned when the persisted record cannot be parsed.
// Callers treat it as logged-out, never as fatal.
var ErrCorrupt = errors.New("session: corrupt record")

// Store persists the single session record in durable local storage.
type Store interface {
	Write(session types.Session) error
	Read() (types.Session, error)
	Delete() error
}

// FileStore keeps the session record as a single key/value entry in a
// JSON file, mirroring a browser's local storage.
type FileStore struct {
	path string
}

// NewFileStore constructs a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Write persists the session record. The write goes through a temp file
// and rename so callers never observe a partial record.
func (s *FileStore) Write(session types.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	entries := map[string]json.RawMessage{sessionKey: raw}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".dialpro-session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Read loads the persisted session record, if any.
func (s *FileStore) Read() (types.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Session{}, ErrNoSession
		}
		return types.Session{}, err
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return types.Session{}, ErrCorrupt
	}
	raw, ok := entries[sessionKey]
	if !ok {
		return types.Session{}, ErrNoSession
	}

	var session types.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return types.Session{}, ErrCorrupt
	}
	if !session.User.Role.Valid() || session.User.Email == "" {
		return types.Session{}, ErrCorrupt
	}
	return session, nil
}

// Delete removes the persisted record. Deleting an absent record is a
// no-op.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
