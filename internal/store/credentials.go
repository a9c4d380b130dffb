// Package store persists the identity of the logged-in user between CLI
// invocations, filling the role browser local storage plays for the web
// client.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Credentials are the persisted identity fields. Role and UserID are
// derived client-side from the token payload and cached alongside it.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   string `json:"userId"`
}

// CredentialStore reads and writes credentials at a fixed path.
type CredentialStore struct {
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load returns the persisted credentials, or ErrNotFound when none exist.
func (s *CredentialStore) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Save writes the credentials, creating the parent directory as needed.
// The file is user-readable only since it holds the bearer token.
func (s *CredentialStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted credentials. Clearing an already empty
// store is not an error.
func (s *CredentialStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
