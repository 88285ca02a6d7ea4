// Package session persists the access token between invocations. It is
// the CLI counterpart of the browser's localStorage entry: one
// well-known key, read fresh on every command, written on login and
// logout only.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Key is the well-known name of the stored token
const Key = "projectAccess"

// EnvSessionFile overrides the default session file location
const EnvSessionFile = "LINVIEW_SESSION_FILE"

// Store reads and writes the session file at a fixed path
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user session file location, honoring the
// LINVIEW_SESSION_FILE override.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvSessionFile); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "linview", "session.yml"), nil
}

type sessionFile struct {
	ProjectAccess string `yaml:"projectAccess,omitempty"`
}

// Token returns the stored access token, or "" when no session exists
func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("failed to parse session file: %w", err)
	}

	return f.ProjectAccess, nil
}

// SetToken stores the access token, creating the parent directory if
// needed. The file is user-readable only; the token is a credential.
func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(sessionFile{ProjectAccess: token})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
