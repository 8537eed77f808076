package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// SessionLifetime matches the lifetime the server gives a new session.
const SessionLifetime = 31 * 24 * time.Hour

// Session is the persisted login state: who logged in and the bearer token
// the server issued.
type Session struct {
	Email string        `json:"email"`
	Token *oauth2.Token `json:"token,omitempty"`
}

// NewSession wraps a freshly issued session id as a bearer token.
func NewSession(email, sid string, now time.Time) Session {
	return Session{
		Email: email,
		Token: &oauth2.Token{
			AccessToken: sid,
			TokenType:   "Bearer",
			Expiry:      now.Add(SessionLifetime),
		},
	}
}

// LoggedIn reports whether the session holds an unexpired token.
func (s Session) LoggedIn() bool {
	return s.Token.Valid()
}

// sessionFilePath returns the path of the session file inside base.
func sessionFilePath(base string) string {
	return filepath.Join(base, "session.json")
}

// LoadSession loads the stored session. Returns an empty Session if none exists.
func LoadSession(base string) (Session, error) {
	path := sessionFilePath(base)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return Session{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return s, nil
}

// SaveSession atomically writes the session file.
func SaveSession(base string, s Session) error {
	return writeJSON(sessionFilePath(base), s)
}

// writeJSON marshals v and writes it to path through a temp file and rename.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// ClearSession forgets the stored token but keeps the email for the next login.
func ClearSession(base string) error {
	s, err := LoadSession(base)
	if err != nil {
		return err
	}
	if s.Email == "" {
		if err := os.Remove(sessionFilePath(base)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing session: %w", err)
		}
		return nil
	}
	s.Token = nil
	return SaveSession(base, s)
}
