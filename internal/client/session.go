package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
)

// OfflineTokenPrefix marks tokens minted by FixtureSource. The server
// rejects them, so they are never sent.
const OfflineTokenPrefix = sysauth.MockTokenPrefix

// Session is the persisted login: a token and the user it belongs to.
// Load it once at startup with LoadSession and pass it to whatever needs
// it. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *User
}

type sessionFile struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// LoadSession reads the session stored at path. A missing or unreadable
// JSON file yields an empty session; only I/O failures are errors.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	var f sessionFile
	if json.Unmarshal(b, &f) != nil {
		return s, nil
	}
	s.token = strings.TrimSpace(f.Token)
	s.user = f.User
	return s, nil
}

// DefaultSessionPath is ~/.jhf/session.json, or ./.jhf-session.json when
// there is no home directory.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".jhf-session.json"
	}
	return filepath.Join(home, ".jhf", "session.json")
}

func (s *Session) Path() string { return s.path }

// Set replaces the token and user in memory. Call Save to persist.
func (s *Session) Set(token string, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	s.user = u
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

// Offline reports whether the token came from FixtureSource.
func (s *Session) Offline() bool {
	return strings.HasPrefix(s.Token(), OfflineTokenPrefix)
}

// Bearer returns the token to send to the server, or "" when there is none
// worth sending: offline tokens and implausibly short values are withheld.
func (s *Session) Bearer() string {
	t := s.Token()
	if t == "" || len(t) <= 10 || strings.HasPrefix(t, OfflineTokenPrefix) {
		return ""
	}
	return t
}

// Expired reads the token's exp claim without verifying the signature.
// Offline tokens and tokens without exp never expire; tokens that cannot
// be parsed count as expired.
func (s *Session) Expired(now time.Time) bool {
	t := s.Token()
	if t == "" || strings.HasPrefix(t, OfflineTokenPrefix) {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// Save writes the session with owner-only permissions.
func (s *Session) Save() error {
	s.mu.RLock()
	f := sessionFile{Token: s.token, User: s.user}
	path := s.path
	s.mu.RUnlock()

	if path == "" {
		return nil
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, path)
}

// Clear forgets the token and user and removes the stored file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
