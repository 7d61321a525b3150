package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "abc",
		"exp": exp.Unix(),
	}).SignedString([]byte("client-test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestLoadSession_MissingFile(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if s.LoggedIn() || s.User() != nil {
		t.Error("expected empty session")
	}
}

func TestLoadSession_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSession(path)
	if err != nil || s.LoggedIn() {
		t.Fatalf("got %v, %v", s.Token(), err)
	}
}

func TestSession_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s, _ := LoadSession(path)
	s.Set("  tok-1234567890  ", &User{ID: "u1", Name: "Rahim", Role: "user"})
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	again, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Token() != "tok-1234567890" || again.User() == nil || again.User().Name != "Rahim" {
		t.Errorf("reloaded %q %+v", again.Token(), again.User())
	}

	if err := again.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if again.LoggedIn() {
		t.Error("still logged in after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present: %v", err)
	}
	if err := again.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSession_Bearer(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"short", ""},
		{OfflineTokenPrefix + "1700000000000", ""},
		{"abcdefghijklmnop", "abcdefghijklmnop"},
	}
	for _, tt := range tests {
		s := &Session{}
		s.Set(tt.token, nil)
		if got := s.Bearer(); got != tt.want {
			t.Errorf("Bearer(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"offline", OfflineTokenPrefix + "1", false},
		{"valid", signed(t, now.Add(time.Hour)), false},
		{"expired", signed(t, now.Add(-time.Minute)), true},
		{"garbage", "not.a.jwt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{}
			s.Set(tt.token, nil)
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired = %v, want %v", got, tt.want)
			}
			if tt.name == "offline" && !s.Offline() {
				t.Error("offline token not recognized")
			}
		})
	}
}
