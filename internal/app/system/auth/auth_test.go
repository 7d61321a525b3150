package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mapFetcher struct {
	users map[string]*Identity
	err   error
}

func (f mapFetcher) FetchUser(_ context.Context, id string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func setup(t *testing.T) (*TokenManager, *Identity, mapFetcher) {
	t.Helper()
	tm := NewTokenManager("secret", "jhf", time.Hour)
	id := &Identity{ID: primitive.NewObjectID(), Name: "Karim", Role: role.NewAdmin()}
	return tm, id, mapFetcher{users: map[string]*Identity{id.ID.Hex(): id}}
}

func okHandler(t *testing.T, wantUser bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := CurrentUser(r)
		if ok != wantUser {
			t.Errorf("identity present: got %v, want %v", ok, wantUser)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequire(t *testing.T) {
	tm, id, fetcher := setup(t)
	m := NewMiddleware(tm, fetcher, zap.NewNop())
	good, _ := tm.Generate(id.ID, "admin")
	unknown, _ := tm.Generate(primitive.NewObjectID(), "user")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + good, http.StatusNoContent},
		{"lowercase scheme", "bearer " + good, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", good, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"mock", "Bearer " + MockTokenPrefix + "abc", http.StatusUnauthorized},
		{"unknown user", "Bearer " + unknown, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Require(okHandler(t, true)).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMockTokenIsNotLogged(t *testing.T) {
	tm, _, fetcher := setup(t)
	core, logs := observer.New(zap.DebugLevel)
	m := NewMiddleware(tm, fetcher, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+MockTokenPrefix+"1700000000000")
	rec := httptest.NewRecorder()
	m.Require(okHandler(t, true)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d", rec.Code)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", logs.Len())
	}
}

func TestRequireStoreOutage(t *testing.T) {
	tm, id, _ := setup(t)
	m := NewMiddleware(tm, mapFetcher{err: mongo.ErrClientDisconnected}, zap.NewNop())
	tok, _ := tm.Generate(id.ID, "admin")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	m.Require(okHandler(t, true)).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
}

func TestOptional(t *testing.T) {
	tm, id, fetcher := setup(t)
	m := NewMiddleware(tm, fetcher, zap.NewNop())
	good, _ := tm.Generate(id.ID, "admin")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	m.Optional(okHandler(t, false)).ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	m.Optional(okHandler(t, false)).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("bad token should fall through as guest, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	rec = httptest.NewRecorder()
	m.Optional(okHandler(t, true)).ServeHTTP(rec, req)
}

func TestAuthorize(t *testing.T) {
	admin := &Identity{Role: role.NewAdmin()}
	user := &Identity{Role: role.NewUser()}
	custom := &Identity{Role: role.NewCustom("Admin")}

	if err := Authorize(admin, "ADMIN"); err != nil {
		t.Errorf("admin vs ADMIN: %v", err)
	}
	if err := Authorize(nil, "admin"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("nil identity: got %v", err)
	}

	err := Authorize(user, "admin")
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("user vs admin: got %v", err)
	}
	want := `User role "user" is not authorized to access this route. Required roles: admin`
	if apperr.Message(err) != want {
		t.Errorf("message: got %q", apperr.Message(err))
	}

	if err := Authorize(custom, "admin"); !errors.Is(err, apperr.Forbidden("")) {
		t.Errorf("custom role should be forbidden, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole("admin")(okHandler(t, true))

	req := WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &Identity{Role: role.NewUser()})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user: got %d, want 403", rec.Code)
	}

	req = WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &Identity{Role: role.NewAdmin()})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin: got %d", rec.Code)
	}
}
