package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents the caller injected into handler tests.
type TestUser struct {
	ID   primitive.ObjectID
	Name string
	Role role.Role
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{ID: primitive.NewObjectID(), Name: "Test Admin", Role: role.NewAdmin()}
}

// MemberUser returns a TestUser with the user role.
func MemberUser() TestUser {
	return TestUser{ID: primitive.NewObjectID(), Name: "Test Member", Role: role.NewUser()}
}

// Identity converts u for auth.WithTestUser.
func (u TestUser) Identity() *auth.Identity {
	return &auth.Identity{ID: u.ID, Name: u.Name, Role: u.Role}
}

// WithUser adds a user to the request context, bypassing token checks.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, user.Identity())
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Repeated calls on the same request accumulate parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewAuthenticatedRequest creates a request with user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewJSONRequest creates a request whose body is body encoded as JSON.
// A string body is sent verbatim.
func NewJSONRequest(method, target string, body any) *http.Request {
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		rdr = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON decodes a recorded response body into dst.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
