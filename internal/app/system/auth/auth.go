// Package auth verifies bearer tokens, attaches the caller's identity to
// the request context, and enforces role allow-lists.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Identity in context                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Identity is the verified caller. It never carries the password hash.
type Identity struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Phone string
	Role  role.Role
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentUser returns the identity attached by Require or Optional.
func CurrentUser(r *http.Request) (*Identity, bool) {
	u, ok := r.Context().Value(identityKey).(*Identity)
	return u, ok && u != nil
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithTestUser attaches id to r. Handler tests use it to skip token checks.
func WithTestUser(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(WithIdentity(r.Context(), id))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Verification                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher loads the current state of a user. It returns (nil, nil) when
// the user does not exist or is inactive, and an error only when the
// lookup itself failed.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*Identity, error)
}

// MsgNotAuthorized is the 401 message for every token failure.
const MsgNotAuthorized = "Not authorized"

// Middleware verifies bearer tokens on incoming requests.
type Middleware struct {
	tokens  *TokenManager
	fetcher UserFetcher
	log     *zap.Logger
}

func NewMiddleware(tokens *TokenManager, fetcher UserFetcher, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{tokens: tokens, fetcher: fetcher, log: logger}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Verify resolves the caller from the request's bearer token.
// Token problems yield Unauthorized; a failed user lookup yields the
// classified store error.
func (m *Middleware) Verify(r *http.Request) (*Identity, error) {
	raw := BearerToken(r)
	if raw == "" {
		return nil, apperr.Unauthorized(MsgNotAuthorized + ", no token")
	}
	claims, err := m.tokens.Parse(raw)
	if err != nil {
		if !errors.Is(err, ErrMockToken) {
			m.log.Debug("token rejected", zap.Error(err))
		}
		return nil, apperr.Unauthorized(MsgNotAuthorized + ", token failed")
	}
	id, err := m.fetcher.FetchUser(r.Context(), claims.UserID)
	if err != nil {
		return nil, apperr.FromStore(err, MsgNotAuthorized, "")
	}
	if id == nil {
		return nil, apperr.Unauthorized(MsgNotAuthorized + ", user not found")
	}
	return id, nil
}

// Require rejects requests without a valid token and attaches the identity.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Verify(r)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindUnauthorized {
				m.log.Error("identity lookup failed", zap.Error(err))
			}
			respond.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Optional attaches the identity when a valid token is present and
// otherwise lets the request through as a guest.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if BearerToken(r) == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := m.Verify(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Authorization                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// Authorize checks id against a case-insensitive role allow-list.
func Authorize(id *Identity, allowed ...string) error {
	if id == nil {
		return apperr.Unauthorized(MsgNotAuthorized)
	}
	if id.Role.Matches(allowed...) {
		return nil
	}
	return apperr.Forbidden(`User role "` + id.Role.String() +
		`" is not authorized to access this route. Required roles: ` + strings.Join(allowed, ", "))
}

// RequireRole must run after Require.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := CurrentUser(r)
			if err := Authorize(id, allowed...); err != nil {
				respond.Error(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
