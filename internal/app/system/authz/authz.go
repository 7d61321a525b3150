// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role name, display name, ObjectID, and a
// found flag. Without an identity it returns "visitor", "", NilObjectID, false.
func UserCtx(r *http.Request) (roleName string, name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID.IsZero() {
		return "visitor", "", primitive.NilObjectID, false
	}
	return u.Role.String(), u.Name, u.ID, true
}

// UserID returns the caller's id or NilObjectID.
func UserID(r *http.Request) primitive.ObjectID {
	_, _, id, _ := UserCtx(r)
	return id
}

// UserIDPtr returns the caller's id, or nil for guests.
func UserIDPtr(r *http.Request) *primitive.ObjectID {
	_, _, id, ok := UserCtx(r)
	if !ok {
		return nil
	}
	return &id
}

// HasAnyRole reports whether the caller satisfies the allow-list.
func HasAnyRole(r *http.Request, allowed ...string) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.Role.Matches(allowed...)
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	return HasAnyRole(r, role.Admin)
}

// IsOwner reports whether the caller is owner.
func IsOwner(r *http.Request, owner primitive.ObjectID) bool {
	_, _, id, ok := UserCtx(r)
	return ok && !owner.IsZero() && id == owner
}

// RequireOwner returns Unauthorized without an identity and Forbidden with
// msg when the caller is not owner.
func RequireOwner(r *http.Request, owner primitive.ObjectID, msg string) error {
	if _, _, _, ok := UserCtx(r); !ok {
		return apperr.Unauthorized(auth.MsgNotAuthorized)
	}
	if !IsOwner(r, owner) {
		return apperr.Forbidden(msg)
	}
	return nil
}
