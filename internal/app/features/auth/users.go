package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

const (
	msgInvalidRole  = "Invalid role. Allowed roles: user, admin, advisor, or other"
	msgCustomNeeded = "Please specify the custom role"
)

// parseRole validates a requested role. "other" needs a non-blank label.
func parseRole(raw, custom string) (role.Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		raw = role.User
	}
	if !role.IsValidStored(raw) {
		return role.Role{}, apperr.Validation(msgInvalidRole)
	}
	if raw == role.Other && strings.TrimSpace(custom) == "" {
		return role.Role{}, apperr.Validation(msgCustomNeeded)
	}
	return role.Parse(raw, custom), nil
}

// HandleCreateUser lets an admin add an active member directly.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "create user: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "create user: validate", err)
		return
	}
	rl, err := parseRole(req.Role, req.CustomRole)
	if err != nil {
		h.ErrLog.Respond(w, r, "create user", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	taken, err := h.Users.ExistsByPhoneOrEmail(ctx, req.Phone, req.Email)
	if err != nil {
		h.ErrLog.Store(w, r, "create user: lookup", err, "", "")
		return
	}
	if taken {
		h.ErrLog.Respond(w, r, "create user", apperr.Duplicate(userstore.ErrDuplicate.Error()))
		return
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		h.ErrLog.Respond(w, r, "create user: hash password", err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hash,
		Role:             rl.Stored(),
		CustomRole:       rl.Label(),
		IsActive:         true,
		MembershipStatus: models.MembershipActive,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			h.ErrLog.Respond(w, r, "create user", apperr.Duplicate(err.Error()))
			return
		}
		h.ErrLog.Store(w, r, "create user: insert", err, "", "")
		return
	}

	h.AuditLog.UserCreated(ctx, r, authz.UserID(r), u.ID, rl.String())
	respond.Created(w, newAuthResponse(u, ""))
}

// HandleListUsers returns every user sorted by name.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.Store(w, r, "list users", err, "", "")
		return
	}
	respond.OK(w, users)
}

// HandleDeleteUser removes a user. Admins cannot delete themselves.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "user")
	if err != nil {
		h.ErrLog.Respond(w, r, "delete user", err)
		return
	}
	actor := authz.UserID(r)
	if id == actor {
		h.ErrLog.Respond(w, r, "delete user", apperr.Validation("You cannot delete your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		h.ErrLog.Store(w, r, "delete user", err, msgUserNotFound, "")
		return
	}

	h.AuditLog.UserDeleted(ctx, r, actor, id)
	respond.Message(w, http.StatusOK, "User removed")
}

// HandleUpdateRole changes a user's role and custom label.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "user")
	if err != nil {
		h.ErrLog.Respond(w, r, "update role", err)
		return
	}
	var req roleRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "update role: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "update role: validate", err)
		return
	}
	rl, err := parseRole(req.Role, req.CustomRole)
	if err != nil {
		h.ErrLog.Respond(w, r, "update role", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	before, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Store(w, r, "update role: load", err, msgUserNotFound, "")
		return
	}
	u, err := h.Users.UpdateRole(ctx, id, rl)
	if err != nil {
		h.ErrLog.Store(w, r, "update role", err, msgUserNotFound, "")
		return
	}

	h.AuditLog.UserRoleChanged(ctx, r, authz.UserID(r), id, before.RoleValue().String(), rl.String())
	respond.OK(w, roleResponse{ID: u.ID, Name: u.Name, Role: u.Role, CustomRole: u.CustomRole})
}

// HandleUpdateStatus sets the activation flag and/or membership status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "user")
	if err != nil {
		h.ErrLog.Respond(w, r, "update user status", err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "update user status: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "update user status: validate", err)
		return
	}
	if req.IsActive == nil && req.MembershipStatus == "" {
		h.ErrLog.Respond(w, r, "update user status", apperr.Validation("Nothing to update"))
		return
	}
	actor := authz.UserID(r)
	if id == actor && req.IsActive != nil && !*req.IsActive {
		h.ErrLog.Respond(w, r, "update user status", apperr.Validation("You cannot deactivate your own account"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.SetStatus(ctx, id, req.IsActive, req.MembershipStatus)
	if err != nil {
		h.ErrLog.Store(w, r, "update user status", err, msgUserNotFound, "")
		return
	}

	h.AuditLog.UserStatusChanged(ctx, r, actor, id, u.IsActive, u.MembershipStatus)
	respond.OK(w, u)
}
