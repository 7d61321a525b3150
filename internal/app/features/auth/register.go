package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// HandleRegister creates a self-registered member with pending membership
// and answers 201 with a token.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "register: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "register: validate", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	taken, err := h.Users.ExistsByPhoneOrEmail(ctx, req.Phone, req.Email)
	if err != nil {
		h.ErrLog.Store(w, r, "register: lookup", err, "", "")
		return
	}
	if taken {
		h.ErrLog.Respond(w, r, "register", apperr.Duplicate(userstore.ErrDuplicate.Error()))
		return
	}

	hash, err := h.hash(req.Password)
	if err != nil {
		h.ErrLog.Respond(w, r, "register: hash password", err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hash,
		Role:             role.User,
		IsActive:         true,
		MembershipStatus: models.MembershipPending,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			h.ErrLog.Respond(w, r, "register", apperr.Duplicate(err.Error()))
			return
		}
		h.ErrLog.Store(w, r, "register: create user", err, "", "")
		return
	}

	token, err := h.Tokens.Generate(u.ID, u.Role)
	if err != nil {
		h.ErrLog.Respond(w, r, "register: sign token", err)
		return
	}

	h.AuditLog.UserRegistered(ctx, r, u.ID, u.Phone)
	respond.Created(w, newAuthResponse(u, token))
}
