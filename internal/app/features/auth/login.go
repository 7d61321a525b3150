package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin exchanges phone and password for a bearer token.
//
// The password is checked before the active flag so a disabled account
// cannot be probed without its password.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "login: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "login: validate", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, req.Phone); !ok {
			h.AuditLog.LoginFailedRateLimit(ctx, r, req.Phone)
			respond.Message(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	u, err := h.Users.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.AuditLog.LoginFailedUserNotFound(ctx, r, req.Phone)
			h.ErrLog.Respond(w, r, "login", ErrInvalidCredentials)
			return
		}
		h.ErrLog.Store(w, r, "login: lookup", err, "", "")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, u.Phone)
		h.ErrLog.Respond(w, r, "login", ErrInvalidCredentials)
		return
	}
	if !u.IsActive {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, u.Phone)
		h.ErrLog.Respond(w, r, "login", ErrAccountInactive)
		return
	}

	token, err := h.Tokens.Generate(u.ID, u.Role)
	if err != nil {
		h.ErrLog.Respond(w, r, "login: sign token", err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetPhone(req.Phone)
	}

	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.Phone)
	h.Log.Debug("login", zap.String("user_id", u.ID.Hex()))
	respond.OK(w, newAuthResponse(*u, token))
}
