package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
)

// HandleMe returns the caller's profile.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		h.ErrLog.Respond(w, r, "me", apperr.Unauthorized(sysauth.MsgNotAuthorized))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		h.ErrLog.Store(w, r, "me: load user", err, msgUserNotFound, "")
		return
	}
	respond.OK(w, newProfileResponse(*u, ""))
}

// HandleUpdateProfile applies the caller's non-blank profile fields and
// returns the updated profile with a fresh token.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := sysauth.CurrentUser(r)
	if !ok {
		h.ErrLog.Respond(w, r, "profile", apperr.Unauthorized(sysauth.MsgNotAuthorized))
		return
	}

	var req profileRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "profile: decode", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "profile: validate", err)
		return
	}

	var upd userstore.ProfileUpdate
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&upd.Name, req.Name)
	set(&upd.Email, req.Email)
	set(&upd.Phone, req.Phone)
	set(&upd.ProfileImage, req.ProfileImage)
	set(&upd.Address, htmlsanitize.PlainText(req.Address))
	set(&upd.Occupation, htmlsanitize.PlainText(req.Occupation))
	set(&upd.Bio, htmlsanitize.PlainText(req.Bio))

	passwordChanged := req.Password != ""
	if passwordChanged {
		hash, err := h.hash(req.Password)
		if err != nil {
			h.ErrLog.Respond(w, r, "profile: hash password", err)
			return
		}
		upd.PasswordHash = &hash
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, id.ID, upd)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			h.ErrLog.Respond(w, r, "profile", apperr.Duplicate(err.Error()))
			return
		}
		h.ErrLog.Store(w, r, "profile: update", err, msgUserNotFound, "")
		return
	}

	token, err := h.Tokens.Generate(u.ID, u.Role)
	if err != nil {
		h.ErrLog.Respond(w, r, "profile: sign token", err)
		return
	}

	h.AuditLog.ProfileUpdated(ctx, r, u.ID, passwordChanged)
	respond.OK(w, newProfileResponse(u, token))
}
