package content

import (
	"context"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	committeestore "github.com/mejbaurrahman/JHF/internal/app/store/committee"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
)

const msgMemberNotFound = "Committee member not found"

type committeeRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	RoleKey  *string `json:"roleKey" validate:"omitempty,max=60"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,max=500"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
}

func (req committeeRequest) update() committeestore.Update {
	clean := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := htmlsanitize.PlainText(strings.TrimSpace(*p))
		return &s
	}
	return committeestore.Update{
		Name:     clean(req.Name),
		RoleKey:  clean(req.RoleKey),
		ImageURL: clean(req.ImageURL),
		Phone:    clean(req.Phone),
		Order:    req.Order,
	}
}

func (h *Handler) HandleListCommittee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Committee.List(ctx)
	if err != nil {
		h.ErrLog.Store(w, r, "list committee", err, "", "")
		return
	}
	respond.OK(w, list)
}

func (h *Handler) HandleCreateCommittee(w http.ResponseWriter, r *http.Request) {
	var req committeeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "create committee member", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "create committee member", err)
		return
	}
	upd := req.update()
	if upd.Name == nil || *upd.Name == "" {
		h.ErrLog.Respond(w, r, "create committee member", apperr.Validation("name is required"))
		return
	}
	if upd.RoleKey == nil || *upd.RoleKey == "" {
		h.ErrLog.Respond(w, r, "create committee member", apperr.Validation("roleKey is required"))
		return
	}
	m := models.CommitteeMember{Name: *upd.Name, RoleKey: *upd.RoleKey}
	if upd.ImageURL != nil {
		m.ImageURL = *upd.ImageURL
	}
	if upd.Phone != nil {
		m.Phone = *upd.Phone
	}
	if upd.Order != nil {
		m.Order = *upd.Order
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Committee.Create(ctx, m)
	if err != nil {
		h.ErrLog.Store(w, r, "create committee member", err, "", "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventCommitteeChanged, authz.UserID(r), nil, map[string]string{"action": "create", "member_id": m.ID.Hex()})
	respond.Created(w, m)
}

func (h *Handler) HandleUpdateCommittee(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "committee member")
	if err != nil {
		h.ErrLog.Respond(w, r, "update committee member", err)
		return
	}
	var req committeeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "update committee member", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "update committee member", err)
		return
	}
	upd := req.update()
	if upd.Name != nil && *upd.Name == "" {
		h.ErrLog.Respond(w, r, "update committee member", apperr.Validation("name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Committee.Update(ctx, id, upd)
	if err != nil {
		h.ErrLog.Store(w, r, "update committee member", err, msgMemberNotFound, "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventCommitteeChanged, authz.UserID(r), nil, map[string]string{"action": "update", "member_id": m.ID.Hex()})
	respond.OK(w, m)
}

func (h *Handler) HandleDeleteCommittee(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "committee member")
	if err != nil {
		h.ErrLog.Respond(w, r, "delete committee member", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Committee.Delete(ctx, id); err != nil {
		h.ErrLog.Store(w, r, "delete committee member", err, msgMemberNotFound, "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventCommitteeChanged, authz.UserID(r), nil, map[string]string{"action": "delete", "member_id": id.Hex()})
	respond.Message(w, http.StatusOK, "Member removed")
}
