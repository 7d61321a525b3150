package donations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
)

const (
	msgFinal         = "Donation has already been processed"
	msgBadTransition = "Status must be confirmed or failed"
)

// HandleStatus moves a pending donation to confirmed or failed and tells
// the donor.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "donation")
	if err != nil {
		h.ErrLog.Respond(w, r, "donation status", err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "donation status", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "donation status", err)
		return
	}
	to := strings.ToLower(strings.TrimSpace(req.Status))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.Transition(ctx, id, to)
	switch {
	case errors.Is(err, status.ErrTerminal):
		h.ErrLog.Respond(w, r, "donation status", apperr.Wrap(apperr.KindValidation, msgFinal, err))
		return
	case errors.Is(err, status.ErrBadTransition):
		h.ErrLog.Respond(w, r, "donation status", apperr.Wrap(apperr.KindValidation, msgBadTransition, err))
		return
	case err != nil:
		h.ErrLog.Store(w, r, "donation status", err, msgDonationNotFound, "")
		return
	}

	if d.UserID != nil {
		msg, typ := notify.DonationStatus(d.Amount, d.Status)
		h.Notifier.Send(ctx, *d.UserID, msg, typ)
	}
	h.AuditLog.DonationStatusChanged(ctx, r, authz.UserID(r), d.ID, d.UserID, d.Status)
	respond.OK(w, d)
}
