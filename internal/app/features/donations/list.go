package donations

import (
	"context"
	"net/http"

	donationstore "github.com/mejbaurrahman/JHF/internal/app/store/donations"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
)

// HandleMine lists the caller's donations with their events.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Donations.ListByUser(ctx, authz.UserID(r))
	if err != nil {
		h.ErrLog.Store(w, r, "my donations", err, "", "")
		return
	}
	out, err := h.populate(ctx, list, false)
	if err != nil {
		h.ErrLog.Store(w, r, "my donations: populate", err, "", "")
		return
	}
	respond.OK(w, out)
}

func filterFrom(r *http.Request) (donationstore.Filter, error) {
	var f donationstore.Filter
	var err error
	if f.EventID, err = params.OptionalID(r, "eventId"); err != nil {
		return f, err
	}
	if f.UserID, err = params.OptionalID(r, "userId"); err != nil {
		return f, err
	}
	if f.Status, err = params.Status(r, "status", status.DonationStatuses); err != nil {
		return f, err
	}
	if f.From, err = params.OptionalDate(r, "from", false); err != nil {
		return f, err
	}
	f.To, err = params.OptionalDate(r, "to", true)
	return f, err
}

// HandleList lists donations for admins, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, err := filterFrom(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "list donations", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Donations.List(ctx, f)
	if err != nil {
		h.ErrLog.Store(w, r, "list donations", err, "", "")
		return
	}
	out, err := h.populate(ctx, list, true)
	if err != nil {
		h.ErrLog.Store(w, r, "list donations: populate", err, "", "")
		return
	}
	respond.OK(w, out)
}
