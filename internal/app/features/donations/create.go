package donations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCreate records a pending donation. Anyone may donate; a valid
// token attributes the donation to the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "create donation", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "create donation", err)
		return
	}

	d := models.Donation{
		DonorName:     htmlsanitize.PlainText(req.DonorName),
		DonorPhone:    strings.TrimSpace(req.DonorPhone),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: strings.TrimSpace(req.TransactionID),
		IsAnonymous:   req.IsAnonymous,
	}
	if id, ok := sysauth.CurrentUser(r); ok {
		d.UserID = &id.ID
		if d.DonorName == "" {
			d.DonorName = id.Name
		}
		if d.DonorPhone == "" {
			d.DonorPhone = id.Phone
		}
	}
	if d.DonorName == "" {
		h.ErrLog.Respond(w, r, "create donation", apperr.Validation("donorName is required"))
		return
	}

	var err error
	if d.EventID, err = params.BodyID("eventId", req.EventID); err != nil {
		h.ErrLog.Respond(w, r, "create donation", err)
		return
	}
	date, err := params.BodyDate("donationDate", req.DonationDate)
	if err != nil {
		h.ErrLog.Respond(w, r, "create donation", err)
		return
	}
	if date != nil {
		d.DonationDate = *date
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if d.EventID != nil {
		if _, err := h.Events.GetByID(ctx, *d.EventID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				h.ErrLog.Respond(w, r, "create donation", apperr.NotFound("Event not found"))
				return
			}
			h.ErrLog.Store(w, r, "create donation: event", err, "", "")
			return
		}
	}

	created, err := h.Donations.Create(ctx, d)
	if err != nil {
		h.ErrLog.Store(w, r, "create donation", err, "", "")
		return
	}
	respond.Created(w, created)
}
