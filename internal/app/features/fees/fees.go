package fees

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	feestore "github.com/mejbaurrahman/JHF/internal/app/store/fees"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createRequest struct {
	UserID        string  `json:"userId" validate:"required,objectid"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Month         int     `json:"month" validate:"min=1,max=12"`
	Year          int     `json:"year" validate:"min=2000,max=2100"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=bkash nagad cash"`
	TransactionID string  `json:"transactionId" validate:"max=100"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending paid failed"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// feeView is a fee with its member populated.
type feeView struct {
	models.Fee
	User *models.UserSummary `json:"user,omitempty"`
}

// HandleMine lists the caller's fees, latest period first.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Fees.ListByUser(ctx, authz.UserID(r))
	if err != nil {
		h.ErrLog.Store(w, r, "my fees", err, "", "")
		return
	}
	respond.OK(w, list)
}

// HandleCreate records a fee for a member and notifies them.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "record fee", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "record fee", err)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(req.UserID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.Respond(w, r, "record fee", apperr.NotFound("User not found"))
			return
		}
		h.ErrLog.Store(w, r, "record fee: user", err, "", "")
		return
	}

	f, err := h.Fees.Create(ctx, models.Fee{
		UserID:        userID,
		Amount:        req.Amount,
		Month:         req.Month,
		Year:          req.Year,
		PaymentMethod: req.PaymentMethod,
		TransactionID: strings.TrimSpace(req.TransactionID),
		Status:        req.Status,
	})
	if err != nil {
		h.ErrLog.Store(w, r, "record fee", err, "", "")
		return
	}

	msg, typ := notify.FeeRecorded(f.Amount, f.Month, f.Year, f.Status)
	h.Notifier.Send(ctx, f.UserID, msg, typ)
	h.AuditLog.Admin(ctx, r, audit.EventFeeRecorded, authz.UserID(r), &f.UserID, map[string]string{
		"fee_id": f.ID.Hex(),
		"amount": strconv.FormatFloat(f.Amount, 'f', -1, 64),
		"period": strconv.Itoa(f.Year) + "-" + strconv.Itoa(f.Month),
	})
	respond.Created(w, f)
}

func filterFrom(r *http.Request) (feestore.Filter, error) {
	var f feestore.Filter
	var err error
	if f.UserID, err = params.OptionalID(r, "userId"); err != nil {
		return f, err
	}
	if f.Month, _, err = params.OptionalInt(r, "month", 1, 12); err != nil {
		return f, err
	}
	if f.Year, _, err = params.OptionalInt(r, "year", 2000, 2100); err != nil {
		return f, err
	}
	f.Status, err = params.Status(r, "status", status.FeeStatuses)
	return f, err
}

// HandleList lists fees for admins with the member populated.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, err := filterFrom(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "list fees", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Fees.List(ctx, f)
	if err != nil {
		h.ErrLog.Store(w, r, "list fees", err, "", "")
		return
	}
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, fee := range list {
		ids = append(ids, fee.UserID)
	}
	users, err := h.Users.Summaries(ctx, ids)
	if err != nil {
		h.ErrLog.Store(w, r, "list fees: users", err, "", "")
		return
	}

	out := make([]feeView, 0, len(list))
	for _, fee := range list {
		v := feeView{Fee: fee}
		if us, ok := users[fee.UserID]; ok {
			v.User = &us
		}
		out = append(out, v)
	}
	respond.OK(w, out)
}

// HandleStatus moves a pending fee to paid or failed.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "fee")
	if err != nil {
		h.ErrLog.Respond(w, r, "fee status", err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "fee status", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "fee status", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := h.Fees.Transition(ctx, id, strings.ToLower(strings.TrimSpace(req.Status)))
	switch {
	case errors.Is(err, status.ErrTerminal):
		h.ErrLog.Respond(w, r, "fee status", apperr.Wrap(apperr.KindValidation, "Fee has already been processed", err))
		return
	case errors.Is(err, status.ErrBadTransition):
		h.ErrLog.Respond(w, r, "fee status", apperr.Wrap(apperr.KindValidation, "Status must be paid or failed", err))
		return
	case err != nil:
		h.ErrLog.Store(w, r, "fee status", err, "Fee not found", "")
		return
	}

	msg, typ := notify.FeeRecorded(f.Amount, f.Month, f.Year, f.Status)
	h.Notifier.Send(ctx, f.UserID, msg, typ)
	h.AuditLog.Admin(ctx, r, audit.EventFeeStatusChanged, authz.UserID(r), &f.UserID, map[string]string{
		"fee_id": f.ID.Hex(),
		"status": f.Status,
	})
	respond.OK(w, f)
}
