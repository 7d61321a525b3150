package expenses

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	expensestore "github.com/mejbaurrahman/JHF/internal/app/store/expenses"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// expenseRequest serves both create and update; update leaves nil fields alone.
type expenseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	EventID     *string  `json:"eventId"`
}

type expenseView struct {
	models.Expense
	Event *models.EventSummary `json:"event,omitempty"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// toUpdate parses req. Dates and ids are validated, the event must exist.
func (h *Handler) toUpdate(ctx context.Context, req expenseRequest) (expensestore.Update, error) {
	var upd expensestore.Update
	if req.Title != nil {
		t := htmlsanitize.PlainText(str(req.Title))
		if t == "" {
			return upd, apperr.Validation("title is required")
		}
		upd.Title = &t
	}
	upd.Amount = req.Amount
	if req.Category != nil {
		c := htmlsanitize.PlainText(str(req.Category))
		upd.Category = &c
	}
	if req.Description != nil {
		d := htmlsanitize.PlainText(str(req.Description))
		upd.Description = &d
	}
	var err error
	if req.Date != nil {
		if upd.Date, err = params.BodyDate("date", *req.Date); err != nil {
			return upd, err
		}
	}
	if req.EventID != nil {
		if upd.EventID, err = params.BodyID("eventId", *req.EventID); err != nil {
			return upd, err
		}
		if upd.EventID != nil {
			if _, err := h.Events.GetByID(ctx, *upd.EventID); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return upd, apperr.NotFound("Event not found")
				}
				return upd, err
			}
		}
	}
	return upd, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (expenseRequest, error) {
	var req expenseRequest
	if err := respond.Decode(w, r, &req); err != nil {
		return req, err
	}
	return req, validate.Struct(req)
}

// HandleList returns every expense, latest first, with its event.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Expenses.List(ctx)
	if err != nil {
		h.ErrLog.Store(w, r, "list expenses", err, "", "")
		return
	}
	var ids []primitive.ObjectID
	for _, e := range list {
		if e.EventID != nil {
			ids = append(ids, *e.EventID)
		}
	}
	evs, err := h.Events.Summaries(ctx, ids)
	if err != nil {
		h.ErrLog.Store(w, r, "list expenses: events", err, "", "")
		return
	}

	out := make([]expenseView, 0, len(list))
	for _, e := range list {
		v := expenseView{Expense: e}
		if e.EventID != nil {
			if es, ok := evs[*e.EventID]; ok {
				v.Event = &es
			}
		}
		out = append(out, v)
	}
	respond.OK(w, out)
}

// HandleCreate records an expense. Title and amount are required.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.ErrLog.Respond(w, r, "create expense", err)
		return
	}
	if str(req.Title) == "" {
		h.ErrLog.Respond(w, r, "create expense", apperr.Validation("title is required"))
		return
	}
	if req.Amount == nil {
		h.ErrLog.Respond(w, r, "create expense", apperr.Validation("amount is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd, err := h.toUpdate(ctx, req)
	if err != nil {
		h.ErrLog.Store(w, r, "create expense", err, "", "")
		return
	}
	e := models.Expense{
		Title:   *upd.Title,
		Amount:  *upd.Amount,
		EventID: upd.EventID,
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	e.CreatedBy = authz.UserIDPtr(r)

	e, err = h.Expenses.Create(ctx, e)
	if err != nil {
		h.ErrLog.Store(w, r, "create expense", err, "", "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventExpenseCreated, authz.UserID(r), nil, map[string]string{
		"expense_id": e.ID.Hex(),
		"amount":     strconv.FormatFloat(e.Amount, 'f', -1, 64),
	})
	respond.Created(w, e)
}

// HandleUpdate edits the fields present in the body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "expense")
	if err != nil {
		h.ErrLog.Respond(w, r, "update expense", err)
		return
	}
	req, err := h.decode(w, r)
	if err != nil {
		h.ErrLog.Respond(w, r, "update expense", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd, err := h.toUpdate(ctx, req)
	if err != nil {
		h.ErrLog.Store(w, r, "update expense", err, "", "")
		return
	}
	e, err := h.Expenses.Update(ctx, id, upd)
	if err != nil {
		h.ErrLog.Store(w, r, "update expense", err, msgExpenseNotFound, "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventExpenseUpdated, authz.UserID(r), nil, map[string]string{"expense_id": e.ID.Hex()})
	respond.OK(w, e)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "expense")
	if err != nil {
		h.ErrLog.Respond(w, r, "delete expense", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Expenses.Delete(ctx, id); err != nil {
		h.ErrLog.Store(w, r, "delete expense", err, msgExpenseNotFound, "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventExpenseDeleted, authz.UserID(r), nil, map[string]string{"expense_id": id.Hex()})
	respond.Message(w, http.StatusOK, "Expense removed")
}
