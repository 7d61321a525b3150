package events

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleList returns public events, optionally filtered by ?status=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	st, err := params.Status(r, "status", status.EventStatuses)
	if err != nil {
		h.ErrLog.Respond(w, r, "list events", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Events.ListPublic(ctx, st)
	if err != nil {
		h.ErrLog.Store(w, r, "list events", err, "", "")
		return
	}
	respond.OK(w, list)
}

// HandleUpcoming returns public events that are upcoming or ongoing.
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Events.Upcoming(ctx)
	if err != nil {
		h.ErrLog.Store(w, r, "upcoming events", err, "", "")
		return
	}
	respond.OK(w, list)
}

// HandleDetail resolves /events/{id} by slug first, then by ObjectID.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.Find(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Store(w, r, "event detail", err, msgEventNotFound, "")
		return
	}

	ids := append([]primitive.ObjectID{}, e.ManagerIDs...)
	if e.CreatedBy != nil {
		ids = append(ids, *e.CreatedBy)
	}
	people, err := h.Users.Summaries(ctx, ids)
	if err != nil {
		h.ErrLog.Store(w, r, "event detail: people", err, "", "")
		return
	}

	out := eventDetail{Event: e, Managers: []models.UserSummary{}}
	for _, id := range e.ManagerIDs {
		if us, ok := people[id]; ok {
			out.Managers = append(out.Managers, us)
		}
	}
	if e.CreatedBy != nil {
		if us, ok := people[*e.CreatedBy]; ok {
			out.Creator = &us
		}
	}
	respond.OK(w, out)
}
