package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	eventstore "github.com/mejbaurrahman/JHF/internal/app/store/events"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/slug"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (eventRequest, error) {
	var req eventRequest
	if err := respond.Decode(w, r, &req); err != nil {
		return req, err
	}
	req.Type = lowered(req.Type)
	req.Status = lowered(req.Status)
	return req, validate.Struct(req)
}

// lowered folds enum input so stored values match list and count filters.
func lowered(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(*p))
	return &s
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Validation("endDate must not be before startDate")
	}
	return nil
}

// managers parses the requested manager ids and keeps those that exist.
func (h *Handler) managers(ctx context.Context, raw *[]string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	ids, err := params.BodyIDs("managers", *raw)
	if err != nil {
		return nil, err
	}
	return h.Users.FilterExisting(ctx, ids)
}

// HandleCreate creates an event. The slug comes from the request's slug
// when it normalizes to something, otherwise from the title; collisions
// get a numeric suffix.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.ErrLog.Respond(w, r, "create event", err)
		return
	}
	title := trimmed(req.Title)
	if title == nil || *title == "" {
		h.ErrLog.Respond(w, r, "create event", apperr.Validation("title is required"))
		return
	}

	var start, end *time.Time
	if req.StartDate != nil {
		if start, err = params.BodyDate("startDate", *req.StartDate); err != nil {
			h.ErrLog.Respond(w, r, "create event", err)
			return
		}
	}
	if req.EndDate != nil {
		if end, err = params.BodyDate("endDate", *req.EndDate); err != nil {
			h.ErrLog.Respond(w, r, "create event", err)
			return
		}
	}
	if err := checkRange(start, end); err != nil {
		h.ErrLog.Respond(w, r, "create event", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mgrs, err := h.managers(ctx, req.ManagerIDs)
	if err != nil {
		h.ErrLog.Store(w, r, "create event: managers", err, "", "")
		return
	}

	e := models.Event{
		Title:      *title,
		StartDate:  start,
		EndDate:    end,
		IsPublic:   true,
		ManagerIDs: mgrs,
		CreatedBy:  authz.UserIDPtr(r),
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.Description != nil {
		e.Description = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Location != nil {
		e.Location = htmlsanitize.PlainText(*req.Location)
	}
	if req.EstimatedBudget != nil {
		e.EstimatedBudget = *req.EstimatedBudget
	}
	if req.BannerURL != nil {
		e.BannerURL = strings.TrimSpace(*req.BannerURL)
	}
	if req.IsPublic != nil {
		e.IsPublic = *req.IsPublic
	}

	base := ""
	if req.Slug != nil {
		base = slug.Normalize(*req.Slug)
	}
	if base == "" {
		base = slug.FromTitle(*title, time.Now())
	}

	created, err := h.Events.CreateUnique(ctx, e, base)
	if err != nil {
		h.storeErr(w, r, "create event", err)
		return
	}

	h.AuditLog.Admin(ctx, r, audit.EventEventCreated, authz.UserID(r), nil, map[string]string{
		"event_id": created.ID.Hex(),
		"slug":     created.Slug,
	})
	respond.Created(w, created)
}

func (h *Handler) storeErr(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, eventstore.ErrDuplicateSlug) {
		h.ErrLog.Respond(w, r, op, apperr.Duplicate(err.Error()))
		return
	}
	h.ErrLog.Store(w, r, op, err, msgEventNotFound, "")
}

// HandleUpdate applies the fields present in the request.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "event")
	if err != nil {
		h.ErrLog.Respond(w, r, "update event", err)
		return
	}
	req, err := h.decode(w, r)
	if err != nil {
		h.ErrLog.Respond(w, r, "update event", err)
		return
	}

	var upd eventstore.Update
	if t := trimmed(req.Title); t != nil {
		if *t == "" {
			h.ErrLog.Respond(w, r, "update event", apperr.Validation("title is required"))
			return
		}
		upd.Title = t
	}
	if req.Slug != nil {
		s := slug.Normalize(*req.Slug)
		if s == "" {
			h.ErrLog.Respond(w, r, "update event", apperr.Validation("Invalid slug"))
			return
		}
		upd.Slug = &s
	}
	if req.StartDate != nil {
		if upd.StartDate, err = params.BodyDate("startDate", *req.StartDate); err != nil {
			h.ErrLog.Respond(w, r, "update event", err)
			return
		}
	}
	if req.EndDate != nil {
		if upd.EndDate, err = params.BodyDate("endDate", *req.EndDate); err != nil {
			h.ErrLog.Respond(w, r, "update event", err)
			return
		}
	}
	if req.Description != nil {
		d := htmlsanitize.Sanitize(*req.Description)
		upd.Description = &d
	}
	if req.Location != nil {
		l := htmlsanitize.PlainText(*req.Location)
		upd.Location = &l
	}
	upd.Type = req.Type
	upd.Status = req.Status
	upd.EstimatedBudget = req.EstimatedBudget
	upd.BannerURL = trimmed(req.BannerURL)
	upd.IsPublic = req.IsPublic

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if upd.StartDate != nil || upd.EndDate != nil {
		cur, err := h.Events.GetByID(ctx, id)
		if err != nil {
			h.storeErr(w, r, "update event: load", err)
			return
		}
		start, end := cur.StartDate, cur.EndDate
		if upd.StartDate != nil {
			start = upd.StartDate
		}
		if upd.EndDate != nil {
			end = upd.EndDate
		}
		if err := checkRange(start, end); err != nil {
			h.ErrLog.Respond(w, r, "update event", err)
			return
		}
	}

	if upd.ManagerIDs, err = h.managers(ctx, req.ManagerIDs); err != nil {
		h.ErrLog.Store(w, r, "update event: managers", err, "", "")
		return
	}

	e, err := h.Events.Update(ctx, id, upd)
	if err != nil {
		h.storeErr(w, r, "update event", err)
		return
	}

	h.AuditLog.Admin(ctx, r, audit.EventEventUpdated, authz.UserID(r), nil, map[string]string{"event_id": id.Hex()})
	respond.OK(w, e)
}

// HandleDelete removes an event.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "event")
	if err != nil {
		h.ErrLog.Respond(w, r, "delete event", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		h.storeErr(w, r, "delete event", err)
		return
	}

	h.AuditLog.Admin(ctx, r, audit.EventEventDeleted, authz.UserID(r), nil, map[string]string{"event_id": id.Hex()})
	respond.Message(w, http.StatusOK, "Event removed")
}

// HandleStatus sets any valid status, whatever the current one is.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "event")
	if err != nil {
		h.ErrLog.Respond(w, r, "event status", err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "event status", err)
		return
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "event status", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.SetStatus(ctx, id, req.Status)
	if err != nil {
		h.storeErr(w, r, "event status", err)
		return
	}

	h.AuditLog.Admin(ctx, r, audit.EventEventStatusChanged, authz.UserID(r), nil, map[string]string{
		"event_id": id.Hex(),
		"status":   e.Status,
	})
	respond.OK(w, e)
}
