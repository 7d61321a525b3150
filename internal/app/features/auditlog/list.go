// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pageSize = 50

func filterFrom(r *http.Request) (audit.QueryFilter, int, error) {
	var f audit.QueryFilter
	var err error

	q := r.URL.Query()
	f.Category = strings.ToLower(strings.TrimSpace(q.Get("category")))
	if f.Category != "" && eventTypesForCategory(f.Category) == nil {
		return f, 0, apperr.Validation("Invalid category")
	}
	f.EventType = strings.ToLower(strings.TrimSpace(q.Get("eventType")))
	if f.EventType != "" && !status.In(f.EventType, eventTypesForCategory(f.Category)) {
		return f, 0, apperr.Validation("Invalid eventType")
	}
	if f.UserID, err = params.OptionalID(r, "userId"); err != nil {
		return f, 0, err
	}
	if f.StartTime, err = params.OptionalDate(r, "from", false); err != nil {
		return f, 0, err
	}
	if f.EndTime, err = params.OptionalDate(r, "to", true); err != nil {
		return f, 0, err
	}
	page, ok, err := params.OptionalInt(r, "page", 1, 1_000_000)
	if err != nil {
		return f, 0, err
	}
	if !ok {
		page = 1
	}
	f.Limit = pageSize
	f.Offset = int64((page - 1) * pageSize)
	return f, page, nil
}

// HandleList serves GET /audit: the filtered audit trail, newest first,
// fifty per page.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, page, err := filterFrom(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "audit log list", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		h.ErrLog.Store(w, r, "audit log list", err, "", "")
		return
	}
	total, err := h.Audit.Count(ctx, filter)
	if err != nil {
		h.ErrLog.Store(w, r, "audit log count", err, "", "")
		return
	}

	totalPages := int((total + pageSize - 1) / pageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	respond.OK(w, listResponse{
		Items:      h.resolve(ctx, events),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	})
}

// HandleFailedLogins serves GET /audit/failed-logins?hours=N (default 24).
func (h *Handler) HandleFailedLogins(w http.ResponseWriter, r *http.Request) {
	hours, ok, err := params.OptionalInt(r, "hours", 1, 24*90)
	if err != nil {
		h.ErrLog.Respond(w, r, "failed logins", err)
		return
	}
	if !ok {
		hours = 24
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	events, err := h.Audit.FailedLogins(ctx, since, audit.DefaultLimit)
	if err != nil {
		h.ErrLog.Store(w, r, "failed logins", err, "", "")
		return
	}
	respond.OK(w, h.resolve(ctx, events))
}

// resolve turns events into list items, naming actors and targets. A name
// lookup failure falls back to hex ids.
func (h *Handler) resolve(ctx context.Context, events []audit.Event) []listItem {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id *primitive.ObjectID) {
		if id == nil {
			return
		}
		if _, ok := seen[*id]; !ok {
			seen[*id] = struct{}{}
			ids = append(ids, *id)
		}
	}
	for _, e := range events {
		add(e.ActorID)
		add(e.UserID)
	}

	names := make(map[primitive.ObjectID]string, len(ids))
	if users, err := h.Users.Summaries(ctx, ids); err != nil {
		h.Log.Warn("failed to fetch user names for audit log", zap.Error(err))
	} else {
		for id, u := range users {
			names[id] = u.Name
		}
	}
	name := func(id *primitive.ObjectID) string {
		if id == nil {
			return ""
		}
		if n, ok := names[*id]; ok {
			return n
		}
		return id.Hex()
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			ID:         e.ID.Hex(),
			Timestamp:  e.Timestamp,
			Category:   e.Category,
			EventType:  e.EventType,
			ActorName:  name(e.ActorID),
			TargetName: name(e.UserID),
			IP:         e.IP,
			Success:    e.Success,
			Reason:     e.FailureReason,
			Details:    e.Details,
		})
	}
	return items
}
