package notifications

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
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

type sendRequest struct {
	UserID  string `json:"userId" validate:"required,objectid"`
	Message string `json:"message" validate:"notblank,max=1000"`
	Type    string `json:"type" validate:"omitempty,oneof=info success warning error"`
}

// HandleMine lists the caller's notifications, newest first.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, authz.UserID(r))
	if err != nil {
		h.ErrLog.Store(w, r, "list notifications", err, "", "")
		return
	}
	respond.OK(w, list)
}

func (h *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.UnreadCount(ctx, authz.UserID(r))
	if err != nil {
		h.ErrLog.Store(w, r, "unread notifications", err, "", "")
		return
	}
	respond.OK(w, map[string]int64{"count": n})
}

// HandleMarkRead marks one notification read. Only its owner may do so;
// marking an already-read notification succeeds unchanged.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "notification")
	if err != nil {
		h.ErrLog.Respond(w, r, "mark notification read", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.Store(w, r, "mark notification read", err, msgNotificationNotFound, "")
		return
	}
	if err := authz.RequireOwner(r, n.UserID, msgNotOwner); err != nil {
		h.ErrLog.Respond(w, r, "mark notification read", err)
		return
	}
	n, err = h.Notifications.MarkRead(ctx, id)
	if err != nil {
		h.ErrLog.Store(w, r, "mark notification read", err, msgNotificationNotFound, "")
		return
	}
	respond.OK(w, n)
}

func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Notifications.MarkAllRead(ctx, authz.UserID(r))
	if err != nil {
		h.ErrLog.Store(w, r, "mark all notifications read", err, "", "")
		return
	}
	respond.OK(w, map[string]int64{"updated": n})
}

// HandleSend lets an admin message one member.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "send notification", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "send notification", err)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(req.UserID)
	msg := htmlsanitize.PlainText(strings.TrimSpace(req.Message))
	if msg == "" {
		h.ErrLog.Respond(w, r, "send notification", apperr.Validation("message is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.Respond(w, r, "send notification", apperr.NotFound("User not found"))
			return
		}
		h.ErrLog.Store(w, r, "send notification: user", err, "", "")
		return
	}
	n, err := h.Notifications.Create(ctx, models.Notification{UserID: userID, Message: msg, Type: req.Type})
	if err != nil {
		h.ErrLog.Store(w, r, "send notification", err, "", "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventNotificationSent, authz.UserID(r), &userID, map[string]string{"notification_id": n.ID.Hex()})
	respond.Created(w, n)
}
