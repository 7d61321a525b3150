// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	"github.com/mejbaurrahman/JHF/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config selects a destination per category.
type Config struct {
	Auth  string // login, registration, profile changes
	Admin string // user management and financial/content mutations
}

// Logger records audit events to MongoDB (audit.Store) and/or zap.
// A nil *Logger is a valid no-op.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records event according to the category's configured destination.
// Unknown categories go everywhere.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := All
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}

	if setting == Off {
		return
	}
	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

// requestID correlates an audit record with the request log line. Requests
// that bypassed the RequestID middleware get a fresh id.
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func authEvent(r *http.Request, eventType string, userID *primitive.ObjectID, success bool, reason string, details map[string]string) audit.Event {
	return audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		UserID:        userID,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		RequestID:     requestID(r),
		Success:       success,
		FailureReason: reason,
		Details:       details,
	}
}

/* ---------------------------- authentication ---------------------------- */

func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, phone string) {
	l.Log(ctx, authEvent(r, audit.EventLoginSuccess, &userID, true, "", map[string]string{"phone": phone}))
}

func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, phone string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedUserNotFound, nil, false, "user not found",
		map[string]string{"attempted_phone": phone}))
}

func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, phone string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedWrongPassword, &userID, false, "wrong password",
		map[string]string{"phone": phone}))
}

func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, userID primitive.ObjectID, phone string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedUserDisabled, &userID, false, "account inactive",
		map[string]string{"phone": phone}))
}

func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, phone string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedRateLimit, nil, false, "rate limited",
		map[string]string{"attempted_phone": phone}))
}

// UserRegistered logs a self-registration.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID primitive.ObjectID, phone string) {
	l.Log(ctx, authEvent(r, audit.EventUserRegistered, &userID, true, "", map[string]string{"phone": phone}))
}

// ProfileUpdated logs a self-service profile change, plus a separate
// password event when the password changed.
func (l *Logger) ProfileUpdated(ctx context.Context, r *http.Request, userID primitive.ObjectID, passwordChanged bool) {
	l.Log(ctx, authEvent(r, audit.EventProfileUpdated, &userID, true, "", nil))
	if passwordChanged {
		l.Log(ctx, authEvent(r, audit.EventPasswordChanged, &userID, true, "", nil))
	}
}

/* ------------------------------ admin actions ---------------------------- */

// Admin logs an admin mutation performed by actor. target is the affected
// user, if any.
func (l *Logger) Admin(ctx context.Context, r *http.Request, eventType string, actor primitive.ObjectID, target *primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		UserID:    target,
		ActorID:   &actor,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		RequestID: requestID(r),
		Success:   true,
		Details:   details,
	})
}

func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actor, user primitive.ObjectID, role string) {
	l.Admin(ctx, r, audit.EventUserCreated, actor, &user, map[string]string{"role": role})
}

func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actor, user primitive.ObjectID) {
	l.Admin(ctx, r, audit.EventUserDeleted, actor, &user, nil)
}

func (l *Logger) UserRoleChanged(ctx context.Context, r *http.Request, actor, user primitive.ObjectID, oldRole, newRole string) {
	l.Admin(ctx, r, audit.EventUserRoleChanged, actor, &user, map[string]string{
		"old_role": oldRole,
		"new_role": newRole,
	})
}

func (l *Logger) UserStatusChanged(ctx context.Context, r *http.Request, actor, user primitive.ObjectID, isActive bool, membership string) {
	l.Admin(ctx, r, audit.EventUserStatusChanged, actor, &user, map[string]string{
		"is_active":         strconv.FormatBool(isActive),
		"membership_status": membership,
	})
}

// DonationStatusChanged logs a donation transition. donor is the attributed
// user, if any.
func (l *Logger) DonationStatusChanged(ctx context.Context, r *http.Request, actor, donationID primitive.ObjectID, donor *primitive.ObjectID, to string) {
	l.Admin(ctx, r, audit.EventDonationStatusChanged, actor, donor, map[string]string{
		"donation_id": donationID.Hex(),
		"status":      to,
	})
}
