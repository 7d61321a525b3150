// internal/app/features/notifications/handler.go
package notifications

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	notificationstore "github.com/mejbaurrahman/JHF/internal/app/store/notifications"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgNotificationNotFound = "Notification not found"
	msgNotOwner             = "Not authorized to update this notification"
)

type Handler struct {
	DB            *mongo.Database
	Notifications *notificationstore.Store
	Users         *userstore.Store
	AuditLog      *auditlog.Logger
	ErrLog        *uierrors.ErrorLogger
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Notifications: notificationstore.New(db),
		Users:         userstore.New(db),
		AuditLog:      audit,
		ErrLog:        errLog,
		Log:           logger,
	}
}
