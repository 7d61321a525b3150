// internal/app/features/events/handler.go
package events

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	eventstore "github.com/mejbaurrahman/JHF/internal/app/store/events"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgEventNotFound = "Event not found"

type Handler struct {
	DB       *mongo.Database
	Events   *eventstore.Store
	Users    *userstore.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Events:   eventstore.New(db),
		Users:    userstore.New(db),
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
