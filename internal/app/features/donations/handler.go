// internal/app/features/donations/handler.go
package donations

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	donationstore "github.com/mejbaurrahman/JHF/internal/app/store/donations"
	eventstore "github.com/mejbaurrahman/JHF/internal/app/store/events"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgDonationNotFound = "Donation not found"

type Handler struct {
	DB        *mongo.Database
	Donations *donationstore.Store
	Events    *eventstore.Store
	Users     *userstore.Store
	Notifier  *notify.Notifier
	AuditLog  *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Donations: donationstore.New(db),
		Events:    eventstore.New(db),
		Users:     userstore.New(db),
		Notifier:  notifier,
		AuditLog:  audit,
		ErrLog:    errLog,
		Log:       logger,
	}
}
