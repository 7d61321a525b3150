// internal/app/features/fees/handler.go
package fees

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	feestore "github.com/mejbaurrahman/JHF/internal/app/store/fees"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Fees     *feestore.Store
	Users    *userstore.Store
	Notifier *notify.Notifier
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Fees:     feestore.New(db),
		Users:    userstore.New(db),
		Notifier: notifier,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
