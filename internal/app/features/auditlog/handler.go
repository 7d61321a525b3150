package auditlog

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin view of audit_events. Actor ids are resolved
// to names through the user store.
type Handler struct {
	Audit  *audit.Store
	Users  *userstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Audit:  audit.New(db),
		Users:  userstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
