// internal/app/features/expenses/handler.go
package expenses

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	eventstore "github.com/mejbaurrahman/JHF/internal/app/store/events"
	expensestore "github.com/mejbaurrahman/JHF/internal/app/store/expenses"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgExpenseNotFound = "Expense not found"

type Handler struct {
	DB       *mongo.Database
	Expenses *expensestore.Store
	Events   *eventstore.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Expenses: expensestore.New(db),
		Events:   eventstore.New(db),
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
