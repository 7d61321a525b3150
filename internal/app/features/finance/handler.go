// internal/app/features/finance/handler.go
package finance

import (
	"context"
	"net/http"

	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/store/queries/financequeries"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/finance"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Source finance.Source
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Source: financequeries.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

// HandleSummary serves the dashboard finance snapshot.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sum, err := finance.Summarize(ctx, h.Source)
	if err != nil {
		h.ErrLog.Respond(w, r, "finance summary", apperr.FromStore(err, "", ""))
		return
	}
	respond.OK(w, sum)
}
