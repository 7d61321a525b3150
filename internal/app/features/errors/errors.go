// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"go.uber.org/zap"
)

// ErrorLogger is the single error boundary for handlers: it writes
// {"message": ...} with the status of the error's kind and logs 5xx.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger; a nil logger logs nothing.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

// Respond writes err. op names the failed operation in the log line.
func (e *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := apperr.Status(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		e.log.Error(op,
			zap.Error(err),
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	}
	respond.Error(w, err)
}

// Store classifies a persistence error (not found, duplicate, outage)
// before responding.
func (e *ErrorLogger) Store(w http.ResponseWriter, r *http.Request, op string, err error, notFoundMsg, dupMsg string) {
	e.Respond(w, r, op, apperr.FromStore(err, notFoundMsg, dupMsg))
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusNotFound, "Not found - "+r.URL.Path)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
}
