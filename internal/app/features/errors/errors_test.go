package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestRespond_StatusAndLogging(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
		logged bool
	}{
		{"validation", apperr.Validation("Amount is required"), 400, "Amount is required", false},
		{"forbidden", apperr.Forbidden("nope"), 403, "nope", false},
		{"unavailable", apperr.Unavailable(fmt.Errorf("dial")), 503, apperr.MsgUnavailable, true},
		{"plain", fmt.Errorf("boom: secret detail"), 500, apperr.MsgInternal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			el := uierrors.NewErrorLogger(zap.New(core))
			rec := httptest.NewRecorder()
			el.Respond(rec, httptest.NewRequest("GET", "/api/x", nil), "op", tt.err)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if got := message(t, rec); got != tt.msg {
				t.Errorf("message: got %q, want %q", got, tt.msg)
			}
			if (logs.Len() > 0) != tt.logged {
				t.Errorf("logged: got %d entries, want logged=%v", logs.Len(), tt.logged)
			}
		})
	}
}

func TestStore_ClassifiesNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.NewErrorLogger(nil).Store(rec, httptest.NewRequest("GET", "/", nil), "load", mongo.ErrNoDocuments, "Event not found", "")
	if rec.Code != http.StatusNotFound || message(t, rec) != "Event not found" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.NotFound(rec, httptest.NewRequest("GET", "/api/nope", nil))
	if rec.Code != 404 || message(t, rec) != "Not found - /api/nope" {
		t.Errorf("404: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	uierrors.MethodNotAllowed(rec, httptest.NewRequest("PATCH", "/api/events", nil))
	if rec.Code != 405 {
		t.Errorf("405: got %d", rec.Code)
	}
}
