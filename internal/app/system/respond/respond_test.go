package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.Forbidden("Not authorized to update this notification"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
	var body MessageBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Not authorized to update this notification" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Title  string  `json:"title"`
		Amount float64 `json:"amount"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"title":"Mahfil","amount":10}`, ""},
		{"empty", ``, "Request body is required"},
		{"syntax", `{"title":`, "Malformed JSON body"},
		{"type", `{"amount":"ten"}`, "Invalid value for amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var p payload
			err := Decode(rec, req, &p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.Title != "Mahfil" || p.Amount != 10 {
					t.Errorf("decoded %+v", p)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("kind: got %v", apperr.KindOf(err))
			}
			if apperr.Message(err) != tt.wantErr {
				t.Errorf("message: got %q, want %q", apperr.Message(err), tt.wantErr)
			}
		})
	}
}
