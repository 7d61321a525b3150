// Package respond writes JSON responses and decodes JSON request bodies.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes int64 = 1 << 20

// MessageBody is the shape of every error response and of simple
// acknowledgements.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v any) { JSON(w, http.StatusOK, v) }

// Created writes v with 201.
func Created(w http.ResponseWriter, v any) { JSON(w, http.StatusCreated, v) }

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

// Error writes err as {"message": ...} with the status its Kind maps to.
func Error(w http.ResponseWriter, err error) {
	Message(w, apperr.Status(apperr.KindOf(err)), apperr.Message(err))
}

// Decode reads a JSON body into dst. Malformed, oversized or empty bodies
// become validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var syn *json.SyntaxError
		var typ *json.UnmarshalTypeError
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("Request body is required")
		case errors.As(err, &syn), errors.Is(err, io.ErrUnexpectedEOF):
			return apperr.Validation("Malformed JSON body")
		case errors.As(err, &typ):
			field := typ.Field
			if field == "" {
				return apperr.Validation("Invalid value in request body")
			}
			return apperr.Validation("Invalid value for " + field)
		case errors.As(err, &tooBig):
			return apperr.Validation("Request body too large")
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			return apperr.Validation(err.Error())
		default:
			return apperr.Validation("Malformed JSON body")
		}
	}
	return nil
}
