// Package apperr defines the typed error taxonomy shared by stores, system
// packages and HTTP handlers. Each Kind maps to exactly one HTTP status.
package apperr

import (
	"context"
	"errors"
	"net/http"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindUnavailable
)

// MsgInternal is the only message ever shown for internal failures.
const MsgInternal = "Internal server error"

// MsgUnavailable is shown when the database cannot be reached.
const MsgUnavailable = "Database not connected. Please try again later."

// Error is a classified error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so callers can write
// errors.Is(err, apperr.NotFound("")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// Wrap attaches kind and msg to a lower-level cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func Duplicate(msg string) *Error    { return New(KindDuplicate, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }

// Unavailable wraps a persistence outage.
func Unavailable(err error) *Error { return Wrap(KindUnavailable, MsgUnavailable, err) }

// KindOf returns the Kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps a Kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Internal errors never
// leak their cause.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal && ae.Message != "" {
		return ae.Message
	}
	return MsgInternal
}

// FromStore classifies a MongoDB error. notFoundMsg is used for
// mongo.ErrNoDocuments; dupMsg for duplicate-key violations.
// Already-classified errors pass through unchanged.
func FromStore(err error, notFoundMsg, dupMsg string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return Wrap(KindNotFound, notFoundMsg, err)
	case wafflemongo.IsDup(err):
		return Wrap(KindDuplicate, dupMsg, err)
	case isSchemaRejection(err):
		return Wrap(KindValidation, "Invalid field value", err)
	case IsUnavailable(err):
		return Unavailable(err)
	}
	return err
}

// documentValidationFailure is the server code for a $jsonSchema rejection.
const documentValidationFailure = 121

func isSchemaRejection(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(documentValidationFailure)
}

// IsUnavailable reports whether err indicates the database is unreachable
// (network failure, server selection failure, timeout, closed client).
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var sse topology.ServerSelectionError
	if errors.As(err, &sse) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
