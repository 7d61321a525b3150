// Package params reads path and query parameters into typed values.
// Malformed input becomes an apperr validation error; an absent optional
// parameter is a nil or zero value, meaning "no constraint".
package params

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/normalize"
	"github.com/mejbaurrahman/JHF/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func get(r *http.Request, key string) string {
	return strings.TrimSpace(query.Get(r, key))
}

// ID parses the chi URL parameter name as an ObjectID. label names the
// entity in the error message ("Invalid donation id").
func ID(r *http.Request, name, label string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid " + label + " id")
	}
	return oid, nil
}

// OptionalID parses query parameter key as an ObjectID.
func OptionalID(r *http.Request, key string) (*primitive.ObjectID, error) {
	v := get(r, key)
	if v == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return nil, apperr.Validation("Invalid " + key)
	}
	return &oid, nil
}

// OptionalInt parses query parameter key and checks it lies in [min, max].
func OptionalInt(r *http.Request, key string, min, max int) (int, bool, error) {
	v := get(r, key)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return 0, false, apperr.Validation("Invalid " + key)
	}
	return n, true, nil
}

// OptionalDate parses query parameter key. With endOfDay set, a plain
// YYYY-MM-DD value is moved to the last instant of that day so it works
// as an inclusive upper bound.
func OptionalDate(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	v := get(r, key)
	if v == "" {
		return nil, nil
	}
	t, err := normalize.ParseDate(v)
	if err != nil {
		return nil, apperr.Validation("Invalid " + key)
	}
	if endOfDay && len(v) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// Status reads a status filter. "" and "all" mean no filter; anything else
// must belong to allowed.
func Status(r *http.Request, key string, allowed []string) (string, error) {
	v := strings.ToLower(get(r, key))
	if v == "" || v == "all" {
		return "", nil
	}
	if !status.In(v, allowed) {
		return "", apperr.Validation("Invalid " + key)
	}
	return v, nil
}

// BodyDate parses a date taken from a request body. "" yields nil.
func BodyDate(field, v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := normalize.ParseDate(v)
	if err != nil {
		return nil, apperr.Validation("Invalid " + field)
	}
	return &t, nil
}

// BodyIDs parses a list of hex ids from a request body.
func BodyIDs(field string, vs []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(vs))
	for _, v := range vs {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(v))
		if err != nil {
			return nil, apperr.Validation("Invalid " + field)
		}
		out = append(out, oid)
	}
	return out, nil
}

// BodyID parses an optional hex id from a request body. "" yields nil.
func BodyID(field, v string) (*primitive.ObjectID, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(v))
	if err != nil {
		return nil, apperr.Validation("Invalid " + field)
	}
	return &oid, nil
}
