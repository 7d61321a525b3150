// Package normalize cleans user-supplied values before they are stored or
// compared.
package normalize

import (
	"errors"
	"strings"
	"time"
)

// Email trims and lowercases.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims and collapses inner whitespace. Case is preserved.
func Name(s string) string { return strings.Join(strings.Fields(s), " ") }

// Phone strips spaces, so "017 1100 0000" and "01711000000" are one login.
func Phone(s string) string { return strings.Join(strings.Fields(s), "") }

// Role trims and lowercases a stored role string.
func Role(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// QueryParam trims a query-string value.
func QueryParam(s string) string { return strings.TrimSpace(s) }

// ErrBadDate is returned by ParseDate for unrecognized input.
var ErrBadDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps, HTML datetime-local values, and
// plain dates. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBadDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDate
}
