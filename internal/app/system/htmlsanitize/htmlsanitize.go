// Package htmlsanitize cleans admin-authored rich text before storage.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		rich = bluemonday.UGCPolicy()
		rich.AllowAttrs("class").OnElements("table", "th", "td", "p", "span")
		rich.RequireNoFollowOnLinks(false)
		strict = bluemonday.StrictPolicy()
	})
	return rich, strict
}

// Sanitize keeps formatting markup (paragraphs, lists, links, tables) and
// drops scripts, event handlers, iframes and styles.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	p, _ := policies()
	return strings.TrimSpace(p.Sanitize(s))
}

// PlainText strips every tag.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}

// SanitizeValue walks JSON-like data and sanitizes every string in place of
// the original. Maps and slices are copied.
func SanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return Sanitize(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = SanitizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SanitizeValue(val)
		}
		return out
	default:
		return v
	}
}
