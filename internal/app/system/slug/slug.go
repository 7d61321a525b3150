// Package slug builds URL-safe, unique event slugs.
//
// Every slug produced here matches [a-z0-9]+(-[a-z0-9]+)* and is stable
// under Normalize.
package slug

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxAttempts bounds the numeric-suffix search before Unique falls back to
// a timestamp suffix.
const MaxAttempts = 1000

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Pattern matches a well-formed slug.
var Pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Normalize lowercases s, collapses every run of characters outside
// [a-z0-9] into one hyphen, and strips leading/trailing hyphens.
// The result may be empty.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fallback returns "event-<unix-ms>-<7 base36 chars>" for titles that
// normalize to nothing.
func Fallback(now time.Time) string {
	return "event-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + randomBase36(7)
}

// FromTitle returns Normalize(title), or Fallback when that is empty.
func FromTitle(title string, now time.Time) string {
	if s := Normalize(title); s != "" {
		return s
	}
	return Fallback(now)
}

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique returns base if free, else the first free base-1, base-2, ....
// After MaxAttempts taken suffixes it returns base-<unix-ms>.
func Unique(ctx context.Context, base string, exists ExistsFunc, now func() time.Time) (string, error) {
	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	for i := 1; i <= MaxAttempts; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	if now == nil {
		now = time.Now
	}
	return base + "-" + strconv.FormatInt(now().UnixMilli(), 10), nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(base36[time.Now().UnixNano()%36])
			continue
		}
		b.WriteByte(base36[idx.Int64()])
	}
	return b.String()
}
