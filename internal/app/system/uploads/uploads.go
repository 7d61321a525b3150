// Package uploads validates uploaded images and stores them on a backend.
package uploads

import (
	"context"
	"io"
	"math/rand/v2"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
)

// DefaultMaxBytes is the largest accepted upload.
const DefaultMaxBytes int64 = 5 << 20

// FieldName is the multipart field that carries the image.
const FieldName = "image"

var (
	ErrInvalidFileType = apperr.Validation("Images only! Allowed formats: jpg, jpeg, png, gif, webp")
	ErrFileTooLarge    = apperr.Validation("File too large")
	ErrNoFile          = apperr.Validation("No file uploaded")
)

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedMIME = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true, "image/gif": true, "image/webp": true,
}

// Validate checks the file name's extension, the declared MIME type and the
// size. Content bytes are not inspected. It returns the lowercased
// extension including the dot.
func Validate(filename, contentType string, size, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if size > maxBytes {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrInvalidFileType
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedMIME[strings.ToLower(mt)] {
		return "", ErrInvalidFileType
	}
	return ext, nil
}

// UniqueName returns "image-<unix-ms>-<0..1e9><ext>".
func UniqueName(ext string, now time.Time) string {
	return "image-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" +
		strconv.Itoa(rand.IntN(1_000_000_000)) + ext
}

// OwnedName extracts the stored file name from a URL returned by Save.
// It reports false for URLs that were not produced by UniqueName, so
// callers never delete images they did not upload.
func OwnedName(url string) (string, bool) {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := url[strings.LastIndex(url, "/")+1:]
	if !strings.HasPrefix(name, "image-") || !allowedExt[strings.ToLower(filepath.Ext(name))] {
		return "", false
	}
	return name, true
}

// Store persists validated image bytes and reports the public URL.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, name string) error
	Backend() string
}
