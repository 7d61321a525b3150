// internal/app/features/upload/handler.go
package upload

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the file size limit
const formSlack = 1 << 20

type Handler struct {
	Store    uploads.Store
	MaxBytes int64
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(store uploads.Store, maxBytes int64, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = uploads.DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, MaxBytes: maxBytes, ErrLog: errLog, Log: logger}
}

type uploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// HandleUpload accepts one image in the "image" multipart field.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+formSlack)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.ErrLog.Respond(w, r, "upload", uploads.ErrFileTooLarge)
			return
		}
		h.ErrLog.Respond(w, r, "upload", uploads.ErrNoFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[uploads.FieldName]
	switch {
	case len(files) == 0:
		h.ErrLog.Respond(w, r, "upload", uploads.ErrNoFile)
		return
	case len(files) > 1:
		h.ErrLog.Respond(w, r, "upload", apperr.Validation("Upload one image at a time"))
		return
	}
	fh := files[0]

	ext, err := uploads.Validate(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, h.MaxBytes)
	if err != nil {
		h.ErrLog.Respond(w, r, "upload", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.ErrLog.Respond(w, r, "upload: open", err)
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	name := uploads.UniqueName(ext, time.Now())
	url, err := h.Store.Save(ctx, name, f, fh.Header.Get("Content-Type"))
	if err != nil {
		h.ErrLog.Respond(w, r, "upload: save", err)
		return
	}
	h.Log.Info("image uploaded",
		zap.String("name", name),
		zap.String("backend", h.Store.Backend()),
		zap.Int64("size", fh.Size),
		zap.String("user_id", authz.UserID(r).Hex()))

	respond.OK(w, uploadResponse{
		Message:  "Image uploaded",
		ImageURL: url,
		Filename: name,
	})
}
