package content

import (
	"context"
	"net/http"
	"strings"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/params"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"github.com/mejbaurrahman/JHF/internal/app/system/validate"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
	"go.uber.org/zap"
)

type galleryRequest struct {
	Title    string `json:"title" validate:"notblank,max=200"`
	ImageURL string `json:"imageUrl" validate:"notblank,max=500"`
	Category string `json:"category" validate:"max=60"`
	Date     string `json:"date"`
}

func (h *Handler) HandleListGallery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Gallery.List(ctx)
	if err != nil {
		h.ErrLog.Store(w, r, "list gallery", err, "", "")
		return
	}
	respond.OK(w, list)
}

func (h *Handler) HandleCreateGallery(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.ErrLog.Respond(w, r, "create gallery item", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.ErrLog.Respond(w, r, "create gallery item", err)
		return
	}
	date, err := params.BodyDate("date", req.Date)
	if err != nil {
		h.ErrLog.Respond(w, r, "create gallery item", err)
		return
	}
	g := models.GalleryItem{
		Title:    htmlsanitize.PlainText(strings.TrimSpace(req.Title)),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Category: htmlsanitize.PlainText(strings.TrimSpace(req.Category)),
	}
	if date != nil {
		g.Date = *date
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err = h.Gallery.Create(ctx, g)
	if err != nil {
		h.ErrLog.Store(w, r, "create gallery item", err, "", "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventGalleryChanged, authz.UserID(r), nil, map[string]string{"action": "create", "item_id": g.ID.Hex()})
	respond.Created(w, g)
}

// HandleDeleteGallery removes the item and, best effort, the image file
// when this server stored it.
func (h *Handler) HandleDeleteGallery(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(r, "id", "gallery item")
	if err != nil {
		h.ErrLog.Respond(w, r, "delete gallery item", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Gallery.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Store(w, r, "delete gallery item", err, "Gallery item not found", "")
		return
	}
	if name, ok := uploads.OwnedName(g.ImageURL); ok && h.Images != nil {
		if err := h.Images.Delete(ctx, name); err != nil {
			h.Log.Warn("gallery image delete failed", zap.String("name", name), zap.Error(err))
		}
	}
	h.AuditLog.Admin(ctx, r, audit.EventGalleryChanged, authz.UserID(r), nil, map[string]string{"action": "delete", "item_id": id.Hex()})
	respond.Message(w, http.StatusOK, "Gallery item removed")
}
