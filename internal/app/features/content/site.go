package content

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
	sitecontentstore "github.com/mejbaurrahman/JHF/internal/app/store/sitecontent"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/authz"
	"github.com/mejbaurrahman/JHF/internal/app/system/htmlsanitize"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/domain/models"
)

var sectionRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func section(r *http.Request) (string, error) {
	s := strings.TrimSpace(chi.URLParam(r, "section"))
	if !sectionRe.MatchString(s) {
		return "", apperr.Validation("Invalid section")
	}
	return s, nil
}

// HandleGetSection returns the section's data, {} when never written.
func (h *Handler) HandleGetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := section(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "get content", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data, err := h.Site.Get(ctx, sec)
	if err != nil {
		h.ErrLog.Store(w, r, "get content", err, "", "")
		return
	}
	respond.OK(w, data)
}

// HandlePatchSection merges the body into the section.
func (h *Handler) HandlePatchSection(w http.ResponseWriter, r *http.Request) {
	h.writeSection(w, r, "patch", h.Site.Patch)
}

// HandleReplaceSection overwrites the section with the body.
func (h *Handler) HandleReplaceSection(w http.ResponseWriter, r *http.Request) {
	h.writeSection(w, r, "replace", h.Site.Replace)
}

type sectionWriter func(ctx context.Context, section string, data map[string]any) (models.SiteContent, error)

func (h *Handler) writeSection(w http.ResponseWriter, r *http.Request, mode string, write sectionWriter) {
	sec, err := section(r)
	if err != nil {
		h.ErrLog.Respond(w, r, mode+" content", err)
		return
	}
	var body map[string]any
	if err := respond.Decode(w, r, &body); err != nil {
		h.ErrLog.Respond(w, r, mode+" content", err)
		return
	}
	data, _ := htmlsanitize.SanitizeValue(body).(map[string]any)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sc, err := write(ctx, sec, data)
	if errors.Is(err, sitecontentstore.ErrBadKey) {
		h.ErrLog.Respond(w, r, mode+" content", apperr.Wrap(apperr.KindValidation, "Content keys must not be empty, contain \".\" or start with \"$\"", err))
		return
	}
	if err != nil {
		h.ErrLog.Store(w, r, mode+" content", err, "", "")
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventContentUpdated, authz.UserID(r), nil, map[string]string{
		"section": sec,
		"mode":    mode,
	})
	respond.OK(w, sc)
}
