// internal/app/features/content/routes.go
package content

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes returns the subrouter mounted under /api/content. Reads are
// public; writes need an admin.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Get("/site/{section}", h.HandleGetSection)
	r.Get("/committee", h.HandleListCommittee)
	r.Get("/gallery", h.HandleListGallery)

	r.Group(func(ar chi.Router) {
		ar.Use(mw.Require, sysauth.RequireRole(role.Admin))
		ar.Put("/site/{section}", h.HandlePatchSection)
		ar.Put("/site/{section}/replace", h.HandleReplaceSection)
		ar.Post("/committee", h.HandleCreateCommittee)
		ar.Put("/committee/{id}", h.HandleUpdateCommittee)
		ar.Delete("/committee/{id}", h.HandleDeleteCommittee)
		ar.Post("/gallery", h.HandleCreateGallery)
		ar.Delete("/gallery/{id}", h.HandleDeleteGallery)
	})
	return r
}
