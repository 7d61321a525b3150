// internal/app/features/donations/routes.go
package donations

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes returns the subrouter mounted under /api/donations.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.With(mw.Optional).Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.Require)
		pr.Get("/my", h.HandleMine)

		pr.Group(func(ar chi.Router) {
			ar.Use(sysauth.RequireRole(role.Admin))
			ar.Get("/", h.HandleList)
			ar.Put("/{id}/status", h.HandleStatus)
		})
	})
	return r
}
