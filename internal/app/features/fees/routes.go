// internal/app/features/fees/routes.go
package fees

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes returns the subrouter mounted under /api/fees.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.Require)
	r.Get("/my", h.HandleMine)

	r.Group(func(ar chi.Router) {
		ar.Use(sysauth.RequireRole(role.Admin))
		ar.Post("/", h.HandleCreate)
		ar.Get("/", h.HandleList)
		ar.Put("/{id}/status", h.HandleStatus)
	})
	return r
}
