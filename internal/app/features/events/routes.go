// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes returns the subrouter mounted under /api/events. Reads are public.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Get("/upcoming", h.HandleUpcoming)
	r.Get("/{id}", h.HandleDetail) // slug or id

	r.Group(func(pr chi.Router) {
		pr.Use(mw.Require, sysauth.RequireRole(role.Admin))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Put("/{id}/status", h.HandleStatus)
	})
	return r
}
