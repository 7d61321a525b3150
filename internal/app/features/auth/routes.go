// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
)

// Routes returns the subrouter mounted under /api/auth.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()
	if h.Signups != nil {
		r.With(h.Signups.ByIP(msgTooManySignups)).Post("/register", h.HandleRegister)
	} else {
		r.Post("/register", h.HandleRegister)
	}
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.Require)
		pr.Get("/me", h.HandleMe)
		pr.Put("/profile", h.HandleUpdateProfile)

		pr.Group(func(ar chi.Router) {
			ar.Use(sysauth.RequireRole(role.Admin))
			ar.Post("/users", h.HandleCreateUser)
			ar.Get("/users", h.HandleListUsers)
			ar.Delete("/users/{id}", h.HandleDeleteUser)
			ar.Put("/users/{id}/role", h.HandleUpdateRole)
			ar.Put("/users/{id}/status", h.HandleUpdateStatus)
		})
	})
	return r
}
